/*
Package sorting holds the multi-key sort used by the client list.

A Store keeps the ordered list of sort criteria for one visitor. Criteria are
evaluated first to last, so the first criterion has the highest priority:

	store.Add(ctx)                 // appends {sort-<uuid>, name, asc}
	store.Reorder(ctx, 0, 2)       // [A B C D] -> [B C A D]
	engine.Sort(store.Criteria(), clients)

Every edit is persisted right away under StorageKey as a JSON array of
{"id", "field", "direction"} objects. Values that cannot be read back are
replaced with DefaultCriteria.

Engine sorts stably. Two clients that tie on every criterion keep the order
they had in the input, and an empty criteria list returns the input order.
*/
package sorting
