package sorting

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"clientListWebsite/internal/models"
)

// fieldComparator knows how to compare clients on one sort field. equal
// uses the field's native equality; compare is only consulted for values
// that are not equal.
type fieldComparator struct {
	equal   func(a, b *models.Client) bool
	compare func(coll *collate.Collator, a, b *models.Client) int
}

func textField(get func(*models.Client) string) fieldComparator {
	return fieldComparator{
		equal: func(a, b *models.Client) bool { return get(a) == get(b) },
		compare: func(coll *collate.Collator, a, b *models.Client) int {
			return coll.CompareString(get(a), get(b))
		},
	}
}

func tagField(get func(*models.Client) string) fieldComparator {
	return fieldComparator{
		equal: func(a, b *models.Client) bool { return get(a) == get(b) },
		compare: func(_ *collate.Collator, a, b *models.Client) int {
			return strings.Compare(get(a), get(b))
		},
	}
}

func timeField(get func(*models.Client) time.Time) fieldComparator {
	return fieldComparator{
		equal: func(a, b *models.Client) bool { return get(a).Equal(get(b)) },
		compare: func(_ *collate.Collator, a, b *models.Client) int {
			return get(a).Compare(get(b))
		},
	}
}

var comparators = map[models.SortField]fieldComparator{
	models.SortFieldName:      textField(func(c *models.Client) string { return c.Name }),
	models.SortFieldEmail:     textField(func(c *models.Client) string { return c.Email }),
	models.SortFieldType:      tagField(func(c *models.Client) string { return string(c.Type) }),
	models.SortFieldStatus:    tagField(func(c *models.Client) string { return string(c.Status) }),
	models.SortFieldCreatedAt: timeField(func(c *models.Client) time.Time { return c.CreatedAt }),
	models.SortFieldUpdatedAt: timeField(func(c *models.Client) time.Time { return c.UpdatedAt }),
}

func init() {
	for _, f := range models.SortFields {
		if _, ok := comparators[f]; !ok {
			panic(fmt.Sprintf("sorting: no comparator for field %q", f))
		}
	}
}

// Engine orders clients by a list of sort criteria. Text fields are
// compared with the collation rules of the engine's locale.
type Engine struct {
	locale language.Tag
}

func NewEngine(locale language.Tag) *Engine {
	return &Engine{locale: locale}
}

// ParseLocale parses a BCP 47 tag such as "en" or "de-AT".
func ParseLocale(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", s, err)
	}
	return tag, nil
}

func (e *Engine) Locale() language.Tag {
	return e.locale
}

// Sort returns a sorted copy of clients. The input slice is left untouched.
func (e *Engine) Sort(criteria []models.SortCriterion, clients []models.Client) []models.Client {
	sorted := make([]models.Client, len(clients))
	copy(sorted, clients)

	if len(criteria) == 0 || len(sorted) < 2 {
		return sorted
	}

	// A Collator keeps internal buffers, so every call gets its own.
	coll := collate.New(e.locale)
	slices.SortStableFunc(sorted, func(a, b models.Client) int {
		return compareClients(coll, criteria, &a, &b)
	})
	return sorted
}

// Compare reports how a and b are ordered under criteria, as -1, 0 or +1.
func (e *Engine) Compare(criteria []models.SortCriterion, a, b models.Client) int {
	return compareClients(collate.New(e.locale), criteria, &a, &b)
}

func compareClients(coll *collate.Collator, criteria []models.SortCriterion, a, b *models.Client) int {
	for _, c := range criteria {
		fc, ok := comparators[c.Field]
		if !ok {
			continue
		}
		if fc.equal(a, b) {
			continue
		}
		// Distinct values that collate equal are a tie that ends the
		// comparison; later criteria only break exact equality.
		r := fc.compare(coll, a, b)
		if c.Direction == models.SortDesc {
			return -r
		}
		return r
	}
	return 0
}
