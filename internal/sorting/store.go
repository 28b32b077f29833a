package sorting

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"clientListWebsite/internal/models"
	"clientListWebsite/internal/storage"
)

// StorageKey is the key the criteria are persisted under.
const StorageKey = "clientTableSortCriteria"

const initialCriterionID = "initial-sort"

var (
	ErrIndexOutOfRange  = errors.New("sort criterion index out of range")
	ErrInvalidField     = errors.New("invalid sort field")
	ErrInvalidDirection = errors.New("invalid sort direction")
)

// DefaultCriteria are the criteria used when nothing usable has been
// persisted: sort by name, ascending.
func DefaultCriteria() []models.SortCriterion {
	return []models.SortCriterion{
		{ID: initialCriterionID, Field: models.DefaultSortField, Direction: models.SortAsc},
	}
}

// NewCriterionID returns a fresh criterion id.
func NewCriterionID() string {
	return "sort-" + uuid.NewString()
}

// Store is the ordered list of sort criteria of one visitor. It is not safe
// for concurrent use; callers serialise access.
type Store struct {
	criteria []models.SortCriterion
	backend  storage.StringStore
	newID    func() string
	log      logrus.FieldLogger
}

type Option func(*Store)

// WithIDGenerator replaces NewCriterionID.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore returns a store holding DefaultCriteria. backend may be nil, in
// which case nothing is persisted.
func NewStore(backend storage.StringStore, opts ...Option) *Store {
	s := &Store{
		criteria: DefaultCriteria(),
		backend:  backend,
		newID:    NewCriterionID,
		log:      logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Criteria returns a copy of the current criteria.
func (s *Store) Criteria() []models.SortCriterion {
	return slices.Clone(s.criteria)
}

// Len returns the number of criteria.
func (s *Store) Len() int {
	return len(s.criteria)
}

// IndexOf returns the position of the criterion with the given id, or -1.
func (s *Store) IndexOf(id string) int {
	return slices.IndexFunc(s.criteria, func(c models.SortCriterion) bool {
		return c.ID == id
	})
}

// Load replaces the criteria with the persisted ones. Missing or unreadable
// data results in DefaultCriteria.
func (s *Store) Load(ctx context.Context) {
	s.criteria = DefaultCriteria()
	if s.backend == nil {
		return
	}

	value, ok, err := s.backend.Get(ctx, StorageKey)
	if err != nil {
		s.log.WithError(err).Warn("Failed to read sort criteria, using defaults")
		return
	}
	if !ok {
		return
	}

	criteria, err := Decode(value)
	if err != nil {
		s.log.WithError(err).Warn("Discarding persisted sort criteria")
		return
	}
	s.criteria = criteria
}

// Save persists the current criteria. Failures are logged and otherwise
// ignored; the in-memory criteria stay authoritative.
func (s *Store) Save(ctx context.Context) {
	if s.backend == nil {
		return
	}

	value, err := Encode(s.criteria)
	if err != nil {
		s.log.WithError(err).Warn("Failed to encode sort criteria")
		return
	}
	if err := s.backend.Set(ctx, StorageKey, value); err != nil {
		s.log.WithError(err).WithField("criteria", len(s.criteria)).Warn("Failed to persist sort criteria")
	}
}

// Add appends a criterion on the primary field in ascending order.
func (s *Store) Add(ctx context.Context) models.SortCriterion {
	c := models.SortCriterion{
		ID:        s.newID(),
		Field:     models.DefaultSortField,
		Direction: models.SortAsc,
	}
	s.criteria = append(s.criteria, c)
	s.Save(ctx)
	return c
}

// Remove deletes the criterion with the given id. It reports whether
// anything was removed.
func (s *Store) Remove(ctx context.Context, id string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.criteria = slices.Delete(s.criteria, i, i+1)
	s.Save(ctx)
	return true
}

// Update applies patch to the criterion with the given id, keeping its id
// and position. Unknown ids are ignored.
func (s *Store) Update(ctx context.Context, id string, patch models.SortCriterionPatch) (bool, error) {
	if patch.Field != nil && !patch.Field.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidField, *patch.Field)
	}
	if patch.Direction != nil && !patch.Direction.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidDirection, *patch.Direction)
	}

	i := s.IndexOf(id)
	if i < 0 {
		return false, nil
	}
	if patch.Field != nil {
		s.criteria[i].Field = *patch.Field
	}
	if patch.Direction != nil {
		s.criteria[i].Direction = *patch.Direction
	}
	s.Save(ctx)
	return true, nil
}

// Reorder moves the criterion at from to position to, shifting the entries
// in between: [A B C D] with (0, 2) becomes [B C A D].
func (s *Store) Reorder(ctx context.Context, from, to int) error {
	n := len(s.criteria)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d to %d with %d criteria", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}

	c := s.criteria[from]
	s.criteria = slices.Insert(slices.Delete(s.criteria, from, from+1), to, c)
	s.Save(ctx)
	return nil
}

// Move handles a drop of activeID onto overID. Both ids are resolved
// against the current order right before reordering; a drop onto itself or
// on an id that no longer exists does nothing.
func (s *Store) Move(ctx context.Context, activeID, overID string) (bool, error) {
	from, to := s.IndexOf(activeID), s.IndexOf(overID)
	if from < 0 || to < 0 || from == to {
		return false, nil
	}
	if err := s.Reorder(ctx, from, to); err != nil {
		return false, err
	}
	return true, nil
}
