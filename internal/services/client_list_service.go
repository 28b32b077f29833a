package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"clientListWebsite/internal/models"
	"clientListWebsite/internal/sorting"
	"clientListWebsite/internal/storage"
	"clientListWebsite/internal/utils"
)

// ClientListService holds one visitor's client table: the sort criteria and
// the records ordered by them. Every edit re-sorts before the lock is
// released, so readers never see criteria and rows that disagree.
type ClientListService struct {
	mu      sync.Mutex
	store   *sorting.Store
	engine  *sorting.Engine
	clients []models.Client
	ordered []models.Client
}

// NewClientListService loads the persisted criteria from store and sorts
// clients by them.
func NewClientListService(ctx context.Context, store *sorting.Store, engine *sorting.Engine, clients []models.Client) *ClientListService {
	s := &ClientListService{
		store:   store,
		engine:  engine,
		clients: slices.Clone(clients),
	}
	store.Load(ctx)
	s.resort()
	return s
}

func (s *ClientListService) resort() {
	s.ordered = s.engine.Sort(s.store.Criteria(), s.clients)
}

// Criteria returns the current sort criteria, highest priority first.
func (s *ClientListService) Criteria() []models.SortCriterion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Criteria()
}

// OrderedClients returns the clients in display order.
func (s *ClientListService) OrderedClients() []models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ordered)
}

// View returns the criteria together with the rows they produced.
func (s *ClientListService) View() ([]models.SortCriterion, []models.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Criteria(), slices.Clone(s.ordered)
}

func (s *ClientListService) AddCriterion(ctx context.Context) models.SortCriterion {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.store.Add(ctx)
	s.resort()
	return c
}

func (s *ClientListService) RemoveCriterion(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.store.Remove(ctx, id)
	if removed {
		s.resort()
	}
	return removed
}

func (s *ClientListService) UpdateCriterion(ctx context.Context, id string, patch models.SortCriterionPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.store.Update(ctx, id, patch)
	if updated {
		s.resort()
	}
	return updated, err
}

// ReorderCriteria moves the criterion at index from to index to.
func (s *ClientListService) ReorderCriteria(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reorder(ctx, from, to); err != nil {
		return err
	}
	s.resort()
	return nil
}

// ShiftCriterion moves the criterion with the given id delta places, -1
// being one towards the front. The index is resolved under the same lock as
// the reorder. Unknown ids are ignored; moving past either end returns
// sorting.ErrIndexOutOfRange.
func (s *ClientListService) ShiftCriterion(ctx context.Context, id string, delta int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.store.IndexOf(id)
	if from < 0 || delta == 0 {
		return false, nil
	}
	if err := s.store.Reorder(ctx, from, from+delta); err != nil {
		return false, err
	}
	s.resort()
	return true, nil
}

// MoveCriterion applies a drag-and-drop of activeID onto overID.
func (s *ClientListService) MoveCriterion(ctx context.Context, activeID, overID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved, err := s.store.Move(ctx, activeID, overID)
	if moved {
		s.resort()
	}
	return moved, err
}

// ClientListRegistry hands out the ClientListService of each visitor,
// building it from the persisted criteria on first use and dropping it
// after ttl without requests.
type ClientListRegistry struct {
	provider storage.Provider
	engine   *sorting.Engine
	clients  []models.Client
	services *utils.Cache[*ClientListService]
	log      logrus.FieldLogger
}

func NewClientListRegistry(provider storage.Provider, engine *sorting.Engine, clients []models.Client, ttl time.Duration, log logrus.FieldLogger) *ClientListRegistry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ClientListRegistry{
		provider: provider,
		engine:   engine,
		clients:  slices.Clone(clients),
		services: utils.NewCache[*ClientListService](ttl),
		log:      log,
	}
}

// ForVisitor returns the service of visitorID. ctx is used to load the
// persisted criteria when the service has to be built.
func (r *ClientListRegistry) ForVisitor(ctx context.Context, visitorID string) *ClientListService {
	return r.services.GetOrCreate(visitorID, func() *ClientListService {
		log := r.log.WithField("visitor_id", visitorID)
		log.Debug("Building client list session")

		store := sorting.NewStore(r.provider.ForVisitor(visitorID), sorting.WithLogger(log))
		return NewClientListService(ctx, store, r.engine, r.clients)
	})
}

// Active returns the number of cached visitor sessions.
func (r *ClientListRegistry) Active() int {
	return r.services.Size()
}

func (r *ClientListRegistry) Close() {
	r.services.Close()
}
