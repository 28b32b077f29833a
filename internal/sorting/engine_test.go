package sorting

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"clientListWebsite/internal/models"
)

func day(n int) time.Time {
	return time.Date(2024, time.January, n, 12, 0, 0, 0, time.UTC)
}

func ids(clients []models.Client) []string {
	out := make([]string, len(clients))
	for i, c := range clients {
		out[i] = c.ID
	}
	return out
}

func crit(field models.SortField, dir models.SortDirection) models.SortCriterion {
	return models.SortCriterion{ID: string(field) + "-" + string(dir), Field: field, Direction: dir}
}

var testClients = []models.Client{
	{ID: "c1", Name: "Bob", Email: "bob@example.com", Type: models.ClientTypeIndividual, Status: models.ClientStatusActive, CreatedAt: day(3), UpdatedAt: day(9)},
	{ID: "c2", Name: "alice", Email: "alice@example.com", Type: models.ClientTypeCompany, Status: models.ClientStatusPending, CreatedAt: day(1), UpdatedAt: day(8)},
	{ID: "c3", Name: "Émile", Email: "emile@example.com", Type: models.ClientTypeCompany, Status: models.ClientStatusActive, CreatedAt: day(2), UpdatedAt: day(7)},
	{ID: "c4", Name: "Zoe", Email: "zoe@example.com", Type: models.ClientTypeIndividual, Status: models.ClientStatusInactive, CreatedAt: day(4), UpdatedAt: day(6)},
}

func newTestEngine() *Engine {
	return NewEngine(language.English)
}

func TestEngine_LocaleAwareText(t *testing.T) {
	e := newTestEngine()
	clients := []models.Client{{ID: "bob", Name: "Bob"}, {ID: "alice", Name: "alice"}}

	sorted := e.Sort([]models.SortCriterion{crit(models.SortFieldName, models.SortAsc)}, clients)
	assert.Equal(t, []string{"alice", "bob"}, ids(sorted))
}

func TestEngine_AccentedNames(t *testing.T) {
	e := newTestEngine()
	sorted := e.Sort([]models.SortCriterion{crit(models.SortFieldName, models.SortAsc)}, testClients)

	// Émile collates with the E's, not after Z.
	assert.Equal(t, []string{"c2", "c1", "c3", "c4"}, ids(sorted))
}

func TestEngine_Timestamps(t *testing.T) {
	e := newTestEngine()

	sorted := e.Sort([]models.SortCriterion{crit(models.SortFieldCreatedAt, models.SortAsc)}, testClients)
	assert.Equal(t, []string{"c2", "c3", "c1", "c4"}, ids(sorted))

	sorted = e.Sort([]models.SortCriterion{crit(models.SortFieldUpdatedAt, models.SortDesc)}, testClients)
	assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, ids(sorted))
}

func TestEngine_SameInstantDifferentZones(t *testing.T) {
	e := newTestEngine()
	berlin := time.FixedZone("CET", 3600)
	clients := []models.Client{
		{ID: "a", Name: "b", CreatedAt: day(1)},
		{ID: "b", Name: "a", CreatedAt: day(1).In(berlin)},
	}

	// Equal instants tie on createdAt, so name decides.
	sorted := e.Sort([]models.SortCriterion{
		crit(models.SortFieldCreatedAt, models.SortAsc),
		crit(models.SortFieldName, models.SortAsc),
	}, clients)
	assert.Equal(t, []string{"b", "a"}, ids(sorted))
}

func TestEngine_TagFields(t *testing.T) {
	e := newTestEngine()

	sorted := e.Sort([]models.SortCriterion{crit(models.SortFieldStatus, models.SortAsc)}, testClients)
	// active, active, inactive, pending; the two actives keep input order
	assert.Equal(t, []string{"c1", "c3", "c4", "c2"}, ids(sorted))

	sorted = e.Sort([]models.SortCriterion{crit(models.SortFieldType, models.SortDesc)}, testClients)
	assert.Equal(t, []string{"c1", "c4", "c2", "c3"}, ids(sorted))
}

func TestEngine_EmptyCriteriaKeepsOrder(t *testing.T) {
	e := newTestEngine()

	sorted := e.Sort(nil, testClients)
	assert.Equal(t, ids(testClients), ids(sorted))

	sorted = e.Sort([]models.SortCriterion{}, testClients)
	assert.Equal(t, ids(testClients), ids(sorted))
}

func TestEngine_DoesNotMutateInput(t *testing.T) {
	e := newTestEngine()
	input := make([]models.Client, len(testClients))
	copy(input, testClients)

	sorted := e.Sort([]models.SortCriterion{crit(models.SortFieldName, models.SortDesc)}, input)
	assert.Equal(t, ids(testClients), ids(input))
	assert.NotEqual(t, ids(input), ids(sorted))
}

func TestEngine_Stability(t *testing.T) {
	e := newTestEngine()
	r := rand.New(rand.NewSource(1))

	var clients []models.Client
	for i := 0; i < 200; i++ {
		clients = append(clients, models.Client{
			ID:     string(rune('A'+i%26)) + string(rune('a'+i/26)),
			Type:   []models.ClientType{models.ClientTypeIndividual, models.ClientTypeCompany}[r.Intn(2)],
			Status: []models.ClientStatus{models.ClientStatusActive, models.ClientStatusInactive, models.ClientStatusPending}[r.Intn(3)],
		})
	}
	position := make(map[string]int, len(clients))
	for i, c := range clients {
		position[c.ID] = i
	}

	criteria := []models.SortCriterion{
		crit(models.SortFieldType, models.SortAsc),
		crit(models.SortFieldStatus, models.SortDesc),
	}
	sorted := e.Sort(criteria, clients)
	require.Len(t, sorted, len(clients))

	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if a.Type == b.Type && a.Status == b.Status {
			assert.Less(t, position[a.ID], position[b.ID], "tie between %s and %s lost input order", a.ID, b.ID)
		}
	}
}

func TestEngine_DirectionInversion(t *testing.T) {
	e := newTestEngine()

	for _, field := range models.SortFields {
		asc := []models.SortCriterion{crit(field, models.SortAsc)}
		desc := []models.SortCriterion{crit(field, models.SortDesc)}

		for i := range testClients {
			for j := range testClients {
				a, b := testClients[i], testClients[j]
				assert.Equal(t, e.Compare(asc, a, b), -e.Compare(desc, a, b), "field %s, %s vs %s", field, a.ID, b.ID)
			}
		}
	}
}

func TestEngine_LexicographicPrecedence(t *testing.T) {
	e := newTestEngine()
	primaryOnly := []models.SortCriterion{crit(models.SortFieldStatus, models.SortAsc)}
	withSecondary := []models.SortCriterion{
		crit(models.SortFieldStatus, models.SortAsc),
		crit(models.SortFieldName, models.SortDesc),
	}

	for _, a := range testClients {
		for _, b := range testClients {
			if a.Status == b.Status {
				continue
			}
			assert.Equal(t, e.Compare(primaryOnly, a, b), e.Compare(withSecondary, a, b))
		}
	}

	sorted := e.Sort(withSecondary, testClients)
	// active (Émile before Bob when descending), inactive, pending
	assert.Equal(t, []string{"c3", "c1", "c4", "c2"}, ids(sorted))
}

func TestEngine_DuplicateFieldNeverDecides(t *testing.T) {
	e := newTestEngine()
	criteria := []models.SortCriterion{
		{ID: "1", Field: models.SortFieldName, Direction: models.SortAsc},
		{ID: "2", Field: models.SortFieldName, Direction: models.SortDesc},
	}

	sorted := e.Sort(criteria, testClients)
	assert.Equal(t, []string{"c2", "c1", "c3", "c4"}, ids(sorted))
}

func TestEngine_CollationTieStopsComparison(t *testing.T) {
	e := newTestEngine()
	criteria := []models.SortCriterion{
		crit(models.SortFieldName, models.SortAsc),
		crit(models.SortFieldEmail, models.SortAsc),
	}
	clients := []models.Client{
		{ID: "1", Name: "Ren\u00e9", Email: "z@example.com"},
		{ID: "2", Name: "Rene\u0301", Email: "a@example.com"},
	}

	// Composed and decomposed forms collate equal, so email is never consulted.
	assert.Equal(t, 0, e.Compare(criteria, clients[0], clients[1]))
	assert.Equal(t, []string{"1", "2"}, ids(e.Sort(criteria, clients)))
}

func TestEngine_UnknownFieldIgnored(t *testing.T) {
	e := newTestEngine()
	criteria := []models.SortCriterion{
		{ID: "x", Field: models.SortField("id"), Direction: models.SortDesc},
		crit(models.SortFieldCreatedAt, models.SortAsc),
	}

	sorted := e.Sort(criteria, testClients)
	assert.Equal(t, []string{"c2", "c3", "c1", "c4"}, ids(sorted))
}

func TestParseLocale(t *testing.T) {
	tag, err := ParseLocale("de-AT")
	require.NoError(t, err)
	assert.Equal(t, "de-AT", tag.String())

	_, err = ParseLocale("not a locale!")
	assert.Error(t, err)
}

func TestComparatorsCoverEveryField(t *testing.T) {
	for _, f := range models.SortFields {
		_, ok := comparators[f]
		assert.True(t, ok, "missing comparator for %s", f)
	}
}
