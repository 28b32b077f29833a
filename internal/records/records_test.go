package records

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientListWebsite/internal/models"
)

type staticSource struct {
	clients []models.Client
	err     error
}

func (s staticSource) Clients(context.Context) ([]models.Client, error) {
	return s.clients, s.err
}

func TestMockClients(t *testing.T) {
	clients, err := Load(context.Background(), MockSource{})
	require.NoError(t, err)
	require.NotEmpty(t, clients)

	for _, c := range clients {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Email)
		assert.True(t, c.Type.IsValid(), c.ID)
		assert.True(t, c.Status.IsValid(), c.ID)
		assert.False(t, c.UpdatedAt.Before(c.CreatedAt), c.ID)
	}
}

func TestMockClients_FreshCopy(t *testing.T) {
	a := MockClients()
	a[0].Name = "changed"
	assert.NotEqual(t, "changed", MockClients()[0].Name)
}

func TestLoad_RejectsBadIDs(t *testing.T) {
	_, err := Load(context.Background(), staticSource{clients: []models.Client{{ID: "a"}, {ID: "a"}}})
	assert.ErrorContains(t, err, "duplicate client id")

	_, err = Load(context.Background(), staticSource{clients: []models.Client{{ID: ""}}})
	assert.ErrorContains(t, err, "no id")
}

func TestLoad_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(context.Background(), staticSource{err: boom})
	assert.ErrorIs(t, err, boom)
}
