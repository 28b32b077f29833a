// Package records supplies the client records shown in the client list.
package records

import (
	"context"
	"fmt"

	"clientListWebsite/internal/models"
)

// Source provides the fixed, ordered collection of clients.
type Source interface {
	Clients(ctx context.Context) ([]models.Client, error)
}

// Load reads all clients from src and checks that their ids are unique.
func Load(ctx context.Context, src Source) ([]models.Client, error) {
	clients, err := src.Clients(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(clients))
	for i, c := range clients {
		if c.ID == "" {
			return nil, fmt.Errorf("client %d has no id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("duplicate client id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return clients, nil
}
