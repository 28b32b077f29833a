package records

import (
	"context"
	"time"

	"clientListWebsite/internal/models"
)

// MockSource serves a fixed set of sample clients.
type MockSource struct{}

func (MockSource) Clients(context.Context) ([]models.Client, error) {
	return MockClients(), nil
}

func date(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

// MockClients returns a fresh copy of the sample clients in their source order.
func MockClients() []models.Client {
	return []models.Client{
		{ID: "cl-001", Name: "John Doe", Email: "john.doe@example.com", Type: models.ClientTypeIndividual, Status: models.ClientStatusActive, CreatedAt: date(2023, time.January, 15, 9, 30), UpdatedAt: date(2024, time.March, 2, 14, 5)},
		{ID: "cl-002", Name: "Acme Corporation", Email: "contact@acme.com", Type: models.ClientTypeCompany, Status: models.ClientStatusActive, CreatedAt: date(2022, time.November, 3, 11, 0), UpdatedAt: date(2024, time.January, 20, 8, 45)},
		{ID: "cl-003", Name: "jane smith", Email: "jane.smith@example.com", Type: models.ClientTypeIndividual, Status: models.ClientStatusPending, CreatedAt: date(2023, time.June, 22, 16, 10), UpdatedAt: date(2023, time.December, 11, 10, 0)},
		{ID: "cl-004", Name: "Globex Industries", Email: "info@globex.com", Type: models.ClientTypeCompany, Status: models.ClientStatusInactive, CreatedAt: date(2021, time.August, 9, 13, 20), UpdatedAt: date(2023, time.May, 30, 17, 40)},
		{ID: "cl-005", Name: "Émilie Laurent", Email: "emilie.laurent@example.fr", Type: models.ClientTypeIndividual, Status: models.ClientStatusActive, CreatedAt: date(2023, time.March, 5, 8, 15), UpdatedAt: date(2024, time.February, 14, 12, 30)},
		{ID: "cl-006", Name: "Initech LLC", Email: "hello@initech.io", Type: models.ClientTypeCompany, Status: models.ClientStatusPending, CreatedAt: date(2024, time.January, 8, 10, 5), UpdatedAt: date(2024, time.January, 8, 10, 5)},
		{ID: "cl-007", Name: "bob Martin", Email: "bob.martin@example.com", Type: models.ClientTypeIndividual, Status: models.ClientStatusInactive, CreatedAt: date(2022, time.February, 28, 19, 45), UpdatedAt: date(2023, time.September, 1, 9, 0)},
		{ID: "cl-008", Name: "Umbrella Group", Email: "sales@umbrella.com", Type: models.ClientTypeCompany, Status: models.ClientStatusActive, CreatedAt: date(2020, time.October, 12, 7, 50), UpdatedAt: date(2024, time.April, 3, 15, 25)},
		{ID: "cl-009", Name: "Alice Johnson", Email: "alice.johnson@example.com", Type: models.ClientTypeIndividual, Status: models.ClientStatusActive, CreatedAt: date(2023, time.January, 15, 9, 30), UpdatedAt: date(2023, time.November, 19, 11, 11)},
		{ID: "cl-010", Name: "Stark Enterprises", Email: "tony@stark.com", Type: models.ClientTypeCompany, Status: models.ClientStatusPending, CreatedAt: date(2023, time.July, 4, 12, 0), UpdatedAt: date(2024, time.March, 28, 18, 30)},
		{ID: "cl-011", Name: "Zoë Kravitz", Email: "zoe.k@example.com", Type: models.ClientTypeIndividual, Status: models.ClientStatusPending, CreatedAt: date(2024, time.February, 1, 14, 0), UpdatedAt: date(2024, time.February, 2, 9, 15)},
		{ID: "cl-012", Name: "Wayne Foundation", Email: "foundation@wayne.org", Type: models.ClientTypeCompany, Status: models.ClientStatusInactive, CreatedAt: date(2019, time.May, 17, 10, 30), UpdatedAt: date(2022, time.December, 24, 23, 59)},
	}
}
