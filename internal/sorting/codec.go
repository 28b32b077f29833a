package sorting

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"clientListWebsite/internal/models"
)

var errMalformedCriteria = errors.New("malformed sort criteria")

// Encode serialises criteria in the persisted format.
func Encode(criteria []models.SortCriterion) (string, error) {
	if criteria == nil {
		criteria = []models.SortCriterion{}
	}
	b, err := json.Marshal(criteria)
	if err != nil {
		return "", fmt.Errorf("failed to encode sort criteria: %w", err)
	}
	return string(b), nil
}

// Decode parses a persisted value. Anything that is not an array of
// criteria with unique non-empty ids, known fields and known directions is
// rejected.
func Decode(value string) ([]models.SortCriterion, error) {
	raw := bytes.TrimSpace([]byte(value))
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: not a JSON array", errMalformedCriteria)
	}

	var criteria []models.SortCriterion
	if err := json.Unmarshal(raw, &criteria); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedCriteria, err)
	}

	seen := make(map[string]struct{}, len(criteria))
	for i, c := range criteria {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: criterion %d has no id", errMalformedCriteria, i)
		}
		if !models.ValidCriterionID(c.ID) {
			return nil, fmt.Errorf("%w: invalid id %q", errMalformedCriteria, c.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", errMalformedCriteria, c.ID)
		}
		seen[c.ID] = struct{}{}

		if !c.Field.IsValid() {
			return nil, fmt.Errorf("%w: unknown field %q", errMalformedCriteria, c.Field)
		}
		if !c.Direction.IsValid() {
			return nil, fmt.Errorf("%w: unknown direction %q", errMalformedCriteria, c.Direction)
		}
	}

	if criteria == nil {
		criteria = []models.SortCriterion{}
	}
	return criteria, nil
}
