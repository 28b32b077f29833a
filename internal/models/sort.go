package models

import "regexp"

// SortDirection represents ordering direction for a sort criterion
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortField enumerates the client fields that can be sorted by
type SortField string

const (
	SortFieldName      SortField = "name"
	SortFieldEmail     SortField = "email"
	SortFieldType      SortField = "type"
	SortFieldStatus    SortField = "status"
	SortFieldCreatedAt SortField = "createdAt"
	SortFieldUpdatedAt SortField = "updatedAt"
)

// SortFields lists the sortable fields in the order the sort editor offers them
var SortFields = []SortField{
	SortFieldName,
	SortFieldEmail,
	SortFieldType,
	SortFieldStatus,
	SortFieldCreatedAt,
	SortFieldUpdatedAt,
}

var sortFieldLabels = map[SortField]string{
	SortFieldName:      "Name",
	SortFieldEmail:     "Email",
	SortFieldType:      "Type",
	SortFieldStatus:    "Status",
	SortFieldCreatedAt: "Created At",
	SortFieldUpdatedAt: "Updated At",
}

// DefaultSortField is the canonical primary text field of a client
const DefaultSortField = SortFieldName

// SortCriterion is one key of a multi-key sort. ID stays the same across
// field, direction and position edits.
type SortCriterion struct {
	ID        string        `json:"id"`
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// MaxCriterionIDLength bounds the length of a criterion id
const MaxCriterionIDLength = 100

// CriterionIDPattern is the alphabet criterion ids are drawn from
var CriterionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidCriterionID reports whether id can name a sort criterion
func ValidCriterionID(id string) bool {
	return len(id) <= MaxCriterionIDLength && CriterionIDPattern.MatchString(id)
}

// SortCriterionPatch carries the optional parts of a criterion update
type SortCriterionPatch struct {
	Field     *SortField     `json:"field,omitempty"`
	Direction *SortDirection `json:"direction,omitempty"`
}

func (f SortField) IsValid() bool {
	_, ok := sortFieldLabels[f]
	return ok
}

// Label returns the human readable name shown in the sort editor
func (f SortField) Label() string {
	if label, ok := sortFieldLabels[f]; ok {
		return label
	}
	return string(f)
}

func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// Toggle returns the opposite direction
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}
