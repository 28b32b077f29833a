package models

import "time"

// ClientType is the two-valued category tag of a client
type ClientType string

const (
	ClientTypeIndividual ClientType = "individual"
	ClientTypeCompany    ClientType = "company"
)

// ClientStatus is the three-valued lifecycle tag of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
	ClientStatusPending  ClientStatus = "pending"
)

// Client represents a row of the client list
type Client struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Type      ClientType   `json:"type"`
	Status    ClientStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (t ClientType) IsValid() bool {
	switch t {
	case ClientTypeIndividual, ClientTypeCompany:
		return true
	default:
		return false
	}
}

func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusActive, ClientStatusInactive, ClientStatusPending:
		return true
	default:
		return false
	}
}
