package domain

import (
	"time"

	"github.com/google/uuid"
)

// GenderRestriction limits who may register in a padel category.
type GenderRestriction string

const (
	GenderMale   GenderRestriction = "MALE"
	GenderFemale GenderRestriction = "FEMALE"
	GenderMixed  GenderRestriction = "MIXED"
)

// PadelCategory is an organizer-defined competitive bracket.
type PadelCategory struct {
	ID                int64             `json:"id"`
	OrganizationID    uuid.UUID         `json:"organizationId"`
	Label             string            `json:"label"`
	GenderRestriction GenderRestriction `json:"genderRestriction,omitempty"`
	MinLevel          string            `json:"minLevel,omitempty"`
	MaxLevel          string            `json:"maxLevel,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// PadelClub is a venue hosting tournaments. Partner clubs are not owned by the
// organization and require staff to be assigned explicitly.
type PadelClub struct {
	ID             int64     `json:"id"`
	OrganizationID uuid.UUID `json:"organizationId"`
	Name           string    `json:"name"`
	City           string    `json:"city"`
	Partner        bool      `json:"partner"`
}

// PadelCourt belongs to a club.
type PadelCourt struct {
	ID     int64  `json:"id"`
	ClubID int64  `json:"clubId"`
	Name   string `json:"name"`
	Indoor bool   `json:"indoor"`
}

// PadelStaff is a referee or organizer attached to a club.
type PadelStaff struct {
	ID     int64  `json:"id"`
	ClubID int64  `json:"clubId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// PadelCatalog is everything the wizard needs to configure a tournament.
type PadelCatalog struct {
	Clubs      []PadelClub     `json:"clubs"`
	Courts     []PadelCourt    `json:"courts"`
	Staff      []PadelStaff    `json:"staff"`
	Categories []PadelCategory `json:"categories"`
	Formats    []string        `json:"formats"`
}

// TournamentFormats lists the supported tournament formats.
var TournamentFormats = []string{"GROUPS_PLAYOFF", "KNOCKOUT", "ROUND_ROBIN", "AMERICANO", "MEXICANO"}

// IsValidFormat reports whether f is a known tournament format.
func IsValidFormat(f string) bool {
	for _, known := range TournamentFormats {
		if known == f {
			return true
		}
	}
	return false
}
