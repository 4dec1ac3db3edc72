package models

import (
	"time"

	id "civreg/pkg/domain"
)

// Role is an officer role an identity may hold. An identity holds at most
// one officer role; the two approval tiers must stay in different hands.
type Role string

const (
	// RoleRegionalOfficer performs first-tier verification for its bound
	// region, and destination-tier verification for move requests.
	RoleRegionalOfficer Role = "regional_officer"
	// RoleCentralOfficer performs final-tier verification across all regions
	// and issues official documents.
	RoleCentralOfficer Role = "central_officer"
)

// IsValid reports whether the role is one of the known officer roles.
func (r Role) IsValid() bool {
	return r == RoleRegionalOfficer || r == RoleCentralOfficer
}

// CitizenBinding ties a citizen identity to a hashed national-id value.
//
// # Injectivity Invariant
//
// The binding is injective both ways: one identity binds at most one hash
// and one hash binds at most one identity. It is created once via
// self-registration and is immutable afterward; there is no update or
// delete path.
type CitizenBinding struct {
	Identity       id.Identity
	NationalIDHash id.NationalIDHash
	RegisteredAt   time.Time
}

// RegionBinding makes one regional officer the governing officer for one
// region. Both directions are unique: a region has at most one officer and
// an officer governs at most one region. Region id 0 is reserved and never
// bound.
type RegionBinding struct {
	RegionID    id.RegionID
	Officer     id.Identity
	MetadataRef string
	BoundAt     time.Time
}
