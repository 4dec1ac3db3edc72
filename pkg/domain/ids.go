// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"strconv"

	dErrors "civreg/pkg/domain-errors"
)

// Identity is an opaque, externally verified caller handle. The surrounding
// substrate authenticates it before any operation reaches this service; here
// it is only compared and recorded, never minted.
type Identity string

// RequestID is a dense sequential identifier assigned at submission,
// starting at 0. IDs are never reused.
type RequestID uint64

// RegionID identifies an administrative jurisdiction. 0 is reserved and must
// never be bound or referenced as a real origin/destination.
type RegionID uint64

// NationalIDHash is the hashed national-id value a citizen binds to their
// identity. It arrives pre-hashed; this service stores it verbatim.
type NationalIDHash string

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseIdentity(s string) (Identity, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity cannot be empty")
	}
	return Identity(s), nil
}

func ParseRequestID(s string) (RequestID, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "request ID cannot be empty")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid request ID format")
	}
	return RequestID(n), nil
}

func ParseRegionID(s string) (RegionID, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "region ID cannot be empty")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid region ID format")
	}
	return RegionID(n), nil
}

// String methods - for logging and debugging.

func (i Identity) String() string       { return string(i) }
func (id RequestID) String() string     { return strconv.FormatUint(uint64(id), 10) }
func (id RegionID) String() string      { return strconv.FormatUint(uint64(id), 10) }
func (h NationalIDHash) String() string { return string(h) }

// IsZero checks - used for service-layer validation.

func (i Identity) IsZero() bool       { return i == "" }
func (id RegionID) IsZero() bool      { return id == 0 }
func (h NationalIDHash) IsZero() bool { return h == "" }
