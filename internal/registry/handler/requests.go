package handler

import "time"

// RegisterCitizenRequest binds the authenticated identity to a hashed
// national ID. The raw national ID never crosses this API.
type RegisterCitizenRequest struct {
	NationalIDHash string `json:"national_id_hash" validate:"required,notblank,max=128"`
}

type RegisterCitizenResponse struct {
	Identity string `json:"identity"`
	Message  string `json:"message"`
}

// GrantOfficerRequest names the identity receiving an officer role.
type GrantOfficerRequest struct {
	Identity string `json:"identity" validate:"required,notblank,max=256"`
}

type GrantOfficerResponse struct {
	Identity string `json:"identity"`
	Role     string `json:"role"`
}

// BindRegionRequest binds a regional officer to the region they govern.
type BindRegionRequest struct {
	RegionID    uint64 `json:"region_id" validate:"required,gt=0"`
	Officer     string `json:"officer" validate:"required,notblank,max=256"`
	MetadataRef string `json:"metadata_ref" validate:"omitempty,max=512"`
}

type BindRegionResponse struct {
	RegionID uint64 `json:"region_id"`
	Officer  string `json:"officer"`
}

type RegionBindingResponse struct {
	RegionID    uint64    `json:"region_id"`
	Officer     string    `json:"officer"`
	MetadataRef string    `json:"metadata_ref,omitempty"`
	BoundAt     time.Time `json:"bound_at"`
}
