package asset

import (
	"time"

	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LocationHistoryEntry records one movement of an asset.
// Entries are append-only and never updated.
type LocationHistoryEntry struct {
	shared.BaseEntity
	AssetID  uuid.UUID `json:"asset_id"`
	Location string    `json:"location"`
	Notes    string    `json:"notes"`
	MovedBy  uuid.UUID `json:"moved_by"`
	MovedAt  time.Time `json:"moved_at"`
}

// NewLocationHistoryEntry creates a movement record timestamped now
func NewLocationHistoryEntry(assetID uuid.UUID, location, notes string, movedBy uuid.UUID) (*LocationHistoryEntry, error) {
	if assetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSET_ID", "Asset ID cannot be empty")
	}
	if location == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location cannot be empty")
	}
	if len(location) > 200 {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location cannot exceed 200 characters")
	}
	if movedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Moving user ID cannot be empty")
	}

	return &LocationHistoryEntry{
		BaseEntity: shared.NewBaseEntity(),
		AssetID:    assetID,
		Location:   location,
		Notes:      notes,
		MovedBy:    movedBy,
		MovedAt:    time.Now(),
	}, nil
}

// HistoryEntryWithAsset is a history entry joined with its asset's identity
type HistoryEntryWithAsset struct {
	LocationHistoryEntry
	AssetCode string `json:"asset_code"`
	AssetName string `json:"asset_name"`
}
