package asset

import (
	"context"
	"strings"
	"time"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LocationService tracks asset movements
type LocationService struct {
	assetRepo   asset.Repository
	historyRepo asset.LocationHistoryRepository
	publisher   shared.EventPublisher
}

// NewLocationService creates a new LocationService
func NewLocationService(
	assetRepo asset.Repository,
	historyRepo asset.LocationHistoryRepository,
	publisher shared.EventPublisher,
) *LocationService {
	return &LocationService{
		assetRepo:   assetRepo,
		historyRepo: historyRepo,
		publisher:   publisher,
	}
}

// RecordLocationChangeRequest represents a request to record a movement
type RecordLocationChangeRequest struct {
	AssetID  uuid.UUID `json:"asset_id" binding:"required"`
	Location string    `json:"location" binding:"required"`
	Notes    string    `json:"notes"`
}

// LocationHistoryResponse represents a movement record joined with asset identity
type LocationHistoryResponse struct {
	ID        uuid.UUID `json:"id"`
	AssetID   uuid.UUID `json:"asset_id"`
	AssetCode string    `json:"asset_code"`
	AssetName string    `json:"asset_name"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes,omitempty"`
	MovedBy   uuid.UUID `json:"moved_by"`
	MovedAt   time.Time `json:"moved_at"`
}

// RecordLocationChange appends a movement record and updates the asset's
// current location. Validation happens before any write.
func (s *LocationService) RecordLocationChange(ctx context.Context, req RecordLocationChangeRequest, movedBy uuid.UUID) (*LocationHistoryResponse, error) {
	entry, err := asset.NewLocationHistoryEntry(req.AssetID, req.Location, req.Notes, movedBy)
	if err != nil {
		return nil, err
	}

	a, err := s.assetRepo.FindByID(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}

	if err := s.historyRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	if err := a.MoveTo(req.Location); err != nil {
		return nil, err
	}
	if err := s.assetRepo.SaveWithLock(ctx, a); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, asset.NewLocationChangedEvent(entry))
	}

	return &LocationHistoryResponse{
		ID:        entry.ID,
		AssetID:   entry.AssetID,
		AssetCode: a.AssetCode,
		AssetName: a.Name,
		Location:  entry.Location,
		Notes:     entry.Notes,
		MovedBy:   entry.MovedBy,
		MovedAt:   entry.MovedAt,
	}, nil
}

// ListHistory lists all movement records joined with asset identity,
// newest first, optionally narrowed by a free-text query over asset name
// and location
func (s *LocationService) ListHistory(ctx context.Context, query string) ([]LocationHistoryResponse, error) {
	entries, err := s.historyRepo.FindAllWithAsset(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterEntries(entries, query)

	responses := make([]LocationHistoryResponse, len(filtered))
	for i, e := range filtered {
		responses[i] = toLocationHistoryResponse(e)
	}
	return responses, nil
}

// ListHistoryForAsset lists one asset's movement records, newest first
func (s *LocationService) ListHistoryForAsset(ctx context.Context, assetID uuid.UUID) ([]LocationHistoryResponse, error) {
	a, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.FindByAssetID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	responses := make([]LocationHistoryResponse, len(entries))
	for i, e := range entries {
		responses[i] = LocationHistoryResponse{
			ID:        e.ID,
			AssetID:   e.AssetID,
			AssetCode: a.AssetCode,
			AssetName: a.Name,
			Location:  e.Location,
			Notes:     e.Notes,
			MovedBy:   e.MovedBy,
			MovedAt:   e.MovedAt,
		}
	}
	return responses, nil
}

// FilterEntries narrows entries to those whose asset name or location
// contains the query, case-insensitively. A blank query matches everything.
// Pure function: the input slice is never mutated and order is preserved.
func FilterEntries(entries []*asset.HistoryEntryWithAsset, query string) []*asset.HistoryEntryWithAsset {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	filtered := make([]*asset.HistoryEntryWithAsset, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.AssetName), q) ||
			strings.Contains(strings.ToLower(e.Location), q) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// GroupByAsset partitions entries by asset ID, preserving each asset's
// existing relative order. Pure function.
func GroupByAsset(entries []*asset.HistoryEntryWithAsset) map[uuid.UUID][]*asset.HistoryEntryWithAsset {
	groups := make(map[uuid.UUID][]*asset.HistoryEntryWithAsset)
	for _, e := range entries {
		groups[e.AssetID] = append(groups[e.AssetID], e)
	}
	return groups
}

func toLocationHistoryResponse(e *asset.HistoryEntryWithAsset) LocationHistoryResponse {
	return LocationHistoryResponse{
		ID:        e.ID,
		AssetID:   e.AssetID,
		AssetCode: e.AssetCode,
		AssetName: e.AssetName,
		Location:  e.Location,
		Notes:     e.Notes,
		MovedBy:   e.MovedBy,
		MovedAt:   e.MovedAt,
	}
}
