package asset

import (
	"context"
	"time"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/buildcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetService provides application-level asset ledger operations
type AssetService struct {
	assetRepo asset.Repository
	grnRepo   asset.GRNRepository
	publisher shared.EventPublisher
}

// NewAssetService creates a new AssetService
func NewAssetService(
	assetRepo asset.Repository,
	grnRepo asset.GRNRepository,
	publisher shared.EventPublisher,
) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		grnRepo:   grnRepo,
		publisher: publisher,
	}
}

// AssetResponse represents an asset in API responses
type AssetResponse struct {
	ID                      uuid.UUID       `json:"id"`
	AssetCode               string          `json:"asset_code"`
	Name                    string          `json:"name"`
	CostBasis               decimal.Decimal `json:"cost_basis"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	NetBookValue            decimal.Decimal `json:"net_book_value"`
	DepreciationMethod      string          `json:"depreciation_method"`
	UsefulLifeMonths        int             `json:"useful_life_months"`
	Status                  string          `json:"status"`
	CurrentLocation         string          `json:"current_location"`
	GRNID                   *uuid.UUID      `json:"grn_id,omitempty"`
	DisposedAt              *time.Time      `json:"disposed_at,omitempty"`
	DisposedBy              *uuid.UUID      `json:"disposed_by,omitempty"`
	DisposalReason          string          `json:"disposal_reason,omitempty"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
	Version                 int             `json:"version"`
}

// CreateAssetRequest represents a request to create an asset
type CreateAssetRequest struct {
	AssetCode          string          `json:"asset_code" binding:"required"`
	Name               string          `json:"name" binding:"required"`
	CostBasis          decimal.Decimal `json:"cost_basis" binding:"required"`
	DepreciationMethod string          `json:"depreciation_method" binding:"required"`
	UsefulLifeMonths   int             `json:"useful_life_months" binding:"required"`
	Location           string          `json:"location"`
	GRNID              *uuid.UUID      `json:"grn_id"`
}

// UpdateAssetRequest represents a request to update an asset's mutable fields
type UpdateAssetRequest struct {
	Name               string `json:"name" binding:"required"`
	DepreciationMethod string `json:"depreciation_method" binding:"required"`
	UsefulLifeMonths   int    `json:"useful_life_months" binding:"required"`
}

// AssetListFilter defines filtering options for asset list queries
type AssetListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Location string `form:"location"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateAsset creates a new asset, optionally linked to the GRN that seeded
// its cost basis
func (s *AssetService) CreateAsset(ctx context.Context, req CreateAssetRequest) (*AssetResponse, error) {
	if existing, err := s.assetRepo.FindByCode(ctx, req.AssetCode); err == nil && existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_ASSET_CODE", "An asset with this code already exists")
	}

	if req.GRNID != nil {
		if _, err := s.grnRepo.FindByID(ctx, *req.GRNID); err != nil {
			return nil, shared.NewDomainError("GRN_NOT_FOUND", "Referenced GRN does not exist")
		}
	}

	costBasis := valueobject.NewMoneyVND(req.CostBasis)
	a, err := asset.NewAsset(
		req.AssetCode,
		req.Name,
		costBasis,
		asset.DepreciationMethod(req.DepreciationMethod),
		req.UsefulLifeMonths,
		req.Location,
		req.GRNID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.assetRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, a)

	return toAssetResponse(a), nil
}

// GetAssetByID gets an asset by ID
func (s *AssetService) GetAssetByID(ctx context.Context, id uuid.UUID) (*AssetResponse, error) {
	a, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAssetResponse(a), nil
}

// UpdateAsset updates an asset's mutable fields.
// Cost basis is fixed at intake and is not part of the request.
func (s *AssetService) UpdateAsset(ctx context.Context, id uuid.UUID, req UpdateAssetRequest) (*AssetResponse, error) {
	a, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := a.UpdateDetails(req.Name, asset.DepreciationMethod(req.DepreciationMethod), req.UsefulLifeMonths); err != nil {
		return nil, err
	}

	if err := s.assetRepo.SaveWithLock(ctx, a); err != nil {
		return nil, err
	}

	return toAssetResponse(a), nil
}

// ListAssets lists assets with filtering and pagination
func (s *AssetService) ListAssets(ctx context.Context, filter AssetListFilter) ([]AssetResponse, int64, error) {
	domainFilter := asset.AssetFilter{
		Filter: shared.Filter{
			Search:   filter.Search,
			Page:     filter.Page,
			PageSize: filter.PageSize,
		},
		Location: filter.Location,
	}
	if filter.Status != "" {
		status := asset.AssetStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Asset status is not valid")
		}
		domainFilter.Status = &status
	}

	assets, total, err := s.assetRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AssetResponse, len(assets))
	for i, a := range assets {
		responses[i] = *toAssetResponse(a)
	}
	return responses, total, nil
}

// AllocateAsset assigns an asset to a site or project
func (s *AssetService) AllocateAsset(ctx context.Context, id uuid.UUID, location string, userID uuid.UUID) (*AssetResponse, error) {
	return s.transition(ctx, id, func(a *asset.Asset) error {
		return a.Allocate(location, userID)
	})
}

// ReleaseAsset returns an allocated asset to the pool
func (s *AssetService) ReleaseAsset(ctx context.Context, id, userID uuid.UUID) (*AssetResponse, error) {
	return s.transition(ctx, id, func(a *asset.Asset) error {
		return a.Release(userID)
	})
}

// StartMaintenance takes an asset out of service
func (s *AssetService) StartMaintenance(ctx context.Context, id, userID uuid.UUID) (*AssetResponse, error) {
	return s.transition(ctx, id, func(a *asset.Asset) error {
		return a.StartMaintenance(userID)
	})
}

// EndMaintenance returns an asset to active status
func (s *AssetService) EndMaintenance(ctx context.Context, id, userID uuid.UUID) (*AssetResponse, error) {
	return s.transition(ctx, id, func(a *asset.Asset) error {
		return a.EndMaintenance(userID)
	})
}

// DisposeAsset retires an asset permanently
func (s *AssetService) DisposeAsset(ctx context.Context, id, userID uuid.UUID, reason string) (*AssetResponse, error) {
	return s.transition(ctx, id, func(a *asset.Asset) error {
		return a.Dispose(userID, reason)
	})
}

// transition loads, mutates, and persists an asset with optimistic locking
func (s *AssetService) transition(ctx context.Context, id uuid.UUID, fn func(*asset.Asset) error) (*AssetResponse, error) {
	a, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(a); err != nil {
		return nil, err
	}

	if err := s.assetRepo.SaveWithLock(ctx, a); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, a)

	return toAssetResponse(a), nil
}

func (s *AssetService) publishEvents(ctx context.Context, a *asset.Asset) {
	if s.publisher == nil {
		return
	}
	events := a.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Bus logs handler failures itself; publishing is best effort after commit
	_ = s.publisher.Publish(ctx, events...)
	a.ClearDomainEvents()
}

func toAssetResponse(a *asset.Asset) *AssetResponse {
	return &AssetResponse{
		ID:                      a.ID,
		AssetCode:               a.AssetCode,
		Name:                    a.Name,
		CostBasis:               a.CostBasis,
		AccumulatedDepreciation: a.AccumulatedDepreciation,
		NetBookValue:            a.NetBookValue,
		DepreciationMethod:      a.DepreciationMethod.String(),
		UsefulLifeMonths:        a.UsefulLifeMonths,
		Status:                  a.Status.String(),
		CurrentLocation:         a.CurrentLocation,
		GRNID:                   a.GRNID,
		DisposedAt:              a.DisposedAt,
		DisposedBy:              a.DisposedBy,
		DisposalReason:          a.DisposalReason,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
		Version:                 a.Version,
	}
}
