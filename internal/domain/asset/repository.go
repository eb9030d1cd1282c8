package asset

import (
	"context"
	"time"

	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetFilter holds list query options for assets
type AssetFilter struct {
	shared.Filter
	Status   *AssetStatus
	Location string
}

// DepreciationSummary holds ledger-wide aggregate totals.
// All totals are zero when the ledger is empty.
type DepreciationSummary struct {
	AssetCount                   int64           `json:"asset_count"`
	TotalCostBasis               decimal.Decimal `json:"total_cost_basis"`
	TotalAccumulatedDepreciation decimal.Decimal `json:"total_accumulated_depreciation"`
	TotalNetBookValue            decimal.Decimal `json:"total_net_book_value"`
}

// Repository defines persistence for asset aggregates
type Repository interface {
	Save(ctx context.Context, a *Asset) error
	// SaveWithLock persists with optimistic locking on the version column
	SaveWithLock(ctx context.Context, a *Asset) error
	FindByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	FindByCode(ctx context.Context, code string) (*Asset, error)
	FindAll(ctx context.Context, filter AssetFilter) ([]*Asset, int64, error)
	// FindDepreciable returns assets eligible for a depreciation run:
	// method and useful life set, status ACTIVE or ALLOCATED
	FindDepreciable(ctx context.Context) ([]*Asset, error)
	Summarize(ctx context.Context) (*DepreciationSummary, error)
}

// ScheduleRepository defines persistence for depreciation schedule rows
type ScheduleRepository interface {
	// ChargedAssetIDs returns the set of asset IDs that already have a
	// schedule row for the given period
	ChargedAssetIDs(ctx context.Context, periodDate time.Time) (map[uuid.UUID]struct{}, error)
	FindByAssetID(ctx context.Context, assetID uuid.UUID) ([]*DepreciationSchedule, error)
	// FindAllWithAsset lists schedule rows joined with asset identity,
	// ordered by period date descending
	FindAllWithAsset(ctx context.Context, filter shared.Filter) ([]*ScheduleWithAsset, int64, error)
}

// GenerationWriter commits one depreciation run atomically:
// all schedule inserts and asset updates succeed or none do.
// Inserts are conditional on the (asset_id, period_date) unique index,
// so a row another run slipped in concurrently is skipped, not duplicated.
type GenerationWriter interface {
	CommitRun(ctx context.Context, assets []*Asset, schedules []*DepreciationSchedule) (int, error)
}

// LocationHistoryRepository defines persistence for movement records
type LocationHistoryRepository interface {
	Save(ctx context.Context, entry *LocationHistoryEntry) error
	FindByAssetID(ctx context.Context, assetID uuid.UUID) ([]*LocationHistoryEntry, error)
	// FindAllWithAsset lists entries joined with asset identity,
	// ordered by moved_at descending
	FindAllWithAsset(ctx context.Context) ([]*HistoryEntryWithAsset, error)
}

// GRNRepository defines persistence for goods receipt notes
type GRNRepository interface {
	Save(ctx context.Context, grn *GoodsReceiptNote) error
	SaveWithLock(ctx context.Context, grn *GoodsReceiptNote) error
	FindByID(ctx context.Context, id uuid.UUID) (*GoodsReceiptNote, error)
	// FindAll lists GRNs ordered by receipt date descending
	FindAll(ctx context.Context) ([]*GoodsReceiptNote, error)
}

// GenerationLock serializes depreciation runs across processes.
// Acquire returns false when another run holds the lock.
type GenerationLock interface {
	Acquire(ctx context.Context, periodDate time.Time, ttl time.Duration) (bool, error)
	Release(ctx context.Context, periodDate time.Time) error
}
