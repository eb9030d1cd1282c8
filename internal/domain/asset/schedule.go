package asset

import (
	"time"

	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepreciationSchedule is one month's depreciation charge for one asset.
// Rows are append-only; the (AssetID, PeriodDate) pair is unique.
type DepreciationSchedule struct {
	shared.BaseEntity
	AssetID                 uuid.UUID       `json:"asset_id"`
	PeriodDate              time.Time       `json:"period_date"` // First day of the month, UTC
	DepreciationAmount      decimal.Decimal `json:"depreciation_amount"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"` // Snapshot after this charge
	NetBookValue            decimal.Decimal `json:"net_book_value"`           // Snapshot after this charge
	IsProcessed             bool            `json:"is_processed"`
}

// NewDepreciationSchedule creates a schedule row snapshotting the asset's
// totals after the charge has been applied.
func NewDepreciationSchedule(
	assetID uuid.UUID,
	periodDate time.Time,
	depreciationAmount decimal.Decimal,
	accumulatedDepreciation decimal.Decimal,
	netBookValue decimal.Decimal,
) (*DepreciationSchedule, error) {
	if assetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSET_ID", "Asset ID cannot be empty")
	}
	if periodDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period date is required")
	}
	if depreciationAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Depreciation amount cannot be negative")
	}
	if netBookValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_NBV", "Net book value cannot be negative")
	}

	return &DepreciationSchedule{
		BaseEntity:              shared.NewBaseEntity(),
		AssetID:                 assetID,
		PeriodDate:              PeriodOf(periodDate),
		DepreciationAmount:      depreciationAmount,
		AccumulatedDepreciation: accumulatedDepreciation,
		NetBookValue:            netBookValue,
		IsProcessed:             false,
	}, nil
}

// ScheduleWithAsset is a schedule row joined with its asset's identity,
// the shape the ledger view lists.
type ScheduleWithAsset struct {
	DepreciationSchedule
	AssetCode string `json:"asset_code"`
	AssetName string `json:"asset_name"`
}
