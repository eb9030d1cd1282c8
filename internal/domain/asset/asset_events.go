package asset

import (
	"time"

	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetCreatedEvent is raised when a new asset enters the ledger
type AssetCreatedEvent struct {
	shared.BaseDomainEvent
	AssetID            uuid.UUID          `json:"asset_id"`
	AssetCode          string             `json:"asset_code"`
	Name               string             `json:"name"`
	CostBasis          decimal.Decimal    `json:"cost_basis"`
	DepreciationMethod DepreciationMethod `json:"depreciation_method"`
	UsefulLifeMonths   int                `json:"useful_life_months"`
	GRNID              *uuid.UUID         `json:"grn_id,omitempty"`
}

// EventType returns the event type name
func (e *AssetCreatedEvent) EventType() string {
	return "AssetCreated"
}

// NewAssetCreatedEvent creates a new AssetCreatedEvent
func NewAssetCreatedEvent(a *Asset) *AssetCreatedEvent {
	return &AssetCreatedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent("AssetCreated", "Asset", a.ID),
		AssetID:            a.ID,
		AssetCode:          a.AssetCode,
		Name:               a.Name,
		CostBasis:          a.CostBasis,
		DepreciationMethod: a.DepreciationMethod,
		UsefulLifeMonths:   a.UsefulLifeMonths,
		GRNID:              a.GRNID,
	}
}

// AssetAllocatedEvent is raised when an asset is assigned to a site
type AssetAllocatedEvent struct {
	shared.BaseDomainEvent
	AssetID     uuid.UUID `json:"asset_id"`
	AssetCode   string    `json:"asset_code"`
	Location    string    `json:"location"`
	AllocatedBy uuid.UUID `json:"allocated_by"`
}

// EventType returns the event type name
func (e *AssetAllocatedEvent) EventType() string {
	return "AssetAllocated"
}

// NewAssetAllocatedEvent creates a new AssetAllocatedEvent
func NewAssetAllocatedEvent(a *Asset, allocatedBy uuid.UUID) *AssetAllocatedEvent {
	return &AssetAllocatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("AssetAllocated", "Asset", a.ID),
		AssetID:         a.ID,
		AssetCode:       a.AssetCode,
		Location:        a.CurrentLocation,
		AllocatedBy:     allocatedBy,
	}
}

// AssetReleasedEvent is raised when an allocated asset returns to the pool
type AssetReleasedEvent struct {
	shared.BaseDomainEvent
	AssetID    uuid.UUID `json:"asset_id"`
	AssetCode  string    `json:"asset_code"`
	ReleasedBy uuid.UUID `json:"released_by"`
}

// EventType returns the event type name
func (e *AssetReleasedEvent) EventType() string {
	return "AssetReleased"
}

// NewAssetReleasedEvent creates a new AssetReleasedEvent
func NewAssetReleasedEvent(a *Asset, releasedBy uuid.UUID) *AssetReleasedEvent {
	return &AssetReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("AssetReleased", "Asset", a.ID),
		AssetID:         a.ID,
		AssetCode:       a.AssetCode,
		ReleasedBy:      releasedBy,
	}
}

// AssetMaintenanceStartedEvent is raised when an asset enters maintenance
type AssetMaintenanceStartedEvent struct {
	shared.BaseDomainEvent
	AssetID   uuid.UUID `json:"asset_id"`
	AssetCode string    `json:"asset_code"`
	StartedBy uuid.UUID `json:"started_by"`
}

// EventType returns the event type name
func (e *AssetMaintenanceStartedEvent) EventType() string {
	return "AssetMaintenanceStarted"
}

// NewAssetMaintenanceStartedEvent creates a new AssetMaintenanceStartedEvent
func NewAssetMaintenanceStartedEvent(a *Asset, startedBy uuid.UUID) *AssetMaintenanceStartedEvent {
	return &AssetMaintenanceStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("AssetMaintenanceStarted", "Asset", a.ID),
		AssetID:         a.ID,
		AssetCode:       a.AssetCode,
		StartedBy:       startedBy,
	}
}

// AssetMaintenanceEndedEvent is raised when an asset leaves maintenance
type AssetMaintenanceEndedEvent struct {
	shared.BaseDomainEvent
	AssetID   uuid.UUID `json:"asset_id"`
	AssetCode string    `json:"asset_code"`
	EndedBy   uuid.UUID `json:"ended_by"`
}

// EventType returns the event type name
func (e *AssetMaintenanceEndedEvent) EventType() string {
	return "AssetMaintenanceEnded"
}

// NewAssetMaintenanceEndedEvent creates a new AssetMaintenanceEndedEvent
func NewAssetMaintenanceEndedEvent(a *Asset, endedBy uuid.UUID) *AssetMaintenanceEndedEvent {
	return &AssetMaintenanceEndedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("AssetMaintenanceEnded", "Asset", a.ID),
		AssetID:         a.ID,
		AssetCode:       a.AssetCode,
		EndedBy:         endedBy,
	}
}

// AssetDisposedEvent is raised when an asset is retired
type AssetDisposedEvent struct {
	shared.BaseDomainEvent
	AssetID        uuid.UUID       `json:"asset_id"`
	AssetCode      string          `json:"asset_code"`
	NetBookValue   decimal.Decimal `json:"net_book_value"`
	DisposedBy     uuid.UUID       `json:"disposed_by"`
	DisposedAt     time.Time       `json:"disposed_at"`
	DisposalReason string          `json:"disposal_reason"`
}

// EventType returns the event type name
func (e *AssetDisposedEvent) EventType() string {
	return "AssetDisposed"
}

// NewAssetDisposedEvent creates a new AssetDisposedEvent
func NewAssetDisposedEvent(a *Asset) *AssetDisposedEvent {
	disposedAt := time.Now()
	if a.DisposedAt != nil {
		disposedAt = *a.DisposedAt
	}
	var disposedBy uuid.UUID
	if a.DisposedBy != nil {
		disposedBy = *a.DisposedBy
	}
	return &AssetDisposedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("AssetDisposed", "Asset", a.ID),
		AssetID:         a.ID,
		AssetCode:       a.AssetCode,
		NetBookValue:    a.NetBookValue,
		DisposedBy:      disposedBy,
		DisposedAt:      disposedAt,
		DisposalReason:  a.DisposalReason,
	}
}

// DepreciationGeneratedEvent is raised once per completed generation run
type DepreciationGeneratedEvent struct {
	shared.BaseDomainEvent
	RunID       uuid.UUID       `json:"run_id"`
	PeriodDate  time.Time       `json:"period_date"`
	AssetCount  int             `json:"asset_count"`
	TotalCharge decimal.Decimal `json:"total_charge"`
}

// EventType returns the event type name
func (e *DepreciationGeneratedEvent) EventType() string {
	return "DepreciationGenerated"
}

// NewDepreciationGeneratedEvent creates a new DepreciationGeneratedEvent
func NewDepreciationGeneratedEvent(runID uuid.UUID, periodDate time.Time, assetCount int, totalCharge decimal.Decimal) *DepreciationGeneratedEvent {
	return &DepreciationGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DepreciationGenerated", "DepreciationRun", runID),
		RunID:           runID,
		PeriodDate:      periodDate,
		AssetCount:      assetCount,
		TotalCharge:     totalCharge,
	}
}

// LocationChangedEvent is raised when a movement is recorded
type LocationChangedEvent struct {
	shared.BaseDomainEvent
	AssetID  uuid.UUID `json:"asset_id"`
	Location string    `json:"location"`
	MovedBy  uuid.UUID `json:"moved_by"`
	MovedAt  time.Time `json:"moved_at"`
}

// EventType returns the event type name
func (e *LocationChangedEvent) EventType() string {
	return "LocationChanged"
}

// NewLocationChangedEvent creates a new LocationChangedEvent
func NewLocationChangedEvent(entry *LocationHistoryEntry) *LocationChangedEvent {
	return &LocationChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LocationChanged", "Asset", entry.AssetID),
		AssetID:         entry.AssetID,
		Location:        entry.Location,
		MovedBy:         entry.MovedBy,
		MovedAt:         entry.MovedAt,
	}
}

// GoodsReceiptRecordedEvent is raised when a new GRN is recorded
type GoodsReceiptRecordedEvent struct {
	shared.BaseDomainEvent
	GRNID       uuid.UUID       `json:"grn_id"`
	GRNNumber   string          `json:"grn_number"`
	Supplier    string          `json:"supplier"`
	TotalValue  decimal.Decimal `json:"total_value"`
	ReceiptDate time.Time       `json:"receipt_date"`
}

// EventType returns the event type name
func (e *GoodsReceiptRecordedEvent) EventType() string {
	return "GoodsReceiptRecorded"
}

// NewGoodsReceiptRecordedEvent creates a new GoodsReceiptRecordedEvent
func NewGoodsReceiptRecordedEvent(grn *GoodsReceiptNote) *GoodsReceiptRecordedEvent {
	return &GoodsReceiptRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("GoodsReceiptRecorded", "GoodsReceiptNote", grn.ID),
		GRNID:           grn.ID,
		GRNNumber:       grn.GRNNumber,
		Supplier:        grn.Supplier,
		TotalValue:      grn.TotalValue,
		ReceiptDate:     grn.ReceiptDate,
	}
}
