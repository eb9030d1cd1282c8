package asset

import (
	"fmt"
	"time"

	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/buildcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetStatus represents the lifecycle status of an asset
type AssetStatus string

const (
	AssetStatusActive           AssetStatus = "ACTIVE"            // In the ledger, not assigned
	AssetStatusAllocated        AssetStatus = "ALLOCATED"         // Assigned to a site/project
	AssetStatusUnderMaintenance AssetStatus = "UNDER_MAINTENANCE" // Temporarily out of service
	AssetStatusDisposed         AssetStatus = "DISPOSED"          // Retired, terminal
)

// IsValid checks if the status is a valid AssetStatus
func (s AssetStatus) IsValid() bool {
	switch s {
	case AssetStatusActive, AssetStatusAllocated, AssetStatusUnderMaintenance, AssetStatusDisposed:
		return true
	}
	return false
}

// String returns the string representation of AssetStatus
func (s AssetStatus) String() string {
	return string(s)
}

// IsDepreciable returns true if assets in this status accrue depreciation
func (s AssetStatus) IsDepreciable() bool {
	return s == AssetStatusActive || s == AssetStatusAllocated
}

// IsTerminal returns true if the status allows no further transitions
func (s AssetStatus) IsTerminal() bool {
	return s == AssetStatusDisposed
}

// Asset represents a fixed asset aggregate root.
// It tracks the cost basis, running depreciation totals, and lifecycle status
// of construction equipment and other company property.
type Asset struct {
	shared.BaseAggregateRoot
	AssetCode               string             `json:"asset_code"`
	Name                    string             `json:"name"`
	CostBasis               decimal.Decimal    `json:"cost_basis"`
	AccumulatedDepreciation decimal.Decimal    `json:"accumulated_depreciation"`
	NetBookValue            decimal.Decimal    `json:"net_book_value"`
	DepreciationMethod      DepreciationMethod `json:"depreciation_method"`
	UsefulLifeMonths        int                `json:"useful_life_months"`
	Status                  AssetStatus        `json:"status"`
	CurrentLocation         string             `json:"current_location"`
	GRNID                   *uuid.UUID         `json:"grn_id"` // GRN that seeded the cost basis, informational
	DisposedAt              *time.Time         `json:"disposed_at"`
	DisposedBy              *uuid.UUID         `json:"disposed_by"`
	DisposalReason          string             `json:"disposal_reason"`
}

// NewAsset creates a new asset in ACTIVE status with zero accumulated depreciation
func NewAsset(
	assetCode string,
	name string,
	costBasis valueobject.Money,
	method DepreciationMethod,
	usefulLifeMonths int,
	location string,
	grnID *uuid.UUID,
) (*Asset, error) {
	// Validate inputs
	if assetCode == "" {
		return nil, shared.NewDomainError("INVALID_ASSET_CODE", "Asset code cannot be empty")
	}
	if len(assetCode) > 50 {
		return nil, shared.NewDomainError("INVALID_ASSET_CODE", "Asset code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Asset name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Asset name cannot exceed 200 characters")
	}
	if costBasis.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_COST_BASIS", "Cost basis must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Depreciation method %s is not valid", method))
	}
	if usefulLifeMonths <= 0 {
		return nil, shared.NewDomainError("INVALID_USEFUL_LIFE", "Useful life must be a positive number of months")
	}

	a := &Asset{
		BaseAggregateRoot:       shared.NewBaseAggregateRoot(),
		AssetCode:               assetCode,
		Name:                    name,
		CostBasis:               costBasis.Amount(),
		AccumulatedDepreciation: decimal.Zero,
		NetBookValue:            costBasis.Amount(),
		DepreciationMethod:      method,
		UsefulLifeMonths:        usefulLifeMonths,
		Status:                  AssetStatusActive,
		CurrentLocation:         location,
		GRNID:                   grnID,
	}

	a.AddDomainEvent(NewAssetCreatedEvent(a))

	return a, nil
}

// UpdateDetails updates mutable descriptive fields.
// Cost basis is fixed at intake and cannot be changed here.
func (a *Asset) UpdateDetails(name string, method DepreciationMethod, usefulLifeMonths int) error {
	if a.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a disposed asset")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Asset name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Asset name cannot exceed 200 characters")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Depreciation method %s is not valid", method))
	}
	if usefulLifeMonths <= 0 {
		return shared.NewDomainError("INVALID_USEFUL_LIFE", "Useful life must be a positive number of months")
	}

	a.Name = name
	a.DepreciationMethod = method
	a.UsefulLifeMonths = usefulLifeMonths
	a.UpdatedAt = time.Now()

	return nil
}

// Allocate assigns the asset to a site or project
func (a *Asset) Allocate(location string, allocatedBy uuid.UUID) error {
	if a.Status != AssetStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot allocate asset in %s status", a.Status))
	}
	if location == "" {
		return shared.NewDomainError("INVALID_LOCATION", "Location cannot be empty")
	}
	if allocatedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Allocating user ID cannot be empty")
	}

	a.Status = AssetStatusAllocated
	a.CurrentLocation = location
	a.UpdatedAt = time.Now()

	a.AddDomainEvent(NewAssetAllocatedEvent(a, allocatedBy))

	return nil
}

// Release returns an allocated asset to the pool
func (a *Asset) Release(releasedBy uuid.UUID) error {
	if a.Status != AssetStatusAllocated {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot release asset in %s status", a.Status))
	}
	if releasedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Releasing user ID cannot be empty")
	}

	a.Status = AssetStatusActive
	a.UpdatedAt = time.Now()

	a.AddDomainEvent(NewAssetReleasedEvent(a, releasedBy))

	return nil
}

// StartMaintenance takes the asset out of service.
// Maintenance suspends depreciation eligibility until EndMaintenance.
func (a *Asset) StartMaintenance(startedBy uuid.UUID) error {
	if !a.Status.IsDepreciable() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start maintenance on asset in %s status", a.Status))
	}
	if startedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	a.Status = AssetStatusUnderMaintenance
	a.UpdatedAt = time.Now()

	a.AddDomainEvent(NewAssetMaintenanceStartedEvent(a, startedBy))

	return nil
}

// EndMaintenance returns the asset to ACTIVE status
func (a *Asset) EndMaintenance(endedBy uuid.UUID) error {
	if a.Status != AssetStatusUnderMaintenance {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot end maintenance on asset in %s status", a.Status))
	}
	if endedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	a.Status = AssetStatusActive
	a.UpdatedAt = time.Now()

	a.AddDomainEvent(NewAssetMaintenanceEndedEvent(a, endedBy))

	return nil
}

// Dispose retires the asset. Terminal: disposed assets never depreciate again.
func (a *Asset) Dispose(disposedBy uuid.UUID, reason string) error {
	if a.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Asset is already disposed")
	}
	if disposedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Disposing user ID cannot be empty")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Disposal reason is required")
	}

	now := time.Now()
	a.Status = AssetStatusDisposed
	a.DisposedAt = &now
	a.DisposedBy = &disposedBy
	a.DisposalReason = reason
	a.UpdatedAt = now

	a.AddDomainEvent(NewAssetDisposedEvent(a))

	return nil
}

// MoveTo updates the asset's current location
func (a *Asset) MoveTo(location string) error {
	if location == "" {
		return shared.NewDomainError("INVALID_LOCATION", "Location cannot be empty")
	}
	a.CurrentLocation = location
	a.UpdatedAt = time.Now()
	return nil
}

// ApplyDepreciation adds one period's charge to the running totals.
// Accumulated depreciation only ever grows; net book value is floored at zero.
func (a *Asset) ApplyDepreciation(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Depreciation amount cannot be negative")
	}
	if !a.IsDepreciable() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot depreciate asset in %s status", a.Status))
	}

	a.AccumulatedDepreciation = a.AccumulatedDepreciation.Add(amount)
	a.NetBookValue = a.CostBasis.Sub(a.AccumulatedDepreciation)
	if a.NetBookValue.IsNegative() {
		a.NetBookValue = decimal.Zero
	}
	a.UpdatedAt = time.Now()

	return nil
}

// IsDepreciable returns true if the asset is eligible for depreciation runs
func (a *Asset) IsDepreciable() bool {
	return a.Status.IsDepreciable() && a.DepreciationMethod != "" && a.UsefulLifeMonths > 0
}

// IsDisposed returns true if the asset has been disposed
func (a *Asset) IsDisposed() bool {
	return a.Status == AssetStatusDisposed
}

// IsFullyDepreciated returns true if net book value has reached zero
func (a *Asset) IsFullyDepreciated() bool {
	return a.NetBookValue.IsZero()
}

// GetCostBasisMoney returns the cost basis as Money
func (a *Asset) GetCostBasisMoney() valueobject.Money {
	return valueobject.NewMoneyVND(a.CostBasis)
}

// GetNetBookValueMoney returns the net book value as Money
func (a *Asset) GetNetBookValueMoney() valueobject.Money {
	return valueobject.NewMoneyVND(a.NetBookValue)
}
