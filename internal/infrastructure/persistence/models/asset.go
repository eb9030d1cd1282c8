package models

import (
	"time"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetModel is the persistence model for the Asset aggregate root.
type AssetModel struct {
	AggregateModel
	AssetCode               string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name                    string                   `gorm:"type:varchar(200);not null"`
	CostBasis               decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	AccumulatedDepreciation decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	NetBookValue            decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	DepreciationMethod      asset.DepreciationMethod `gorm:"type:varchar(30);not null"`
	UsefulLifeMonths        int                      `gorm:"not null"`
	Status                  asset.AssetStatus        `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	CurrentLocation         string                   `gorm:"type:varchar(200)"`
	GRNID                   *uuid.UUID               `gorm:"type:uuid;index"`
	DisposedAt              *time.Time
	DisposedBy              *uuid.UUID `gorm:"type:uuid"`
	DisposalReason          string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (AssetModel) TableName() string {
	return "assets"
}

// ToDomain converts the persistence model to a domain Asset entity.
func (m *AssetModel) ToDomain() *asset.Asset {
	return &asset.Asset{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		AssetCode:               m.AssetCode,
		Name:                    m.Name,
		CostBasis:               m.CostBasis,
		AccumulatedDepreciation: m.AccumulatedDepreciation,
		NetBookValue:            m.NetBookValue,
		DepreciationMethod:      m.DepreciationMethod,
		UsefulLifeMonths:        m.UsefulLifeMonths,
		Status:                  m.Status,
		CurrentLocation:         m.CurrentLocation,
		GRNID:                   m.GRNID,
		DisposedAt:              m.DisposedAt,
		DisposedBy:              m.DisposedBy,
		DisposalReason:          m.DisposalReason,
	}
}

// FromDomain populates the persistence model from a domain Asset entity.
func (m *AssetModel) FromDomain(a *asset.Asset) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.AssetCode = a.AssetCode
	m.Name = a.Name
	m.CostBasis = a.CostBasis
	m.AccumulatedDepreciation = a.AccumulatedDepreciation
	m.NetBookValue = a.NetBookValue
	m.DepreciationMethod = a.DepreciationMethod
	m.UsefulLifeMonths = a.UsefulLifeMonths
	m.Status = a.Status
	m.CurrentLocation = a.CurrentLocation
	m.GRNID = a.GRNID
	m.DisposedAt = a.DisposedAt
	m.DisposedBy = a.DisposedBy
	m.DisposalReason = a.DisposalReason
}

// AssetModelFromDomain creates a new persistence model from a domain Asset.
func AssetModelFromDomain(a *asset.Asset) *AssetModel {
	m := &AssetModel{}
	m.FromDomain(a)
	return m
}

// DepreciationScheduleModel is the persistence model for depreciation schedule rows.
// The (asset_id, period_date) unique index backs the run idempotence guarantee.
type DepreciationScheduleModel struct {
	BaseModel
	AssetID                 uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_schedule_asset_period,priority:1"`
	PeriodDate              time.Time       `gorm:"not null;uniqueIndex:idx_schedule_asset_period,priority:2;index"`
	DepreciationAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AccumulatedDepreciation decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NetBookValue            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsProcessed             bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (DepreciationScheduleModel) TableName() string {
	return "depreciation_schedules"
}

// ToDomain converts the persistence model to a domain DepreciationSchedule entity.
func (m *DepreciationScheduleModel) ToDomain() *asset.DepreciationSchedule {
	return &asset.DepreciationSchedule{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		AssetID:                 m.AssetID,
		PeriodDate:              m.PeriodDate,
		DepreciationAmount:      m.DepreciationAmount,
		AccumulatedDepreciation: m.AccumulatedDepreciation,
		NetBookValue:            m.NetBookValue,
		IsProcessed:             m.IsProcessed,
	}
}

// FromDomain populates the persistence model from a domain DepreciationSchedule entity.
func (m *DepreciationScheduleModel) FromDomain(s *asset.DepreciationSchedule) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.AssetID = s.AssetID
	m.PeriodDate = s.PeriodDate
	m.DepreciationAmount = s.DepreciationAmount
	m.AccumulatedDepreciation = s.AccumulatedDepreciation
	m.NetBookValue = s.NetBookValue
	m.IsProcessed = s.IsProcessed
}

// DepreciationScheduleModelFromDomain creates a new persistence model from a domain DepreciationSchedule.
func DepreciationScheduleModelFromDomain(s *asset.DepreciationSchedule) *DepreciationScheduleModel {
	m := &DepreciationScheduleModel{}
	m.FromDomain(s)
	return m
}

// LocationHistoryModel is the persistence model for asset movement records.
type LocationHistoryModel struct {
	BaseModel
	AssetID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Location string    `gorm:"type:varchar(200);not null"`
	Notes    string    `gorm:"type:text"`
	MovedBy  uuid.UUID `gorm:"type:uuid;not null"`
	MovedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (LocationHistoryModel) TableName() string {
	return "location_history"
}

// ToDomain converts the persistence model to a domain LocationHistoryEntry entity.
func (m *LocationHistoryModel) ToDomain() *asset.LocationHistoryEntry {
	return &asset.LocationHistoryEntry{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		AssetID:  m.AssetID,
		Location: m.Location,
		Notes:    m.Notes,
		MovedBy:  m.MovedBy,
		MovedAt:  m.MovedAt,
	}
}

// FromDomain populates the persistence model from a domain LocationHistoryEntry entity.
func (m *LocationHistoryModel) FromDomain(e *asset.LocationHistoryEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.AssetID = e.AssetID
	m.Location = e.Location
	m.Notes = e.Notes
	m.MovedBy = e.MovedBy
	m.MovedAt = e.MovedAt
}

// LocationHistoryModelFromDomain creates a new persistence model from a domain LocationHistoryEntry.
func LocationHistoryModelFromDomain(e *asset.LocationHistoryEntry) *LocationHistoryModel {
	m := &LocationHistoryModel{}
	m.FromDomain(e)
	return m
}

// GoodsReceiptNoteModel is the persistence model for the GoodsReceiptNote aggregate root.
// grn_number is deliberately not unique, duplicates are accepted at intake.
type GoodsReceiptNoteModel struct {
	AggregateModel
	GRNNumber   string          `gorm:"type:varchar(50);not null;index"`
	ReceiptDate time.Time       `gorm:"not null;index"`
	Supplier    string          `gorm:"type:varchar(200)"`
	TotalValue  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes       string          `gorm:"type:text"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (GoodsReceiptNoteModel) TableName() string {
	return "goods_receipt_notes"
}

// ToDomain converts the persistence model to a domain GoodsReceiptNote entity.
func (m *GoodsReceiptNoteModel) ToDomain() *asset.GoodsReceiptNote {
	return &asset.GoodsReceiptNote{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		GRNNumber:   m.GRNNumber,
		ReceiptDate: m.ReceiptDate,
		Supplier:    m.Supplier,
		TotalValue:  m.TotalValue,
		Notes:       m.Notes,
		CreatedBy:   m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain GoodsReceiptNote entity.
func (m *GoodsReceiptNoteModel) FromDomain(g *asset.GoodsReceiptNote) {
	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	m.GRNNumber = g.GRNNumber
	m.ReceiptDate = g.ReceiptDate
	m.Supplier = g.Supplier
	m.TotalValue = g.TotalValue
	m.Notes = g.Notes
	m.CreatedBy = g.CreatedBy
}

// GoodsReceiptNoteModelFromDomain creates a new persistence model from a domain GoodsReceiptNote.
func GoodsReceiptNoteModelFromDomain(g *asset.GoodsReceiptNote) *GoodsReceiptNoteModel {
	m := &GoodsReceiptNoteModel{}
	m.FromDomain(g)
	return m
}
