package asset

import (
	"time"

	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/buildcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoodsReceiptNote records the receipt of purchased goods.
// An asset may reference the GRN that seeded its cost basis, but no link
// is created automatically when a GRN is saved.
// GRN numbers are not checked for uniqueness, only for presence.
type GoodsReceiptNote struct {
	shared.BaseAggregateRoot
	GRNNumber   string          `json:"grn_number"`
	ReceiptDate time.Time       `json:"receipt_date"`
	Supplier    string          `json:"supplier"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Notes       string          `json:"notes"`
	CreatedBy   uuid.UUID       `json:"created_by"`
}

// NewGoodsReceiptNote creates a new GRN
func NewGoodsReceiptNote(
	grnNumber string,
	receiptDate time.Time,
	supplier string,
	totalValue valueobject.Money,
	notes string,
	createdBy uuid.UUID,
) (*GoodsReceiptNote, error) {
	if grnNumber == "" {
		return nil, shared.NewDomainError("INVALID_GRN_NUMBER", "GRN number cannot be empty")
	}
	if len(grnNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_GRN_NUMBER", "GRN number cannot exceed 50 characters")
	}
	if receiptDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_RECEIPT_DATE", "Receipt date is required")
	}
	if totalValue.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL_VALUE", "Total value cannot be negative")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creating user ID cannot be empty")
	}

	grn := &GoodsReceiptNote{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		GRNNumber:         grnNumber,
		ReceiptDate:       receiptDate,
		Supplier:          supplier,
		TotalValue:        totalValue.Amount(),
		Notes:             notes,
		CreatedBy:         createdBy,
	}

	grn.AddDomainEvent(NewGoodsReceiptRecordedEvent(grn))

	return grn, nil
}

// Replace overwrites all user-editable fields in place.
// This is a full replacement, not a merge; CreatedBy is preserved.
func (g *GoodsReceiptNote) Replace(
	grnNumber string,
	receiptDate time.Time,
	supplier string,
	totalValue valueobject.Money,
	notes string,
) error {
	if grnNumber == "" {
		return shared.NewDomainError("INVALID_GRN_NUMBER", "GRN number cannot be empty")
	}
	if len(grnNumber) > 50 {
		return shared.NewDomainError("INVALID_GRN_NUMBER", "GRN number cannot exceed 50 characters")
	}
	if receiptDate.IsZero() {
		return shared.NewDomainError("INVALID_RECEIPT_DATE", "Receipt date is required")
	}
	if totalValue.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_TOTAL_VALUE", "Total value cannot be negative")
	}

	g.GRNNumber = grnNumber
	g.ReceiptDate = receiptDate
	g.Supplier = supplier
	g.TotalValue = totalValue.Amount()
	g.Notes = notes
	g.UpdatedAt = time.Now()

	return nil
}

// GetTotalValueMoney returns the total value as Money
func (g *GoodsReceiptNote) GetTotalValueMoney() valueobject.Money {
	return valueobject.NewMoneyVND(g.TotalValue)
}
