package asset

import (
	"context"
	"strings"
	"time"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/buildcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GRNService records and lists goods receipt notes
type GRNService struct {
	grnRepo   asset.GRNRepository
	publisher shared.EventPublisher
}

// NewGRNService creates a new GRNService
func NewGRNService(grnRepo asset.GRNRepository, publisher shared.EventPublisher) *GRNService {
	return &GRNService{
		grnRepo:   grnRepo,
		publisher: publisher,
	}
}

// SaveGRNRequest represents a request to create or fully replace a GRN
type SaveGRNRequest struct {
	GRNNumber   string          `json:"grn_number" binding:"required"`
	ReceiptDate time.Time       `json:"receipt_date" binding:"required"`
	Supplier    string          `json:"supplier"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Notes       string          `json:"notes"`
}

// GRNResponse represents a GRN in API responses
type GRNResponse struct {
	ID          uuid.UUID       `json:"id"`
	GRNNumber   string          `json:"grn_number"`
	ReceiptDate time.Time       `json:"receipt_date"`
	Supplier    string          `json:"supplier"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// SaveGRN inserts a new GRN, or fully replaces the fields of an existing one
// when existingID is given. Inserts record the acting user as creator.
func (s *GRNService) SaveGRN(ctx context.Context, req SaveGRNRequest, existingID *uuid.UUID, actingUser uuid.UUID) (*GRNResponse, error) {
	totalValue := valueobject.NewMoneyVND(req.TotalValue)

	if existingID == nil {
		grn, err := asset.NewGoodsReceiptNote(req.GRNNumber, req.ReceiptDate, req.Supplier, totalValue, req.Notes, actingUser)
		if err != nil {
			return nil, err
		}
		if err := s.grnRepo.Save(ctx, grn); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, grn)
		return toGRNResponse(grn), nil
	}

	grn, err := s.grnRepo.FindByID(ctx, *existingID)
	if err != nil {
		return nil, err
	}
	if err := grn.Replace(req.GRNNumber, req.ReceiptDate, req.Supplier, totalValue, req.Notes); err != nil {
		return nil, err
	}
	if err := s.grnRepo.SaveWithLock(ctx, grn); err != nil {
		return nil, err
	}
	return toGRNResponse(grn), nil
}

// GetGRNByID gets a GRN by ID
func (s *GRNService) GetGRNByID(ctx context.Context, id uuid.UUID) (*GRNResponse, error) {
	grn, err := s.grnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toGRNResponse(grn), nil
}

// ListGRNs lists all GRNs newest receipt first, optionally narrowed by a
// substring query across the displayed fields
func (s *GRNService) ListGRNs(ctx context.Context, query string) ([]GRNResponse, error) {
	grns, err := s.grnRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterGRNs(grns, query)

	responses := make([]GRNResponse, len(filtered))
	for i, grn := range filtered {
		responses[i] = *toGRNResponse(grn)
	}
	return responses, nil
}

// FilterGRNs narrows GRNs to those whose displayed fields contain the query,
// case-insensitively. A blank query matches everything. Pure function.
func FilterGRNs(grns []*asset.GoodsReceiptNote, query string) []*asset.GoodsReceiptNote {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return grns
	}

	filtered := make([]*asset.GoodsReceiptNote, 0, len(grns))
	for _, grn := range grns {
		if strings.Contains(strings.ToLower(grn.GRNNumber), q) ||
			strings.Contains(strings.ToLower(grn.Supplier), q) ||
			strings.Contains(strings.ToLower(grn.Notes), q) ||
			strings.Contains(grn.TotalValue.String(), q) ||
			strings.Contains(grn.ReceiptDate.Format("2006-01-02"), q) {
			filtered = append(filtered, grn)
		}
	}
	return filtered
}

func (s *GRNService) publishEvents(ctx context.Context, grn *asset.GoodsReceiptNote) {
	if s.publisher == nil {
		return
	}
	events := grn.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.publisher.Publish(ctx, events...)
	grn.ClearDomainEvents()
}

func toGRNResponse(grn *asset.GoodsReceiptNote) *GRNResponse {
	return &GRNResponse{
		ID:          grn.ID,
		GRNNumber:   grn.GRNNumber,
		ReceiptDate: grn.ReceiptDate,
		Supplier:    grn.Supplier,
		TotalValue:  grn.TotalValue,
		Notes:       grn.Notes,
		CreatedBy:   grn.CreatedBy,
		CreatedAt:   grn.CreatedAt,
		UpdatedAt:   grn.UpdatedAt,
		Version:     grn.Version,
	}
}
