package persistence

import (
	"context"
	"errors"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/buildcore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormGRNRepository implements asset.GRNRepository using GORM
type GormGRNRepository struct {
	db *gorm.DB
}

// NewGormGRNRepository creates a new GormGRNRepository
func NewGormGRNRepository(db *gorm.DB) *GormGRNRepository {
	return &GormGRNRepository{db: db}
}

// Save creates or updates a goods receipt note
func (r *GormGRNRepository) Save(ctx context.Context, grn *asset.GoodsReceiptNote) error {
	model := models.GoodsReceiptNoteModelFromDomain(grn)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the goods receipt note with optimistic locking
func (r *GormGRNRepository) SaveWithLock(ctx context.Context, grn *asset.GoodsReceiptNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.GoodsReceiptNoteModel
		if err := tx.Select("version").Where("id = ?", grn.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				model := models.GoodsReceiptNoteModelFromDomain(grn)
				return tx.Create(model).Error
			}
			return err
		}

		expectedVersion := grn.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.ErrConcurrencyConflict
		}

		model := models.GoodsReceiptNoteModelFromDomain(grn)
		result := tx.Model(model).
			Where("id = ? AND version = ?", grn.GetID(), expectedVersion).
			Save(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// FindByID finds a goods receipt note by its ID
func (r *GormGRNRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.GoodsReceiptNote, error) {
	var model models.GoodsReceiptNoteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all goods receipt notes, newest receipt first
func (r *GormGRNRepository) FindAll(ctx context.Context) ([]*asset.GoodsReceiptNote, error) {
	var grnModels []models.GoodsReceiptNoteModel
	if err := r.db.WithContext(ctx).
		Order("receipt_date DESC").
		Find(&grnModels).Error; err != nil {
		return nil, err
	}

	grns := make([]*asset.GoodsReceiptNote, len(grnModels))
	for i := range grnModels {
		grns[i] = grnModels[i].ToDomain()
	}
	return grns, nil
}
