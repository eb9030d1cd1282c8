package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/buildcore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAssetRepository implements asset.Repository using GORM
type GormAssetRepository struct {
	db *gorm.DB
}

// NewGormAssetRepository creates a new GormAssetRepository
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// Save creates or updates an asset
func (r *GormAssetRepository) Save(ctx context.Context, a *asset.Asset) error {
	model := models.AssetModelFromDomain(a)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the asset with optimistic locking
func (r *GormAssetRepository) SaveWithLock(ctx context.Context, a *asset.Asset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.AssetModel
		if err := tx.Select("version").Where("id = ?", a.GetID()).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				model := models.AssetModelFromDomain(a)
				return tx.Create(model).Error
			}
			return err
		}

		expectedVersion := a.GetVersion() - 1
		if current.Version != expectedVersion {
			return shared.ErrConcurrencyConflict
		}

		model := models.AssetModelFromDomain(a)
		result := tx.Model(model).
			Where("id = ? AND version = ?", a.GetID(), expectedVersion).
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

// FindByID finds an asset by its ID
func (r *GormAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	var model models.AssetModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds an asset by its asset code
func (r *GormAssetRepository) FindByCode(ctx context.Context, code string) (*asset.Asset, error) {
	var model models.AssetModel
	if err := r.db.WithContext(ctx).First(&model, "asset_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds assets matching the filter with pagination
func (r *GormAssetRepository) FindAll(ctx context.Context, filter asset.AssetFilter) ([]*asset.Asset, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AssetModel{})
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, AssetSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}

	var assetModels []models.AssetModel
	if err := query.Find(&assetModels).Error; err != nil {
		return nil, 0, err
	}

	assets := make([]*asset.Asset, len(assetModels))
	for i := range assetModels {
		assets[i] = assetModels[i].ToDomain()
	}
	return assets, total, nil
}

// FindDepreciable returns assets eligible for a depreciation run
func (r *GormAssetRepository) FindDepreciable(ctx context.Context) ([]*asset.Asset, error) {
	var assetModels []models.AssetModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []asset.AssetStatus{asset.AssetStatusActive, asset.AssetStatusAllocated}).
		Where("useful_life_months > 0").
		Where("depreciation_method <> ''").
		Order("asset_code ASC").
		Find(&assetModels).Error; err != nil {
		return nil, err
	}

	assets := make([]*asset.Asset, len(assetModels))
	for i := range assetModels {
		assets[i] = assetModels[i].ToDomain()
	}
	return assets, nil
}

// Summarize computes ledger-wide totals across all assets
func (r *GormAssetRepository) Summarize(ctx context.Context) (*asset.DepreciationSummary, error) {
	var summary asset.DepreciationSummary
	if err := r.db.WithContext(ctx).Model(&models.AssetModel{}).
		Select("COUNT(*) as asset_count, " +
			"COALESCE(SUM(cost_basis), 0) as total_cost_basis, " +
			"COALESCE(SUM(accumulated_depreciation), 0) as total_accumulated_depreciation, " +
			"COALESCE(SUM(net_book_value), 0) as total_net_book_value").
		Scan(&summary).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}

// applyFilter applies filter conditions without pagination or ordering
func (r *GormAssetRepository) applyFilter(query *gorm.DB, filter asset.AssetFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("(asset_code ILIKE ? OR name ILIKE ?)", searchPattern, searchPattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Location != "" {
		query = query.Where("current_location ILIKE ?", "%"+filter.Location+"%")
	}
	return query
}
