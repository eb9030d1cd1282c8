package persistence

import (
	"context"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLocationHistoryRepository implements asset.LocationHistoryRepository using GORM
type GormLocationHistoryRepository struct {
	db *gorm.DB
}

// NewGormLocationHistoryRepository creates a new GormLocationHistoryRepository
func NewGormLocationHistoryRepository(db *gorm.DB) *GormLocationHistoryRepository {
	return &GormLocationHistoryRepository{db: db}
}

// Save appends a movement record. Entries are never updated.
func (r *GormLocationHistoryRepository) Save(ctx context.Context, entry *asset.LocationHistoryEntry) error {
	model := models.LocationHistoryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByAssetID lists movement records for one asset, newest first
func (r *GormLocationHistoryRepository) FindByAssetID(ctx context.Context, assetID uuid.UUID) ([]*asset.LocationHistoryEntry, error) {
	var entryModels []models.LocationHistoryModel
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("moved_at DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*asset.LocationHistoryEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

// historyWithAssetRow is the scan target for the joined history query
type historyWithAssetRow struct {
	models.LocationHistoryModel
	AssetCode string
	AssetName string
}

// FindAllWithAsset lists all movement records joined with asset identity, newest first
func (r *GormLocationHistoryRepository) FindAllWithAsset(ctx context.Context) ([]*asset.HistoryEntryWithAsset, error) {
	var rows []historyWithAssetRow
	if err := r.db.WithContext(ctx).Model(&models.LocationHistoryModel{}).
		Select("location_history.*, assets.asset_code AS asset_code, assets.name AS asset_name").
		Joins("JOIN assets ON assets.id = location_history.asset_id").
		Order("location_history.moved_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]*asset.HistoryEntryWithAsset, len(rows))
	for i := range rows {
		entries[i] = &asset.HistoryEntryWithAsset{
			LocationHistoryEntry: *rows[i].LocationHistoryModel.ToDomain(),
			AssetCode:            rows[i].AssetCode,
			AssetName:            rows[i].AssetName,
		}
	}
	return entries, nil
}
