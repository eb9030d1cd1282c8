package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/buildcore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormScheduleRepository implements asset.ScheduleRepository using GORM
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewGormScheduleRepository creates a new GormScheduleRepository
func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// ChargedAssetIDs returns the asset IDs that already have a schedule row for the period
func (r *GormScheduleRepository) ChargedAssetIDs(ctx context.Context, periodDate time.Time) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.DepreciationScheduleModel{}).
		Where("period_date = ?", asset.PeriodOf(periodDate)).
		Pluck("asset_id", &ids).Error; err != nil {
		return nil, err
	}

	charged := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		charged[id] = struct{}{}
	}
	return charged, nil
}

// FindByAssetID lists schedule rows for one asset, newest period first
func (r *GormScheduleRepository) FindByAssetID(ctx context.Context, assetID uuid.UUID) ([]*asset.DepreciationSchedule, error) {
	var scheduleModels []models.DepreciationScheduleModel
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("period_date DESC").
		Find(&scheduleModels).Error; err != nil {
		return nil, err
	}

	schedules := make([]*asset.DepreciationSchedule, len(scheduleModels))
	for i := range scheduleModels {
		schedules[i] = scheduleModels[i].ToDomain()
	}
	return schedules, nil
}

// scheduleWithAssetRow is the scan target for the joined ledger query
type scheduleWithAssetRow struct {
	models.DepreciationScheduleModel
	AssetCode string
	AssetName string
}

// FindAllWithAsset lists schedule rows joined with asset identity
func (r *GormScheduleRepository) FindAllWithAsset(ctx context.Context, filter shared.Filter) ([]*asset.ScheduleWithAsset, int64, error) {
	baseQuery := r.db.WithContext(ctx).Model(&models.DepreciationScheduleModel{}).
		Joins("JOIN assets ON assets.id = depreciation_schedules.asset_id")

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		baseQuery = baseQuery.Where("(assets.asset_code ILIKE ? OR assets.name ILIKE ?)", searchPattern, searchPattern)
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.OrderBy, ScheduleSortFields, "period_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query := baseQuery.
		Select("depreciation_schedules.*, assets.asset_code AS asset_code, assets.name AS asset_name").
		Order(fmt.Sprintf("depreciation_schedules.%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}

	var rows []scheduleWithAssetRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	result := make([]*asset.ScheduleWithAsset, len(rows))
	for i := range rows {
		result[i] = &asset.ScheduleWithAsset{
			DepreciationSchedule: *rows[i].DepreciationScheduleModel.ToDomain(),
			AssetCode:            rows[i].AssetCode,
			AssetName:            rows[i].AssetName,
		}
	}
	return result, total, nil
}
