package persistence

import (
	"context"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGenerationWriter implements asset.GenerationWriter using GORM.
// A whole depreciation run commits in one transaction. Schedule inserts
// rely on the (asset_id, period_date) unique index with DO NOTHING on
// conflict, so a row a concurrent run slipped in is skipped silently.
type GormGenerationWriter struct {
	db *gorm.DB
}

// NewGormGenerationWriter creates a new GormGenerationWriter
func NewGormGenerationWriter(db *gorm.DB) *GormGenerationWriter {
	return &GormGenerationWriter{db: db}
}

// CommitRun persists all schedule rows and asset updates atomically.
// Returns the number of schedule rows actually inserted.
func (w *GormGenerationWriter) CommitRun(ctx context.Context, assets []*asset.Asset, schedules []*asset.DepreciationSchedule) (int, error) {
	var inserted int

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insertedByAsset := make(map[string]bool, len(schedules))

		for _, s := range schedules {
			model := models.DepreciationScheduleModelFromDomain(s)
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "asset_id"}, {Name: "period_date"}},
				DoNothing: true,
			}).Create(model)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				inserted++
				insertedByAsset[s.AssetID.String()] = true
			}
		}

		for _, a := range assets {
			// Only touch assets whose schedule row actually landed
			if !insertedByAsset[a.GetID().String()] {
				continue
			}
			model := models.AssetModelFromDomain(a)
			if err := tx.Model(&models.AssetModel{}).
				Where("id = ?", a.GetID()).
				Updates(map[string]any{
					"accumulated_depreciation": model.AccumulatedDepreciation,
					"net_book_value":           model.NetBookValue,
					"updated_at":               model.UpdatedAt,
				}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}
