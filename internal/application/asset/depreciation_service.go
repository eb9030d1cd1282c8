package asset

import (
	"context"
	"time"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// generationLockTTL bounds how long a crashed run can block the next one
const generationLockTTL = 10 * time.Minute

// DepreciationService runs depreciation generation and serves the ledger view
type DepreciationService struct {
	assetRepo    asset.Repository
	scheduleRepo asset.ScheduleRepository
	writer       asset.GenerationWriter
	lock         asset.GenerationLock
	lockTTL      time.Duration
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewDepreciationService creates a new DepreciationService
func NewDepreciationService(
	assetRepo asset.Repository,
	scheduleRepo asset.ScheduleRepository,
	writer asset.GenerationWriter,
	lock asset.GenerationLock,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *DepreciationService {
	return &DepreciationService{
		assetRepo:    assetRepo,
		scheduleRepo: scheduleRepo,
		writer:       writer,
		lock:         lock,
		lockTTL:      generationLockTTL,
		publisher:    publisher,
		logger:       logger,
	}
}

// SetLockTTL overrides how long a crashed run may block the next one
func (s *DepreciationService) SetLockTTL(ttl time.Duration) {
	if ttl > 0 {
		s.lockTTL = ttl
	}
}

// GenerationResult reports the outcome of one depreciation run
type GenerationResult struct {
	PeriodDate    time.Time       `json:"period_date"`
	AssetsCharged int             `json:"assets_charged"`
	AssetsSkipped int             `json:"assets_skipped"`
	TotalCharge   decimal.Decimal `json:"total_charge"`
}

// ScheduleResponse represents a schedule row joined with asset identity
type ScheduleResponse struct {
	ID                      uuid.UUID       `json:"id"`
	AssetID                 uuid.UUID       `json:"asset_id"`
	AssetCode               string          `json:"asset_code"`
	AssetName               string          `json:"asset_name"`
	PeriodDate              time.Time       `json:"period_date"`
	DepreciationAmount      decimal.Decimal `json:"depreciation_amount"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	NetBookValue            decimal.Decimal `json:"net_book_value"`
	IsProcessed             bool            `json:"is_processed"`
	CreatedAt               time.Time       `json:"created_at"`
}

// ScheduleListFilter defines filtering options for schedule list queries
type ScheduleListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// GenerateDepreciation charges the current calendar month for every eligible
// asset that has no schedule row for the period yet.
//
// The run is a batch: all eligible assets are fetched once, charges are
// computed in memory, and schedules plus asset totals are committed in a
// single transaction. A method without a compute policy fails the whole run
// before any write. Concurrent runs are excluded by the generation lock.
func (s *DepreciationService) GenerateDepreciation(ctx context.Context) (*GenerationResult, error) {
	period := asset.CurrentPeriod()

	acquired, err := s.lock.Acquire(ctx, period, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, shared.ErrGenerationInProgress
	}
	defer func() {
		if err := s.lock.Release(ctx, period); err != nil {
			s.logger.Warn("failed to release generation lock",
				zap.Time("period", period),
				zap.Error(err),
			)
		}
	}()

	assets, err := s.assetRepo.FindDepreciable(ctx)
	if err != nil {
		return nil, err
	}

	charged, err := s.scheduleRepo.ChargedAssetIDs(ctx, period)
	if err != nil {
		return nil, err
	}

	// Compute phase: no writes happen until every charge has been computed,
	// so an unsupported method aborts the run with nothing persisted.
	var (
		toUpdate    []*asset.Asset
		toInsert    []*asset.DepreciationSchedule
		skipped     int
		totalCharge = decimal.Zero
	)
	for _, a := range assets {
		if _, ok := charged[a.ID]; ok {
			skipped++
			continue
		}

		charge, err := asset.MonthlyCharge(a.DepreciationMethod, a.CostBasis, a.UsefulLifeMonths)
		if err != nil {
			s.logger.Error("depreciation run aborted",
				zap.String("asset_code", a.AssetCode),
				zap.String("method", a.DepreciationMethod.String()),
				zap.Error(err),
			)
			return nil, err
		}

		if err := a.ApplyDepreciation(charge); err != nil {
			return nil, err
		}

		schedule, err := asset.NewDepreciationSchedule(a.ID, period, charge, a.AccumulatedDepreciation, a.NetBookValue)
		if err != nil {
			return nil, err
		}

		toUpdate = append(toUpdate, a)
		toInsert = append(toInsert, schedule)
		totalCharge = totalCharge.Add(charge)
	}

	count := 0
	if len(toInsert) > 0 {
		count, err = s.writer.CommitRun(ctx, toUpdate, toInsert)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("depreciation run completed",
		zap.Time("period", period),
		zap.Int("assets_charged", count),
		zap.Int("assets_skipped", skipped),
		zap.String("total_charge", totalCharge.String()),
	)

	if s.publisher != nil && count > 0 {
		_ = s.publisher.Publish(ctx, asset.NewDepreciationGeneratedEvent(uuid.New(), period, count, totalCharge))
	}

	return &GenerationResult{
		PeriodDate:    period,
		AssetsCharged: count,
		AssetsSkipped: skipped,
		TotalCharge:   totalCharge,
	}, nil
}

// ListSchedules lists schedule rows joined with asset identity,
// newest period first
func (s *DepreciationService) ListSchedules(ctx context.Context, filter ScheduleListFilter) ([]ScheduleResponse, int64, error) {
	rows, total, err := s.scheduleRepo.FindAllWithAsset(ctx, shared.Filter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ScheduleResponse, len(rows))
	for i, row := range rows {
		responses[i] = ScheduleResponse{
			ID:                      row.ID,
			AssetID:                 row.AssetID,
			AssetCode:               row.AssetCode,
			AssetName:               row.AssetName,
			PeriodDate:              row.PeriodDate,
			DepreciationAmount:      row.DepreciationAmount,
			AccumulatedDepreciation: row.AccumulatedDepreciation,
			NetBookValue:            row.NetBookValue,
			IsProcessed:             row.IsProcessed,
			CreatedAt:               row.CreatedAt,
		}
	}
	return responses, total, nil
}

// Summarize returns ledger-wide totals; all zero when the ledger is empty
func (s *DepreciationService) Summarize(ctx context.Context) (*asset.DepreciationSummary, error) {
	return s.assetRepo.Summarize(ctx)
}
