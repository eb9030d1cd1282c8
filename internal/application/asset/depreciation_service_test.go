package asset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/buildcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDepreciableAsset(t *testing.T, code string, costBasis int64, lifeMonths int) *asset.Asset {
	a, err := asset.NewAsset(code, "Asset "+code,
		valueobject.NewMoneyVND(decimal.NewFromInt(costBasis)),
		asset.MethodStraightLine, lifeMonths, "Central Depot", nil)
	require.NoError(t, err)
	a.ClearDomainEvents()
	return a
}

func newDepreciationService(
	assetRepo *MockAssetRepository,
	scheduleRepo *MockScheduleRepository,
	writer *MockGenerationWriter,
	lock *MockGenerationLock,
) *DepreciationService {
	return NewDepreciationService(assetRepo, scheduleRepo, writer, lock, nil, zap.NewNop())
}

func expectLockAcquired(lock *MockGenerationLock) {
	lock.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	lock.On("Release", mock.Anything, mock.Anything).Return(nil)
}

func TestDepreciationService_GenerateDepreciation(t *testing.T) {
	ctx := context.Background()

	t.Run("charges eligible asset with straight line amount", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		scheduleRepo := new(MockScheduleRepository)
		writer := new(MockGenerationWriter)
		lock := new(MockGenerationLock)
		service := newDepreciationService(assetRepo, scheduleRepo, writer, lock)

		a := newDepreciableAsset(t, "EXC-001", 120000000, 60)

		expectLockAcquired(lock)
		assetRepo.On("FindDepreciable", ctx).Return([]*asset.Asset{a}, nil)
		scheduleRepo.On("ChargedAssetIDs", ctx, mock.Anything).Return(map[uuid.UUID]struct{}{}, nil)
		writer.On("CommitRun", ctx, mock.Anything, mock.Anything).Return(1, nil)

		result, err := service.GenerateDepreciation(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, result.AssetsCharged)
		assert.Equal(t, 0, result.AssetsSkipped)
		assert.True(t, result.TotalCharge.Equal(decimal.NewFromInt(2000000)))

		// Asset totals updated in memory before commit
		assert.True(t, a.AccumulatedDepreciation.Equal(decimal.NewFromInt(2000000)))
		assert.True(t, a.NetBookValue.Equal(decimal.NewFromInt(118000000)))

		// Schedule row snapshots the post-charge totals
		writer.AssertCalled(t, "CommitRun", ctx,
			mock.MatchedBy(func(assets []*asset.Asset) bool { return len(assets) == 1 }),
			mock.MatchedBy(func(schedules []*asset.DepreciationSchedule) bool {
				if len(schedules) != 1 {
					return false
				}
				s := schedules[0]
				return s.AssetID == a.ID &&
					s.PeriodDate.Day() == 1 &&
					s.DepreciationAmount.Equal(decimal.NewFromInt(2000000)) &&
					s.AccumulatedDepreciation.Equal(decimal.NewFromInt(2000000)) &&
					s.NetBookValue.Equal(decimal.NewFromInt(118000000))
			}))
	})

	t.Run("skips assets already charged for the period", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		scheduleRepo := new(MockScheduleRepository)
		writer := new(MockGenerationWriter)
		lock := new(MockGenerationLock)
		service := newDepreciationService(assetRepo, scheduleRepo, writer, lock)

		a := newDepreciableAsset(t, "EXC-001", 120000000, 60)
		require.NoError(t, a.ApplyDepreciation(decimal.NewFromInt(2000000)))

		expectLockAcquired(lock)
		assetRepo.On("FindDepreciable", ctx).Return([]*asset.Asset{a}, nil)
		scheduleRepo.On("ChargedAssetIDs", ctx, mock.Anything).Return(map[uuid.UUID]struct{}{a.ID: {}}, nil)

		result, err := service.GenerateDepreciation(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, result.AssetsCharged)
		assert.Equal(t, 1, result.AssetsSkipped)
		assert.True(t, result.TotalCharge.IsZero())

		// Second run leaves totals untouched and writes nothing
		assert.True(t, a.AccumulatedDepreciation.Equal(decimal.NewFromInt(2000000)))
		assert.True(t, a.NetBookValue.Equal(decimal.NewFromInt(118000000)))
		writer.AssertNotCalled(t, "CommitRun", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unsupported method aborts the run before any write", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		scheduleRepo := new(MockScheduleRepository)
		writer := new(MockGenerationWriter)
		lock := new(MockGenerationLock)
		service := newDepreciationService(assetRepo, scheduleRepo, writer, lock)

		ok := newDepreciableAsset(t, "EXC-001", 120000000, 60)
		bad, err := asset.NewAsset("GEN-002", "Generator",
			valueobject.NewMoneyVND(decimal.NewFromInt(50000000)),
			asset.MethodDecliningBalance, 36, "", nil)
		require.NoError(t, err)

		expectLockAcquired(lock)
		assetRepo.On("FindDepreciable", ctx).Return([]*asset.Asset{ok, bad}, nil)
		scheduleRepo.On("ChargedAssetIDs", ctx, mock.Anything).Return(map[uuid.UUID]struct{}{}, nil)

		_, err = service.GenerateDepreciation(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not supported")
		writer.AssertNotCalled(t, "CommitRun", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("floors net book value at zero near end of life", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		scheduleRepo := new(MockScheduleRepository)
		writer := new(MockGenerationWriter)
		lock := new(MockGenerationLock)
		service := newDepreciationService(assetRepo, scheduleRepo, writer, lock)

		a := newDepreciableAsset(t, "T-001", 1200, 2)
		require.NoError(t, a.ApplyDepreciation(decimal.NewFromInt(900)))

		expectLockAcquired(lock)
		assetRepo.On("FindDepreciable", ctx).Return([]*asset.Asset{a}, nil)
		scheduleRepo.On("ChargedAssetIDs", ctx, mock.Anything).Return(map[uuid.UUID]struct{}{}, nil)
		writer.On("CommitRun", ctx, mock.Anything, mock.Anything).Return(1, nil)

		result, err := service.GenerateDepreciation(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, result.AssetsCharged)
		assert.True(t, a.AccumulatedDepreciation.Equal(decimal.NewFromInt(1500)))
		assert.True(t, a.NetBookValue.IsZero())
		assert.False(t, a.NetBookValue.IsNegative())
	})

	t.Run("returns conflict when another run holds the lock", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		scheduleRepo := new(MockScheduleRepository)
		writer := new(MockGenerationWriter)
		lock := new(MockGenerationLock)
		service := newDepreciationService(assetRepo, scheduleRepo, writer, lock)

		lock.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

		_, err := service.GenerateDepreciation(ctx)
		require.Error(t, err)
		assert.Equal(t, shared.ErrGenerationInProgress, err)
		assetRepo.AssertNotCalled(t, "FindDepreciable", mock.Anything)
	})

	t.Run("no eligible assets produces an empty run", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		scheduleRepo := new(MockScheduleRepository)
		writer := new(MockGenerationWriter)
		lock := new(MockGenerationLock)
		service := newDepreciationService(assetRepo, scheduleRepo, writer, lock)

		expectLockAcquired(lock)
		assetRepo.On("FindDepreciable", ctx).Return([]*asset.Asset{}, nil)
		scheduleRepo.On("ChargedAssetIDs", ctx, mock.Anything).Return(map[uuid.UUID]struct{}{}, nil)

		result, err := service.GenerateDepreciation(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, result.AssetsCharged)
		writer.AssertNotCalled(t, "CommitRun", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("commit failure surfaces to the caller", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		scheduleRepo := new(MockScheduleRepository)
		writer := new(MockGenerationWriter)
		lock := new(MockGenerationLock)
		service := newDepreciationService(assetRepo, scheduleRepo, writer, lock)

		a := newDepreciableAsset(t, "EXC-001", 120000000, 60)

		expectLockAcquired(lock)
		assetRepo.On("FindDepreciable", ctx).Return([]*asset.Asset{a}, nil)
		scheduleRepo.On("ChargedAssetIDs", ctx, mock.Anything).Return(map[uuid.UUID]struct{}{}, nil)
		writer.On("CommitRun", ctx, mock.Anything, mock.Anything).Return(0, errors.New("connection reset"))

		_, err := service.GenerateDepreciation(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("releases the lock even when the run fails", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		scheduleRepo := new(MockScheduleRepository)
		writer := new(MockGenerationWriter)
		lock := new(MockGenerationLock)
		service := newDepreciationService(assetRepo, scheduleRepo, writer, lock)

		expectLockAcquired(lock)
		assetRepo.On("FindDepreciable", ctx).Return(nil, errors.New("db down"))

		_, err := service.GenerateDepreciation(ctx)
		require.Error(t, err)
		lock.AssertCalled(t, "Release", mock.Anything, mock.Anything)
	})
}

func TestDepreciationService_ListSchedules(t *testing.T) {
	ctx := context.Background()

	assetRepo := new(MockAssetRepository)
	scheduleRepo := new(MockScheduleRepository)
	service := newDepreciationService(assetRepo, scheduleRepo, new(MockGenerationWriter), new(MockGenerationLock))

	assetID := uuid.New()
	schedule, err := asset.NewDepreciationSchedule(assetID,
		time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(2000000), decimal.NewFromInt(2000000), decimal.NewFromInt(118000000))
	require.NoError(t, err)

	rows := []*asset.ScheduleWithAsset{
		{DepreciationSchedule: *schedule, AssetCode: "EXC-001", AssetName: "Excavator"},
	}
	scheduleRepo.On("FindAllWithAsset", ctx, mock.Anything).Return(rows, int64(1), nil)

	responses, total, err := service.ListSchedules(ctx, ScheduleListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, responses, 1)
	assert.Equal(t, "EXC-001", responses[0].AssetCode)
	assert.Equal(t, "Excavator", responses[0].AssetName)
	assert.True(t, responses[0].DepreciationAmount.Equal(decimal.NewFromInt(2000000)))
}

func TestDepreciationService_Summarize(t *testing.T) {
	ctx := context.Background()

	assetRepo := new(MockAssetRepository)
	service := newDepreciationService(assetRepo, new(MockScheduleRepository), new(MockGenerationWriter), new(MockGenerationLock))

	summary := &asset.DepreciationSummary{
		AssetCount:                   2,
		TotalCostBasis:               decimal.NewFromInt(170000000),
		TotalAccumulatedDepreciation: decimal.NewFromInt(4000000),
		TotalNetBookValue:            decimal.NewFromInt(166000000),
	}
	assetRepo.On("Summarize", ctx).Return(summary, nil)

	got, err := service.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.AssetCount)
	assert.True(t, got.TotalNetBookValue.Equal(decimal.NewFromInt(166000000)))
}
