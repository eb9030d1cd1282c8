package asset

import (
	"context"
	"time"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockAssetRepository is a mock implementation of asset.Repository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Save(ctx context.Context, a *asset.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssetRepository) SaveWithLock(ctx context.Context, a *asset.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindByCode(ctx context.Context, code string) (*asset.Asset, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindAll(ctx context.Context, filter asset.AssetFilter) ([]*asset.Asset, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*asset.Asset), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssetRepository) FindDepreciable(ctx context.Context) ([]*asset.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*asset.Asset), args.Error(1)
}

func (m *MockAssetRepository) Summarize(ctx context.Context) (*asset.DepreciationSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.DepreciationSummary), args.Error(1)
}

// MockScheduleRepository is a mock implementation of asset.ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) ChargedAssetIDs(ctx context.Context, periodDate time.Time) (map[uuid.UUID]struct{}, error) {
	args := m.Called(ctx, periodDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]struct{}), args.Error(1)
}

func (m *MockScheduleRepository) FindByAssetID(ctx context.Context, assetID uuid.UUID) ([]*asset.DepreciationSchedule, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*asset.DepreciationSchedule), args.Error(1)
}

func (m *MockScheduleRepository) FindAllWithAsset(ctx context.Context, filter shared.Filter) ([]*asset.ScheduleWithAsset, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*asset.ScheduleWithAsset), args.Get(1).(int64), args.Error(2)
}

// MockGenerationWriter is a mock implementation of asset.GenerationWriter
type MockGenerationWriter struct {
	mock.Mock
}

func (m *MockGenerationWriter) CommitRun(ctx context.Context, assets []*asset.Asset, schedules []*asset.DepreciationSchedule) (int, error) {
	args := m.Called(ctx, assets, schedules)
	return args.Int(0), args.Error(1)
}

// MockGenerationLock is a mock implementation of asset.GenerationLock
type MockGenerationLock struct {
	mock.Mock
}

func (m *MockGenerationLock) Acquire(ctx context.Context, periodDate time.Time, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, periodDate, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockGenerationLock) Release(ctx context.Context, periodDate time.Time) error {
	args := m.Called(ctx, periodDate)
	return args.Error(0)
}

// MockLocationHistoryRepository is a mock implementation of asset.LocationHistoryRepository
type MockLocationHistoryRepository struct {
	mock.Mock
}

func (m *MockLocationHistoryRepository) Save(ctx context.Context, entry *asset.LocationHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLocationHistoryRepository) FindByAssetID(ctx context.Context, assetID uuid.UUID) ([]*asset.LocationHistoryEntry, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*asset.LocationHistoryEntry), args.Error(1)
}

func (m *MockLocationHistoryRepository) FindAllWithAsset(ctx context.Context) ([]*asset.HistoryEntryWithAsset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*asset.HistoryEntryWithAsset), args.Error(1)
}

// MockGRNRepository is a mock implementation of asset.GRNRepository
type MockGRNRepository struct {
	mock.Mock
}

func (m *MockGRNRepository) Save(ctx context.Context, grn *asset.GoodsReceiptNote) error {
	args := m.Called(ctx, grn)
	return args.Error(0)
}

func (m *MockGRNRepository) SaveWithLock(ctx context.Context, grn *asset.GoodsReceiptNote) error {
	args := m.Called(ctx, grn)
	return args.Error(0)
}

func (m *MockGRNRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.GoodsReceiptNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.GoodsReceiptNote), args.Error(1)
}

func (m *MockGRNRepository) FindAll(ctx context.Context) ([]*asset.GoodsReceiptNote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*asset.GoodsReceiptNote), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
