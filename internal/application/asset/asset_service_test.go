package asset

import (
	"context"
	"testing"

	"github.com/buildcore/backend/internal/domain/asset"
	"github.com/buildcore/backend/internal/domain/shared"
	"github.com/buildcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAssetService(assetRepo *MockAssetRepository, grnRepo *MockGRNRepository) *AssetService {
	return NewAssetService(assetRepo, grnRepo, nil)
}

func validCreateAssetRequest() CreateAssetRequest {
	return CreateAssetRequest{
		AssetCode:          "EXC-001",
		Name:               "Excavator CAT 320",
		CostBasis:          decimal.NewFromInt(120000000),
		DepreciationMethod: "STRAIGHT_LINE",
		UsefulLifeMonths:   60,
		Location:           "Central Depot",
	}
}

func TestAssetService_CreateAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("creates asset", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		grnRepo := new(MockGRNRepository)
		service := newAssetService(assetRepo, grnRepo)

		assetRepo.On("FindByCode", ctx, "EXC-001").Return(nil, shared.ErrNotFound)
		assetRepo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := service.CreateAsset(ctx, validCreateAssetRequest())
		require.NoError(t, err)
		assert.Equal(t, "EXC-001", resp.AssetCode)
		assert.Equal(t, "ACTIVE", resp.Status)
		assert.True(t, resp.NetBookValue.Equal(decimal.NewFromInt(120000000)))
		assert.True(t, resp.AccumulatedDepreciation.IsZero())
	})

	t.Run("rejects duplicate asset code", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		grnRepo := new(MockGRNRepository)
		service := newAssetService(assetRepo, grnRepo)

		existing, err := asset.NewAsset("EXC-001", "Old", valueobject.NewMoneyVND(decimal.NewFromInt(1000)), asset.MethodStraightLine, 12, "", nil)
		require.NoError(t, err)
		assetRepo.On("FindByCode", ctx, "EXC-001").Return(existing, nil)

		_, err = service.CreateAsset(ctx, validCreateAssetRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		assetRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown GRN reference", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		grnRepo := new(MockGRNRepository)
		service := newAssetService(assetRepo, grnRepo)

		grnID := uuid.New()
		req := validCreateAssetRequest()
		req.GRNID = &grnID

		assetRepo.On("FindByCode", ctx, "EXC-001").Return(nil, shared.ErrNotFound)
		grnRepo.On("FindByID", ctx, grnID).Return(nil, shared.ErrNotFound)

		_, err := service.CreateAsset(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GRN does not exist")
	})

	t.Run("accepts valid GRN reference", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		grnRepo := new(MockGRNRepository)
		service := newAssetService(assetRepo, grnRepo)

		grn := createServiceTestGRN(t)
		req := validCreateAssetRequest()
		req.GRNID = &grn.ID

		assetRepo.On("FindByCode", ctx, "EXC-001").Return(nil, shared.ErrNotFound)
		grnRepo.On("FindByID", ctx, grn.ID).Return(grn, nil)
		assetRepo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := service.CreateAsset(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, grn.ID, *resp.GRNID)
	})

	t.Run("rejects invalid domain input", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		grnRepo := new(MockGRNRepository)
		service := newAssetService(assetRepo, grnRepo)

		req := validCreateAssetRequest()
		req.UsefulLifeMonths = 0
		assetRepo.On("FindByCode", ctx, "EXC-001").Return(nil, shared.ErrNotFound)

		_, err := service.CreateAsset(ctx, req)
		require.Error(t, err)
		assetRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAssetService_UpdateAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("updates mutable fields with optimistic locking", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		service := newAssetService(assetRepo, new(MockGRNRepository))

		a, err := asset.NewAsset("EXC-001", "Excavator", valueobject.NewMoneyVND(decimal.NewFromInt(120000000)), asset.MethodStraightLine, 60, "", nil)
		require.NoError(t, err)

		assetRepo.On("FindByID", ctx, a.ID).Return(a, nil)
		assetRepo.On("SaveWithLock", ctx, a).Return(nil)

		resp, err := service.UpdateAsset(ctx, a.ID, UpdateAssetRequest{
			Name:               "Excavator CAT 320 GC",
			DepreciationMethod: "STRAIGHT_LINE",
			UsefulLifeMonths:   72,
		})
		require.NoError(t, err)
		assert.Equal(t, "Excavator CAT 320 GC", resp.Name)
		assert.Equal(t, 72, resp.UsefulLifeMonths)
		// Cost basis is immutable after intake
		assert.True(t, resp.CostBasis.Equal(decimal.NewFromInt(120000000)))
	})

	t.Run("propagates concurrency conflicts", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		service := newAssetService(assetRepo, new(MockGRNRepository))

		a, err := asset.NewAsset("EXC-001", "Excavator", valueobject.NewMoneyVND(decimal.NewFromInt(1000)), asset.MethodStraightLine, 12, "", nil)
		require.NoError(t, err)

		assetRepo.On("FindByID", ctx, a.ID).Return(a, nil)
		assetRepo.On("SaveWithLock", ctx, a).Return(shared.ErrConcurrencyConflict)

		_, err = service.UpdateAsset(ctx, a.ID, UpdateAssetRequest{
			Name:               "Renamed",
			DepreciationMethod: "STRAIGHT_LINE",
			UsefulLifeMonths:   12,
		})
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
	})
}

func TestAssetService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	setup := func(t *testing.T) (*AssetService, *MockAssetRepository, *asset.Asset) {
		assetRepo := new(MockAssetRepository)
		service := newAssetService(assetRepo, new(MockGRNRepository))
		a, err := asset.NewAsset("EXC-001", "Excavator", valueobject.NewMoneyVND(decimal.NewFromInt(120000000)), asset.MethodStraightLine, 60, "Central Depot", nil)
		require.NoError(t, err)
		a.ClearDomainEvents()
		assetRepo.On("FindByID", ctx, a.ID).Return(a, nil)
		return service, assetRepo, a
	}

	t.Run("allocate", func(t *testing.T) {
		service, assetRepo, a := setup(t)
		assetRepo.On("SaveWithLock", ctx, a).Return(nil)

		resp, err := service.AllocateAsset(ctx, a.ID, "Site 12", userID)
		require.NoError(t, err)
		assert.Equal(t, "ALLOCATED", resp.Status)
		assert.Equal(t, "Site 12", resp.CurrentLocation)
	})

	t.Run("release after allocate", func(t *testing.T) {
		service, assetRepo, a := setup(t)
		require.NoError(t, a.Allocate("Site 12", userID))
		assetRepo.On("SaveWithLock", ctx, a).Return(nil)

		resp, err := service.ReleaseAsset(ctx, a.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", resp.Status)
	})

	t.Run("dispose", func(t *testing.T) {
		service, assetRepo, a := setup(t)
		assetRepo.On("SaveWithLock", ctx, a).Return(nil)

		resp, err := service.DisposeAsset(ctx, a.ID, userID, "sold at auction")
		require.NoError(t, err)
		assert.Equal(t, "DISPOSED", resp.Status)
		assert.Equal(t, "sold at auction", resp.DisposalReason)
	})

	t.Run("invalid transition does not persist", func(t *testing.T) {
		service, assetRepo, a := setup(t)

		_, err := service.ReleaseAsset(ctx, a.ID, userID)
		require.Error(t, err)
		assetRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("maintenance round trip", func(t *testing.T) {
		service, assetRepo, a := setup(t)
		assetRepo.On("SaveWithLock", ctx, a).Return(nil)

		resp, err := service.StartMaintenance(ctx, a.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, "UNDER_MAINTENANCE", resp.Status)

		resp, err = service.EndMaintenance(ctx, a.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", resp.Status)
	})
}

func TestAssetService_ListAssets(t *testing.T) {
	ctx := context.Background()

	t.Run("maps filter and results", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		service := newAssetService(assetRepo, new(MockGRNRepository))

		a, err := asset.NewAsset("EXC-001", "Excavator", valueobject.NewMoneyVND(decimal.NewFromInt(1000)), asset.MethodStraightLine, 12, "", nil)
		require.NoError(t, err)

		assetRepo.On("FindAll", ctx, mock.MatchedBy(func(f asset.AssetFilter) bool {
			return f.Status != nil && *f.Status == asset.AssetStatusActive
		})).Return([]*asset.Asset{a}, int64(1), nil)

		responses, total, err := service.ListAssets(ctx, AssetListFilter{Status: "ACTIVE"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, "EXC-001", responses[0].AssetCode)
	})

	t.Run("rejects invalid status filter", func(t *testing.T) {
		assetRepo := new(MockAssetRepository)
		service := newAssetService(assetRepo, new(MockGRNRepository))

		_, _, err := service.ListAssets(ctx, AssetListFilter{Status: "BOGUS"})
		require.Error(t, err)
		assetRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}
