package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/myapp2768/DSAS/internal/wms/entity"
	"github.com/myapp2768/DSAS/internal/wms/repository"
	"github.com/myapp2768/DSAS/internal/wms/service"
	"github.com/myapp2768/DSAS/internal/wms/testutil"
)

func TestGenerateCodeSequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewServices(db)
	ctx := context.Background()

	// First code on an empty catalog
	code, err := svc.Material.GenerateCode(ctx)
	if err != nil {
		t.Fatalf("GenerateCode failed: %v", err)
	}
	if code != "XS-0001" {
		t.Fatalf("expected XS-0001, got %s", code)
	}

	// Auto-assigned on create, next generation increments
	m := &entity.Material{Category: "化肥", Name: "尿素", UnitPrice: 2.5}
	if err := svc.Material.Create(ctx, m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.InternalCode != "XS-0001" {
		t.Fatalf("expected auto code XS-0001, got %s", m.InternalCode)
	}

	code, err = svc.Material.GenerateCode(ctx)
	if err != nil {
		t.Fatalf("GenerateCode failed: %v", err)
	}
	if code != "XS-0002" {
		t.Fatalf("expected XS-0002, got %s", code)
	}
}

func TestCreateDuplicateCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewServices(db)
	ctx := context.Background()

	first := &entity.Material{InternalCode: "XS-0100", Category: "农药", Name: "杀虫剂A"}
	if err := svc.Material.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := &entity.Material{InternalCode: "XS-0100", Category: "农药", Name: "杀虫剂B"}
	err := svc.Material.Create(ctx, dup)
	if !errors.Is(err, service.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}

	// CheckCode reflects the same state
	available, err := svc.Material.CheckCode(ctx, "XS-0100")
	if err != nil {
		t.Fatalf("CheckCode failed: %v", err)
	}
	if available {
		t.Fatal("expected XS-0100 to be unavailable")
	}
	available, _ = svc.Material.CheckCode(ctx, "XS-9999")
	if !available {
		t.Fatal("expected XS-9999 to be available")
	}
}

func TestDeleteMaterialInUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewServices(db)
	ctx := context.Background()

	m := testutil.SeedMaterial(t, db, "XS-0001", "复合肥", 3.2)

	record := &entity.StockInRecord{MaterialID: m.ID, Quantity: 10}
	if err := svc.Inventory.CreateStockIn(ctx, record); err != nil {
		t.Fatalf("CreateStockIn failed: %v", err)
	}

	err := svc.Material.Delete(ctx, m.ID)
	if !errors.Is(err, service.ErrMaterialInUse) {
		t.Fatalf("expected ErrMaterialInUse, got %v", err)
	}

	// Material still there
	if _, err := svc.Material.GetByID(ctx, m.ID); err != nil {
		t.Fatalf("material should still exist: %v", err)
	}
}

func TestDeleteBatchAggregatesToBoolean(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewServices(db)
	ctx := context.Background()

	a := testutil.SeedMaterial(t, db, "XS-0001", "地膜", 1.1)
	b := testutil.SeedMaterial(t, db, "XS-0002", "滴灌带", 0.8)

	if ok := svc.Material.DeleteBatch(ctx, []int64{a.ID, b.ID}); !ok {
		t.Fatal("expected batch delete of clean materials to succeed")
	}

	// A missing id poisons the whole batch result
	c := testutil.SeedMaterial(t, db, "XS-0003", "种子", 12)
	if ok := svc.Material.DeleteBatch(ctx, []int64{c.ID, 999999}); ok {
		t.Fatal("expected batch with missing id to report failure")
	}
	// but the valid one is still deleted
	if _, err := svc.Material.GetByID(ctx, c.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected c deleted, got %v", err)
	}
}

func TestToggleActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewServices(db)
	ctx := context.Background()

	m := testutil.SeedMaterial(t, db, "XS-0001", "除草剂", 5)

	toggled, err := svc.Material.ToggleActive(ctx, m.ID)
	if err != nil {
		t.Fatalf("ToggleActive failed: %v", err)
	}
	if toggled.Active {
		t.Fatal("expected material to be inactive after toggle")
	}

	toggled, err = svc.Material.ToggleActive(ctx, m.ID)
	if err != nil {
		t.Fatalf("ToggleActive failed: %v", err)
	}
	if !toggled.Active {
		t.Fatal("expected material to be active after second toggle")
	}
}

func TestMaterialStatistics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewServices(db)
	ctx := context.Background()

	testutil.SeedMaterial(t, db, "XS-0001", "尿素", 2.5)
	testutil.SeedMaterial(t, db, "XS-0002", "磷肥", 2.1)
	m := testutil.SeedMaterial(t, db, "XS-0003", "钾肥", 3.9)
	if _, err := svc.Material.ToggleActive(ctx, m.ID); err != nil {
		t.Fatalf("ToggleActive failed: %v", err)
	}

	stats, err := svc.Material.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if stats.TotalCount != 3 {
		t.Fatalf("expected total 3, got %d", stats.TotalCount)
	}
	if stats.ActiveCount != 2 || stats.InactiveCount != 1 {
		t.Fatalf("expected 2 active / 1 inactive, got %d / %d", stats.ActiveCount, stats.InactiveCount)
	}
	if stats.CategoryCount != 1 {
		t.Fatalf("expected 1 distinct category, got %d", stats.CategoryCount)
	}
}
