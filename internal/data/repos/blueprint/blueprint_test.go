package blueprint

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/data/repos/testutil"
	"github.com/yungbote/cablehouse-backend/internal/domain"
)

func TestBlueprintRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewBlueprintRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, &domain.Blueprint{
		Name:       "RG-6 Coax",
		Dimensions: []domain.Dimension{{Label: "Length", Value: "50m"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("Create: expected generated id")
	}

	got, err := repo.GetByID(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "RG-6 Coax" || len(got.Dimensions) != 1 || got.Dimensions[0].Value != "50m" {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}
	if got.Images == nil || len(got.Images) != 0 {
		t.Fatalf("GetByID: expected empty image list, got %#v", got.Images)
	}

	testutil.SeedBlueprint(t, ctx, tx, "Cat6")
	list, err := repo.List(ctx, tx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List: expected 2, got %d", len(list))
	}

	deleted, err := repo.Delete(ctx, tx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = repo.Delete(ctx, tx, created.ID)
	if err != nil || deleted {
		t.Fatalf("Delete(again): deleted=%v err=%v", deleted, err)
	}
	gone, err := repo.GetByID(ctx, tx, created.ID)
	if err != nil || gone != nil {
		t.Fatalf("GetByID after delete: got=%+v err=%v", gone, err)
	}
}
