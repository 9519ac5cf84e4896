package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/data/repos/testutil"
	"github.com/yungbote/cablehouse-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*domain.User{
		{ID: uuid.New(), Username: "wanda", PasswordHash: "pw", Role: domain.RoleWorker},
		{ID: uuid.New(), Username: "ada", PasswordHash: "pw", Role: domain.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Create: expected 2 users, got %d", len(created))
	}

	got, err := repo.GetByUsername(ctx, tx, "wanda")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got == nil || got.ID != created[0].ID || got.Role != domain.RoleWorker {
		t.Fatalf("GetByUsername: unexpected result: %+v", got)
	}

	byID, err := repo.GetByID(ctx, tx, created[1].ID)
	if err != nil || byID == nil || byID.Username != "ada" {
		t.Fatalf("GetByID: got=%+v err=%v", byID, err)
	}

	missing, err := repo.GetByUsername(ctx, tx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("GetByUsername(missing): got=%+v err=%v", missing, err)
	}

	exists, err := repo.UsernameExists(ctx, tx, "ada")
	if err != nil || !exists {
		t.Fatalf("UsernameExists: exists=%v err=%v", exists, err)
	}

	all, err := repo.List(ctx, tx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].Username != "ada" {
		t.Fatalf("List: expected username order, got %+v", all)
	}

	admins, err := repo.CountByRole(ctx, tx, domain.RoleAdmin)
	if err != nil || admins != 1 {
		t.Fatalf("CountByRole: count=%d err=%v", admins, err)
	}
}

func TestUserRepoRejectsDuplicateUsername(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, nil, []*domain.User{{Username: "dup", PasswordHash: "pw", Role: domain.RoleUser}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, nil, []*domain.User{{Username: "dup", PasswordHash: "pw", Role: domain.RoleUser}}); err == nil {
		t.Fatalf("expected unique violation on duplicate username")
	}
}
