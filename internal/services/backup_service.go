package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/data/repos"
	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/apierr"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/platform/objectstore"
)

const backupPrefix = "backups"

// BackupDocument is the JSON body written for each snapshot.
type BackupDocument struct {
	TakenAt    time.Time           `json:"taken_at"`
	Blueprints []*domain.Blueprint `json:"blueprints"`
	Orders     []*domain.Order     `json:"orders"`
}

type BackupService interface {
	// Snapshot writes every blueprint and order to object storage and
	// returns the key it was stored under.
	Snapshot(ctx context.Context) (objectstore.Info, error)
	List(ctx context.Context) ([]objectstore.Info, error)
}

type backupService struct {
	log           *logger.Logger
	store         objectstore.Store
	blueprintRepo repos.BlueprintRepo
	orderRepo     repos.OrderRepo
	now           func() time.Time
}

// NewBackupService accepts a nil store; every call then fails with
// ErrStorageDisabled.
func NewBackupService(log *logger.Logger, store objectstore.Store, blueprintRepo repos.BlueprintRepo, orderRepo repos.OrderRepo) BackupService {
	return &backupService{
		log:           log.With("service", "BackupService"),
		store:         store,
		blueprintRepo: blueprintRepo,
		orderRepo:     orderRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *backupService) Snapshot(ctx context.Context) (objectstore.Info, error) {
	if s.store == nil {
		return objectstore.Info{}, storageDisabled()
	}
	blueprints, err := s.blueprintRepo.List(ctx, nil)
	if err != nil {
		return objectstore.Info{}, fmt.Errorf("list blueprints: %w", err)
	}
	orders, err := s.orderRepo.List(ctx, nil)
	if err != nil {
		return objectstore.Info{}, fmt.Errorf("list orders: %w", err)
	}

	takenAt := s.now()
	body, err := json.Marshal(BackupDocument{TakenAt: takenAt, Blueprints: blueprints, Orders: orders})
	if err != nil {
		return objectstore.Info{}, fmt.Errorf("encode backup: %w", err)
	}
	key := backupKey(takenAt, uuid.New())
	info, err := s.store.Put(ctx, key, bytes.NewReader(body), "application/json")
	if err != nil {
		s.log.Error("backup upload failed", "error", err, "key", key, "driver", s.store.Driver())
		return objectstore.Info{}, fmt.Errorf("store backup: %w", err)
	}
	s.log.Info("backup written", "key", info.Key, "size_bytes", info.Size, "blueprints", len(blueprints), "orders", len(orders))
	return info, nil
}

func (s *backupService) List(ctx context.Context) ([]objectstore.Info, error) {
	if s.store == nil {
		return nil, storageDisabled()
	}
	out, err := s.store.List(ctx, backupPrefix+"/")
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	return out, nil
}

func backupKey(t time.Time, id uuid.UUID) string {
	return path.Join(backupPrefix, t.Format("2006/01/02"), id.String()+".json")
}

func storageDisabled() error {
	return apierr.New(http.StatusServiceUnavailable, "storage_disabled", ErrStorageDisabled)
}
