package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/data/repos"
	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

type BlueprintDraft struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Dimensions  []domain.Dimension `json:"dimensions"`
	Images      []string           `json:"images"`
}

type BlueprintService interface {
	List(ctx context.Context) ([]*domain.Blueprint, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Blueprint, error)
	Create(ctx context.Context, draft BlueprintDraft) (*domain.Blueprint, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blueprintService struct {
	db            *gorm.DB
	log           *logger.Logger
	blueprintRepo repos.BlueprintRepo
	notifier      ChangeNotifier
}

func NewBlueprintService(db *gorm.DB, log *logger.Logger, blueprintRepo repos.BlueprintRepo, notifier ChangeNotifier) BlueprintService {
	serviceLog := log.With("service", "BlueprintService")
	return &blueprintService{
		db:            db,
		log:           serviceLog,
		blueprintRepo: blueprintRepo,
		notifier:      notifier,
	}
}

func (s *blueprintService) List(ctx context.Context) ([]*domain.Blueprint, error) {
	return s.blueprintRepo.List(ctx, nil)
}

func (s *blueprintService) Get(ctx context.Context, id uuid.UUID) (*domain.Blueprint, error) {
	bp, err := s.blueprintRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("load blueprint: %w", err)
	}
	if bp == nil {
		return nil, notFoundErr("blueprint")
	}
	return bp, nil
}

// Create validates and persists a draft. Blank-label dimension rows are
// dropped; a missing name or more than MaxBlueprintImages images is rejected.
func (s *blueprintService) Create(ctx context.Context, draft BlueprintDraft) (*domain.Blueprint, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil, validationErr("blueprint name is required")
	}
	if len(draft.Images) > domain.MaxBlueprintImages {
		return nil, validationErr("a blueprint holds at most %d images, got %d", domain.MaxBlueprintImages, len(draft.Images))
	}

	bp := &domain.Blueprint{
		Name:        name,
		Description: draft.Description,
		Dimensions:  domain.FilterDimensions(draft.Dimensions),
		Images:      domain.CopyImages(draft.Images),
	}
	created, err := s.blueprintRepo.Create(ctx, nil, bp)
	if err != nil {
		s.log.Warn("create blueprint failed", "error", err)
		return nil, fmt.Errorf("create blueprint: %w", err)
	}
	s.notifier.Changed(ctx, realtime.CollectionBlueprints, realtime.OperationCreate, created.ID)
	return created, nil
}

// Delete removes the blueprint only. Orders placed from it keep their copy.
func (s *blueprintService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.blueprintRepo.Delete(ctx, nil, id)
	if err != nil {
		s.log.Warn("delete blueprint failed", "error", err, "blueprint_id", id)
		return fmt.Errorf("delete blueprint: %w", err)
	}
	if !deleted {
		return notFoundErr("blueprint")
	}
	s.notifier.Changed(ctx, realtime.CollectionBlueprints, realtime.OperationDelete, id)
	return nil
}
