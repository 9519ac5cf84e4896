package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/realtime"
)

type BlueprintService struct {
	log     *logger.Logger
	c       *Client
	session *Session
	pub     Publisher
}

func NewBlueprintService(c *Client, session *Session, pub Publisher) *BlueprintService {
	return &BlueprintService{
		log:     c.log.With("service", "BlueprintService"),
		c:       c,
		session: session,
		pub:     pub,
	}
}

// ListBlueprints returns the catalog, or an empty list when the service
// cannot be reached.
func (s *BlueprintService) ListBlueprints(ctx context.Context) []domain.Blueprint {
	var out struct {
		Blueprints []domain.Blueprint `json:"blueprints"`
	}
	if err := s.c.do(ctx, s.session, http.MethodGet, "/api/blueprints", nil, &out); err != nil {
		s.log.Warn("ListBlueprints failed", "error", err)
		return []domain.Blueprint{}
	}
	if out.Blueprints == nil {
		return []domain.Blueprint{}
	}
	return out.Blueprints
}

// SaveBlueprint validates the draft locally before sending it.
func (s *BlueprintService) SaveBlueprint(ctx context.Context, draft *BlueprintDraft) Result {
	if err := draft.Validate(); err != nil {
		s.log.Warn("SaveBlueprint rejected", "error", err)
		return failed(err)
	}
	var out struct {
		Blueprint domain.Blueprint `json:"blueprint"`
	}
	if err := s.c.do(ctx, s.session, http.MethodPost, "/api/blueprints", draft.Payload(), &out); err != nil {
		s.log.Warn("SaveBlueprint failed", "name", draft.Name, "error", err)
		return failed(err)
	}
	s.publish(realtime.OperationCreate, out.Blueprint.ID)
	return Result{Success: true, Blueprint: &out.Blueprint}
}

func (s *BlueprintService) DeleteBlueprint(ctx context.Context, id uuid.UUID) Result {
	if err := s.c.do(ctx, s.session, http.MethodDelete, "/api/blueprints/"+id.String(), nil, nil); err != nil {
		s.log.Warn("DeleteBlueprint failed", "blueprint_id", id, "error", err)
		return failed(err)
	}
	s.publish(realtime.OperationDelete, id)
	return Result{Success: true}
}

func (s *BlueprintService) publish(op realtime.Operation, id uuid.UUID) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(realtime.Change{Collection: realtime.CollectionBlueprints, Operation: op, ID: id})
}
