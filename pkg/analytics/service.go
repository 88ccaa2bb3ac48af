// Package analytics appends structured usage events. Tracking is
// fire-and-forget: a failed write is logged and swallowed so it can never
// abort or delay the computation that triggered it.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jordanlanch/freelanceflow/pkg/logger"
	"github.com/jordanlanch/freelanceflow/pkg/models"
)

const trackTimeout = 3 * time.Second

// Store defines the event data access this service needs.
type Store interface {
	InsertEvent(ctx context.Context, event models.AnalyticsEvent) error
}

// Service handles usage analytics.
type Service struct {
	store Store
	log   logger.Logger
}

// NewService creates a new analytics service.
func NewService(store Store, log logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// Track appends an analytics event synchronously with its own short
// timeout. Errors are logged, never returned.
func (s *Service) Track(ctx context.Context, workspaceID string, req models.TrackEventRequest) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), trackTimeout)
	defer cancel()

	event := models.AnalyticsEvent{
		ID:          uuid.NewString(),
		EventType:   req.Type,
		EntityType:  req.EntityType,
		EntityID:    req.EntityID,
		Properties:  req.Properties,
		UserID:      req.UserID,
		SessionID:   newSessionID(),
		WorkspaceID: workspaceID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.InsertEvent(ctx, event); err != nil {
		s.log.Error("failed to track event",
			"event_type", req.Type, "workspace_id", workspaceID, "error", err)
	}
}

// TrackAsync appends an analytics event in the background, detached from the
// caller's cancellation. There is no ordering guarantee relative to the
// operation that triggered it.
func (s *Service) TrackAsync(ctx context.Context, workspaceID string, req models.TrackEventRequest) {
	go s.Track(ctx, workspaceID, req)
}

func newSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
