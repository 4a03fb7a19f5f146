package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/dinerozz/parts-analytics-backend/internal/metrics"
	"github.com/dinerozz/parts-analytics-backend/internal/repository"
	"github.com/dinerozz/parts-analytics-backend/pkg/utils"
	"github.com/google/uuid"
)

type Result struct {
	EventID   int64
	Duplicate bool
}

type TrackingService interface {
	Record(ctx context.Context, req entity.CreateEventRequest) (*Result, error)
}

type trackingService struct {
	repo   repository.EventRepository
	dedup  DuplicateChecker
	logger *slog.Logger
	now    func() time.Time
}

func NewTrackingService(repo repository.EventRepository, dedup DuplicateChecker, logger *slog.Logger) TrackingService {
	return &trackingService{
		repo:   repo,
		dedup:  dedup,
		logger: logger,
		now:    time.Now,
	}
}

func (s *trackingService) Record(ctx context.Context, req entity.CreateEventRequest) (*Result, error) {
	if req.EventType == "" {
		metrics.RecordIngest("", metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: event_type is required", entity.ErrValidation)
	}
	if !entity.IsValidEventType(req.EventType) {
		metrics.RecordIngest("", metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidEventType, req.EventType)
	}

	now := s.now()
	event := s.buildEvent(req, now)

	if event.EventType == entity.EventPageView && s.dedup != nil {
		duplicate, err := s.dedup.IsDuplicate(ctx, event.SessionID, event.PageURL, now)
		if err != nil {
			s.logger.Warn("duplicate check failed, recording anyway",
				slog.String("session_id", event.SessionID),
				slog.String("error", err.Error()))
		} else if duplicate {
			metrics.RecordIngest(event.EventType, metrics.ResultDuplicate)
			return &Result{Duplicate: true}, nil
		}
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		if event.EventType == entity.EventPageView && s.dedup != nil {
			s.dedup.Forget(ctx, event.SessionID, event.PageURL)
		}
		metrics.RecordIngest(event.EventType, metrics.ResultError)
		return nil, fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}

	metrics.RecordIngest(event.EventType, metrics.ResultAccepted)
	s.logger.Debug("event recorded",
		slog.Int64("event_id", event.ID),
		slog.String("event_type", event.EventType),
		slog.String("session_id", event.SessionID))

	return &Result{EventID: event.ID}, nil
}

func (s *trackingService) buildEvent(req entity.CreateEventRequest, now time.Time) *entity.Event {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = newSessionID(now)
	}

	var userID *string
	if req.UserID != nil {
		if id, ok := utils.NormalizeUUID(*req.UserID); ok {
			userID = &id
		} else {
			s.logger.Debug("dropping malformed user_id", slog.String("user_id", *req.UserID))
		}
	}

	return &entity.Event{
		EventType:  req.EventType,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		SessionID:  sessionID,
		UserID:     userID,
		PageURL:    utils.Truncate(req.PageURL, entity.MaxPageURLLength),
		UserAgent:  utils.Truncate(req.UserAgent, entity.MaxUserAgentLength),
		IPAddress:  utils.Truncate(req.IPAddress, entity.MaxIPAddressLength),
		Metadata:   req.Metadata,
	}
}

func newSessionID(now time.Time) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}
