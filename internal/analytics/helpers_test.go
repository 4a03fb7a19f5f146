package analytics

import (
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
)

func strPtr(s string) *string { return &s }

func pageView(session, page string, at time.Time) entity.Event {
	return entity.Event{EventType: entity.EventPageView, SessionID: session, PageURL: page, CreatedAt: at}
}

func productView(session, productID string, at time.Time) entity.Event {
	return entity.Event{
		EventType:  entity.EventProductView,
		EntityType: strPtr(entity.EntityProduct),
		EntityID:   strPtr(productID),
		SessionID:  session,
		CreatedAt:  at,
	}
}

func unitClick(session, entityType, id string, at time.Time) entity.Event {
	return entity.Event{
		EventType:  entity.EventUnitClick,
		EntityType: strPtr(entityType),
		EntityID:   strPtr(id),
		SessionID:  session,
		CreatedAt:  at,
	}
}

func actionClick(session, action string, at time.Time) entity.Event {
	return entity.Event{
		EventType:  entity.EventUnitActionClick,
		EntityType: strPtr(entity.EntityUnit),
		EntityID:   strPtr("u1"),
		SessionID:  session,
		Metadata:   entity.Metadata{"action_type": action},
		CreatedAt:  at,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
