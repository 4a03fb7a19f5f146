package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Event types accepted by the ingestion endpoint
const (
	EventPageView        = "page_view"
	EventUnitClick       = "unit_click"
	EventUnitActionClick = "unit_action_click"
	EventProductView     = "product_view"
	EventSlideView       = "slide_view"
	EventSlideClick      = "slide_click"
	EventCategoryView    = "category_view"
	EventSearch          = "search"
)

// Entity types referenced by events
const (
	EntityProduct  = "product"
	EntityUnit     = "unit"
	EntitySlide    = "slide"
	EntityCategory = "category"
)

var validEventTypes = map[string]bool{
	EventPageView:        true,
	EventUnitClick:       true,
	EventUnitActionClick: true,
	EventProductView:     true,
	EventSlideView:       true,
	EventSlideClick:      true,
	EventCategoryView:    true,
	EventSearch:          true,
}

// IsValidEventType reports whether eventType is on the allow-list.
func IsValidEventType(eventType string) bool {
	return validEventTypes[eventType]
}

// Field length limits applied before insert
const (
	MaxPageURLLength   = 500
	MaxUserAgentLength = 500
	MaxIPAddressLength = 45
)

type Event struct {
	ID         int64     `json:"id" db:"id"`
	EventType  string    `json:"event_type" db:"event_type"`
	EntityType *string   `json:"entity_type,omitempty" db:"entity_type"`
	EntityID   *string   `json:"entity_id,omitempty" db:"entity_id"`
	SessionID  string    `json:"session_id" db:"session_id"`
	UserID     *string   `json:"user_id,omitempty" db:"user_id"`
	PageURL    string    `json:"page_url" db:"page_url"`
	UserAgent  string    `json:"user_agent" db:"user_agent"`
	IPAddress  string    `json:"ip_address" db:"ip_address"`
	Metadata   Metadata  `json:"metadata,omitempty" db:"metadata"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Entity returns the referenced entity id when the event points at an entity of the given type.
func (e Event) Entity(entityType string) (string, bool) {
	if e.EntityType == nil || e.EntityID == nil || *e.EntityID == "" {
		return "", false
	}
	if *e.EntityType != entityType {
		return "", false
	}
	return *e.EntityID, true
}

type CreateEventRequest struct {
	EventType  string   `json:"event_type" binding:"required,eventtype"`
	EntityType *string  `json:"entity_type,omitempty" binding:"omitempty,max=50"`
	EntityID   *string  `json:"entity_id,omitempty" binding:"omitempty,max=100"`
	PageURL    string   `json:"page_url,omitempty"`
	SessionID  string   `json:"session_id,omitempty" binding:"omitempty,max=255"`
	UserID     *string  `json:"user_id,omitempty"`
	Metadata   Metadata `json:"metadata,omitempty"`

	// filled from the HTTP request, never from the body
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

// EventRange bounds an event store read: [Start, End)
type EventRange struct {
	Start      time.Time
	End        time.Time
	EventTypes []string
}

// Metadata is the free-form key/value payload attached to an event. It is stored as
// jsonb and handed back verbatim; only the classifier looks inside it.
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return b, nil
}

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Metadata", value)
	}

	if len(raw) == 0 {
		*m = nil
		return nil
	}

	return json.Unmarshal(raw, m)
}

// String returns the value stored under key when it is a string.
func (m Metadata) String(key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
