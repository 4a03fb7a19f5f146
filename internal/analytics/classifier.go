package analytics

import "github.com/dinerozz/parts-analytics-backend/internal/entity"

// Kind is what an aggregation counts an event as.
type Kind int

const (
	KindNone Kind = iota
	KindView
	KindClick
)

func (k Kind) String() string {
	switch k {
	case KindView:
		return "view"
	case KindClick:
		return "click"
	default:
		return "none"
	}
}

// Action is the typed form of metadata.action_type on unit action clicks.
type Action int

const (
	ActionNone Action = iota
	ActionWhatsApp
	ActionPhone
	ActionOther
)

// Interaction is the only view of event metadata the engine works with.
type Interaction struct {
	Action Action
}

func ParseInteraction(e entity.Event) Interaction {
	switch e.Metadata.String("action_type") {
	case "":
		return Interaction{Action: ActionNone}
	case "whatsapp":
		return Interaction{Action: ActionWhatsApp}
	case "phone", "call":
		return Interaction{Action: ActionPhone}
	default:
		return Interaction{Action: ActionOther}
	}
}

// Classifier maps a raw event to view, click or discard.
type Classifier func(e entity.Event) Kind

// IsClick applies the single click rule: plain unit clicks always count,
// action clicks only when the action is a WhatsApp contact.
func IsClick(e entity.Event) bool {
	switch e.EventType {
	case entity.EventUnitClick:
		return true
	case entity.EventUnitActionClick:
		return ParseInteraction(e).Action == ActionWhatsApp
	default:
		return false
	}
}

// TrafficClassifier counts page views against all clicks.
func TrafficClassifier(e entity.Event) Kind {
	if e.EventType == entity.EventPageView {
		return KindView
	}
	if IsClick(e) {
		return KindClick
	}
	return KindNone
}

// ProductClassifier counts product views against clicks that point at a product.
func ProductClassifier(e entity.Event) Kind {
	if e.EventType == entity.EventProductView {
		return KindView
	}
	if _, ok := e.Entity(entity.EntityProduct); ok && IsClick(e) {
		return KindClick
	}
	return KindNone
}

// UnitClassifier counts clicks on units; units have no view event of their own,
// so any unit-scoped event that is not a click is a view.
func UnitClassifier(e entity.Event) Kind {
	if _, ok := e.Entity(entity.EntityUnit); !ok {
		return KindNone
	}
	if IsClick(e) {
		return KindClick
	}
	if e.EventType == entity.EventUnitActionClick {
		return KindNone
	}
	return KindView
}

// SlideClassifier counts slide impressions against slide clicks.
func SlideClassifier(e entity.Event) Kind {
	switch e.EventType {
	case entity.EventSlideView:
		return KindView
	case entity.EventSlideClick:
		return KindClick
	default:
		return KindNone
	}
}
