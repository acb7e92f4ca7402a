package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeWishlist EntityType = "wishlist"
	EntityTypeItem     EntityType = "item"
	EntityTypeNote     EntityType = "note"
)

// Control messages carry no entity
const (
	typeConnectionReady = "connection.ready"
	typePong            = "pong"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "wishlist.created"
	Entity    EntityType  `json:"entity,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// WishlistCreated creates a wishlist.created event
func WishlistCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeWishlist, payload)
}

// WishlistUpdated creates a wishlist.updated event
func WishlistUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeWishlist, payload)
}

// WishlistDeleted creates a wishlist.deleted event
func WishlistDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeWishlist, payload)
}

// ItemCreated creates an item.created event
func ItemCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeItem, payload)
}

// ItemUpdated creates an item.updated event
func ItemUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeItem, payload)
}

// ItemDeleted creates an item.deleted event
func ItemDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeItem, payload)
}

// NoteCreated creates a note.created event
func NoteCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeNote, payload)
}

// NoteDeleted creates a note.deleted event
func NoteDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeNote, payload)
}

// ConnectionReady greets a freshly registered connection
func ConnectionReady(userID uuid.UUID) Event {
	return Event{
		Type:      typeConnectionReady,
		Payload:   map[string]string{"userId": userID.String()},
		Timestamp: time.Now().UTC(),
	}
}

// Pong answers an in-band {"type":"ping"}
func Pong() Event {
	return Event{Type: typePong, Timestamp: time.Now().UTC()}
}
