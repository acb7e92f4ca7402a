package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":    "7f1c",
		"title": "Birthday",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeWishlist, payload)
	after := time.Now()

	assert.Equal(t, "wishlist.created", evt.Type)
	assert.Equal(t, EntityTypeWishlist, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_ToJSON(t *testing.T) {
	evt := NewEvent(EventTypeUpdated, EntityTypeItem, map[string]interface{}{"id": "42"})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "item.updated", decoded["type"])
	assert.Equal(t, "item", decoded["entity"])
	assert.NotNil(t, decoded["payload"])
	assert.NotNil(t, decoded["timestamp"])
}

func TestEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{"id": "1"}

	tests := []struct {
		name     string
		evt      Event
		wantType string
		entity   EntityType
	}{
		{"WishlistCreated", WishlistCreated(payload), "wishlist.created", EntityTypeWishlist},
		{"WishlistUpdated", WishlistUpdated(payload), "wishlist.updated", EntityTypeWishlist},
		{"WishlistDeleted", WishlistDeleted(payload), "wishlist.deleted", EntityTypeWishlist},
		{"ItemCreated", ItemCreated(payload), "item.created", EntityTypeItem},
		{"ItemUpdated", ItemUpdated(payload), "item.updated", EntityTypeItem},
		{"ItemDeleted", ItemDeleted(payload), "item.deleted", EntityTypeItem},
		{"NoteCreated", NoteCreated(payload), "note.created", EntityTypeNote},
		{"NoteDeleted", NoteDeleted(payload), "note.deleted", EntityTypeNote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.evt.Type)
			assert.Equal(t, tt.entity, tt.evt.Entity)
			assert.Equal(t, payload, tt.evt.Payload)
		})
	}
}

func TestControlEvents(t *testing.T) {
	userID := uuid.New()

	data, err := ConnectionReady(userID).ToJSON()
	assert.NoError(t, err)
	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "connection.ready", decoded["type"])
	assert.NotContains(t, decoded, "entity")
	assert.Equal(t, userID.String(), decoded["payload"].(map[string]interface{})["userId"])

	data, err = Pong().ToJSON()
	assert.NoError(t, err)
	decoded = nil
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "pong", decoded["type"])
	assert.NotContains(t, decoded, "payload")
}
