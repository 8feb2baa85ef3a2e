package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodshare/internal/models"
)

func receiveOne(t *testing.T, client *Client) []byte {
	t.Helper()
	select {
	case payload := <-client.Outbox():
		return payload
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for payload")
		return nil
	}
}

func TestSendFansOutToAllConnections(t *testing.T) {
	registry := NewRegistry()
	first := registry.Register(7)
	second := registry.Register(7)
	other := registry.Register(8)

	delivered := registry.SendToDonor(7, ListingClaimed(&models.Notification{
		ID:            42,
		ListingID:     10,
		ListingTitle:  "Vegetable Biryani",
		ClaimQuantity: 2,
		Message:       "Bina has claimed 2 items",
	}))
	assert.Equal(t, 2, delivered)

	for _, client := range []*Client{first, second} {
		var event struct {
			Event string         `json:"event"`
			Data  ClaimEventData `json:"data"`
		}
		require.NoError(t, json.Unmarshal(receiveOne(t, client), &event))
		assert.Equal(t, "listingClaimed", event.Event)
		assert.Equal(t, uint(42), event.Data.NotificationID)
		assert.Equal(t, "Vegetable Biryani", event.Data.ListingTitle)
	}

	// the other donor's connection saw nothing
	assert.Empty(t, other.Outbox())
}

func TestSendWithoutConnectionsIsNoOp(t *testing.T) {
	registry := NewRegistry()
	assert.Equal(t, 0, registry.SendToDonor(7, Event{Event: "listingClaimed"}))
}

func TestUnregisterStopsDelivery(t *testing.T) {
	registry := NewRegistry()
	client := registry.Register(7)
	registry.Unregister(client)

	assert.Equal(t, 0, registry.SendToDonor(7, Event{Event: "listingClaimed"}))

	// outbox is closed so a draining goroutine terminates
	_, open := <-client.Outbox()
	assert.False(t, open)
}

func TestUnregisterTwiceIsSafe(t *testing.T) {
	registry := NewRegistry()
	client := registry.Register(7)
	registry.Unregister(client)
	registry.Unregister(client)
}

func TestFullOutboxDropsInsteadOfBlocking(t *testing.T) {
	registry := NewRegistry()
	slow := registry.Register(7)

	for i := 0; i < sendBuffer; i++ {
		require.Equal(t, 1, registry.SendToDonor(7, Event{Event: "listingClaimed"}))
	}

	// the outbox is full and nobody is draining; delivery must not block
	done := make(chan int, 1)
	go func() {
		done <- registry.SendToDonor(7, Event{Event: "listingClaimed"})
	}()

	select {
	case delivered := <-done:
		assert.Equal(t, 0, delivered)
	case <-time.After(time.Second):
		t.Fatal("SendToDonor blocked on a full outbox")
	}

	assert.Len(t, slow.Outbox(), sendBuffer)
}
