package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// ListingSocket keeps one live connection registered for the logged-in
// user so claim events reach them while they are online. The registry
// carries no durable state; missed events are covered by the persisted
// notifications.
func ListingSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID := conn.Locals("user_id").(uint)

		client := registry.Register(userID)
		defer registry.Unregister(client)

		done := make(chan struct{})

		// Writer: drain the client's outbox onto the socket
		go func() {
			defer close(done)
			for payload := range client.Outbox() {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			}
		}()

		// Reader: we never expect client messages, but reading is what
		// detects the peer going away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		registry.Unregister(client)
		<-done
	})
}
