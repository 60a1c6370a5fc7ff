package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// cartWSHandler streams cart badge updates to a connected view. On
// connect the current count is pushed once, then every cart mutation in
// this process produces a message until the client goes away.
func cartWSHandler(svc CartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID := c.Param("cartID")

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Printf("cart ws: upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		cart, err := svc.Get(c.Request.Context(), cartID)
		if err != nil {
			logger.Printf("cart ws: initial read id=%s: %v", cartID, err)
			return
		}
		if err := conn.WriteJSON(gin.H{"type": "badge", "cartId": cartID, "totalQuantity": cart.TotalQuantity}); err != nil {
			return
		}

		events, cancel := svc.Notifier().Subscribe()
		defer cancel()

		// Drain reads so close frames are processed.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case <-c.Request.Context().Done():
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				if e.CartID != cartID {
					continue
				}
				if err := conn.WriteJSON(gin.H{"type": "badge", "cartId": e.CartID, "totalQuantity": e.TotalQuantity}); err != nil {
					return
				}
			}
		}
	}
}
