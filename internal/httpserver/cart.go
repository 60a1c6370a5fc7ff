package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zafago-storefront/internal/domain"
)

const cartRecoveredNotice = "your saved cart could not be read and was started fresh"

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), c.Param("cartID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cartResponse(c, http.StatusOK, cart)
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		cart, err := svc.Add(c.Request.Context(), c.Param("cartID"), in.ProductID, in.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cartResponse(c, http.StatusOK, cart)
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Remove(c.Request.Context(), c.Param("cartID"), c.Param("productID"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "line item not found"})
				return
			}
			serverError(c, err)
			return
		}
		cartResponse(c, http.StatusOK, cart)
	}
}

func clearCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), c.Param("cartID")); err != nil {
			serverError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// cartResponse attaches a human-readable notice when the cart was
// rebuilt from an unreadable baseline; the operation itself succeeded.
func cartResponse(c *gin.Context, status int, cart *domain.Cart) {
	body := gin.H{"cart": cart}
	if cart.Recovered {
		body["notice"] = cartRecoveredNotice
	}
	c.JSON(status, body)
}
