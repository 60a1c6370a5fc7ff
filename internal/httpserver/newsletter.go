package httpserver

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"zafago-storefront/internal/metrics"
)

// newsletterHandler validates the signup synchronously; a rejected email
// produces no side effect of any kind.
func newsletterHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		email := strings.TrimSpace(in.Email)
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}
		if _, err := mail.ParseAddress(email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is not valid"})
			return
		}

		metrics.NewsletterSignups.Inc()
		c.JSON(http.StatusAccepted, gin.H{"status": "subscribed"})
	}
}
