package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zafago-storefront/internal/promo"
)

func saleHandler(svc *promo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cd := svc.Countdown()
		state := cd.State()
		c.JSON(http.StatusOK, gin.H{
			"label":     cd.Label(),
			"endsAt":    cd.Target(),
			"remaining": state,
			"display":   state.Display(),
		})
	}
}

func carouselStateHandler(svc *promo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, carouselBody(svc))
	}
}

func carouselNavHandler(svc *promo.Service, nav func(*promo.Carousel)) gin.HandlerFunc {
	return func(c *gin.Context) {
		nav(svc.Carousel())
		c.JSON(http.StatusOK, carouselBody(svc))
	}
}

func carouselGoToHandler(svc *promo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Index *int `json:"index"`
		}
		if err := c.ShouldBindJSON(&in); err != nil || in.Index == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "index required"})
			return
		}
		if err := svc.Carousel().GoTo(*in.Index); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, carouselBody(svc))
	}
}

func carouselPauseHandler(svc *promo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Carousel().Suspend()
		c.JSON(http.StatusOK, carouselBody(svc))
	}
}

func carouselResumeHandler(svc *promo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.ResumeCarousel()
		c.JSON(http.StatusOK, carouselBody(svc))
	}
}

func carouselBody(svc *promo.Service) gin.H {
	car := svc.Carousel()
	idx, slide := car.Current()
	return gin.H{
		"index":       idx,
		"slide":       slide,
		"total":       car.Len(),
		"autoPlaying": car.AutoPlaying(),
	}
}
