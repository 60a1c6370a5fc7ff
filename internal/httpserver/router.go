package httpserver

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zafago-storefront/internal/domain"
	"zafago-storefront/internal/metrics"
	"zafago-storefront/internal/promo"
	cartsvc "zafago-storefront/internal/service/cart"
	catalogsvc "zafago-storefront/internal/service/catalog"
)

type CatalogService interface {
	List(ctx context.Context, f catalogsvc.ListFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	NewReleases(ctx context.Context) ([]domain.Product, error)
	ComingSoon(ctx context.Context) ([]domain.Product, error)
	Upcoming(ctx context.Context, months int) ([]domain.Product, error)
	TopRated(ctx context.Context, n int) ([]domain.Product, error)
	BestSellers(ctx context.Context, n int) ([]domain.Product, error)
	Featured(ctx context.Context, n int) ([]domain.Product, error)
	Deals(ctx context.Context) ([]domain.Product, error)
	Publishers(ctx context.Context) ([]domain.Publisher, error)
	Publisher(ctx context.Context, id string) (*domain.Publisher, error)
}

type CartService interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	Add(ctx context.Context, cartID, productID string, qty int) (*domain.Cart, error)
	Remove(ctx context.Context, cartID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, cartID string) error
	Notifier() *cartsvc.Notifier
}

// Deps carries the services the router needs. The promo service has no
// external dependencies, so it is injected concretely.
type Deps struct {
	CatalogSvc CatalogService
	CartSvc    CartService
	PromoSvc   *promo.Service

	// Ready reports whether configured backing stores are reachable.
	Ready func(ctx context.Context) error
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), recoveryMiddleware(logger), requestMetrics())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Ready))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	cat := api.Group("/catalog")
	cat.GET("/products", listProductsHandler(deps.CatalogSvc))
	cat.GET("/products/:id", getProductHandler(deps.CatalogSvc))
	cat.GET("/new-releases", derivedListHandler(deps.CatalogSvc.NewReleases))
	cat.GET("/coming-soon", derivedListHandler(deps.CatalogSvc.ComingSoon))
	cat.GET("/upcoming", upcomingHandler(deps.CatalogSvc))
	cat.GET("/top-rated", rankedHandler(deps.CatalogSvc.TopRated))
	cat.GET("/best-sellers", rankedHandler(deps.CatalogSvc.BestSellers))
	cat.GET("/featured", rankedHandler(deps.CatalogSvc.Featured))
	cat.GET("/deals", derivedListHandler(deps.CatalogSvc.Deals))
	cat.GET("/publishers", listPublishersHandler(deps.CatalogSvc))
	cat.GET("/publishers/:id", getPublisherHandler(deps.CatalogSvc))

	carts := api.Group("/carts")
	carts.GET("/:cartID", getCartHandler(deps.CartSvc))
	carts.POST("/:cartID/items", addCartItemHandler(deps.CartSvc))
	carts.DELETE("/:cartID/items/:productID", removeCartItemHandler(deps.CartSvc))
	carts.DELETE("/:cartID", clearCartHandler(deps.CartSvc))
	carts.GET("/:cartID/ws", cartWSHandler(deps.CartSvc, logger))

	pr := api.Group("/promo")
	pr.GET("/sale", saleHandler(deps.PromoSvc))
	pr.GET("/carousel", carouselStateHandler(deps.PromoSvc))
	pr.POST("/carousel/next", carouselNavHandler(deps.PromoSvc, func(c *promo.Carousel) { c.Next() }))
	pr.POST("/carousel/previous", carouselNavHandler(deps.PromoSvc, func(c *promo.Carousel) { c.Previous() }))
	pr.POST("/carousel/goto", carouselGoToHandler(deps.PromoSvc))
	pr.POST("/carousel/pause", carouselPauseHandler(deps.PromoSvc))
	pr.POST("/carousel/resume", carouselResumeHandler(deps.PromoSvc))

	api.POST("/newsletter", newsletterHandler())

	// Unresolvable targets get a signpost back to the storefront.
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "page not found",
			"home":   "/",
			"search": "/api/catalog/products",
		})
	})

	return router, nil
}

// recoveryMiddleware converts panics into an opaque 500 carrying only a
// correlation id; internals go to the log, never to the client.
func recoveryMiddleware(logger *log.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(logger.Writer(), func(c *gin.Context, err any) {
		id := uuid.NewString()
		logger.Printf("panic recovered correlation_id=%s path=%s err=%v", id, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":         "something went wrong, please retry",
			"correlationId": id,
			"home":          "/",
		})
	})
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
