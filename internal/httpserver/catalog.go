package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zafago-storefront/internal/domain"
	catalogsvc "zafago-storefront/internal/service/catalog"
)

const defaultRankLimit = 10

func listProductsHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := catalogsvc.ListFilter{
			Category: domain.Category(c.Query("category")),
			Platform: c.Query("platform"),
			Genre:    c.Query("genre"),
			Sort:     c.Query("sort"),
			Limit:    intQuery(c, "limit", 0),
		}
		if f.Category != "" && !f.Category.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		products, err := svc.List(c.Request.Context(), f)
		if err != nil {
			serverError(c, err)
			return
		}
		productList(c, products)
	}
}

func getProductHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, productView(*p))
	}
}

// derivedListHandler serves the parameterless catalog derivations
// (new releases, coming soon, deals).
func derivedListHandler(derive func(ctx context.Context) ([]domain.Product, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := derive(c.Request.Context())
		if err != nil {
			serverError(c, err)
			return
		}
		productList(c, products)
	}
}

func rankedHandler(rank func(ctx context.Context, n int) ([]domain.Product, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := rank(c.Request.Context(), intQuery(c, "limit", defaultRankLimit))
		if err != nil {
			serverError(c, err)
			return
		}
		productList(c, products)
	}
}

func upcomingHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		months := intQuery(c, "months", 1)
		if months != 1 && months != 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be 1 or 3"})
			return
		}
		products, err := svc.Upcoming(c.Request.Context(), months)
		if err != nil {
			serverError(c, err)
			return
		}
		productList(c, products)
	}
}

func listPublishersHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		publishers, err := svc.Publishers(c.Request.Context())
		if err != nil {
			serverError(c, err)
			return
		}
		if publishers == nil {
			publishers = []domain.Publisher{}
		}
		c.JSON(http.StatusOK, gin.H{"publishers": publishers, "total": len(publishers)})
	}
}

func getPublisherHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Publisher(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "publisher not found"})
				return
			}
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// productResponse decorates a product with its derived effective price,
// so clients never recompute the discount math.
type productResponse struct {
	domain.Product
	EffectivePriceCents int64 `json:"effectivePriceCents"`
}

func productView(p domain.Product) productResponse {
	return productResponse{Product: p, EffectivePriceCents: p.EffectivePriceCents()}
}

func productList(c *gin.Context, products []domain.Product) {
	views := make([]productResponse, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": views, "total": len(views)})
}

func serverError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
