package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"zafago-storefront/internal/domain"
	"zafago-storefront/internal/promo"
	cartsvc "zafago-storefront/internal/service/cart"
	catalogsvc "zafago-storefront/internal/service/catalog"
)

type stubCatalog struct {
	products   []domain.Product
	publishers []domain.Publisher
	err        error
}

func (s *stubCatalog) List(_ context.Context, f catalogsvc.ListFilter) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) Get(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) NewReleases(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) ComingSoon(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) Upcoming(_ context.Context, _ int) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) TopRated(_ context.Context, n int) ([]domain.Product, error) {
	return s.take(n), s.err
}

func (s *stubCatalog) BestSellers(_ context.Context, n int) ([]domain.Product, error) {
	return s.take(n), s.err
}

func (s *stubCatalog) Featured(_ context.Context, n int) ([]domain.Product, error) {
	return s.take(n), s.err
}

func (s *stubCatalog) Deals(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) Publishers(_ context.Context) ([]domain.Publisher, error) {
	return s.publishers, s.err
}

func (s *stubCatalog) Publisher(_ context.Context, id string) (*domain.Publisher, error) {
	for _, p := range s.publishers {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) take(n int) []domain.Product {
	if n > len(s.products) {
		n = len(s.products)
	}
	return s.products[:n]
}

type stubCart struct {
	cart     *domain.Cart
	addErr   error
	notifier *cartsvc.Notifier

	lastCartID    string
	lastProductID string
	lastQty       int
}

func (s *stubCart) Get(_ context.Context, cartID string) (*domain.Cart, error) {
	s.lastCartID = cartID
	return s.cart, nil
}

func (s *stubCart) Add(_ context.Context, cartID, productID string, qty int) (*domain.Cart, error) {
	s.lastCartID = cartID
	s.lastProductID = productID
	s.lastQty = qty
	return s.cart, s.addErr
}

func (s *stubCart) Remove(_ context.Context, cartID, productID string) (*domain.Cart, error) {
	return s.cart, nil
}

func (s *stubCart) Clear(_ context.Context, cartID string) error { return nil }

func (s *stubCart) Notifier() *cartsvc.Notifier { return s.notifier }

func testDeps(t *testing.T, catalog *stubCatalog, cart *stubCart) Deps {
	t.Helper()
	if cart.notifier == nil {
		cart.notifier = cartsvc.NewNotifier()
	}
	promoSvc, err := promo.NewService(promo.Sale{
		Label:  "test sale",
		EndsAt: time.Now().Add(time.Hour),
		Slides: []promo.Slide{{ID: "s0"}, {ID: "s1"}, {ID: "s2"}},
	})
	if err != nil {
		t.Fatalf("promo service: %v", err)
	}
	return Deps{CatalogSvc: catalog, CartSvc: cart, PromoSvc: promoSvc}
}

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(log.New(io.Discard, "", 0), deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func TestHealthz(t *testing.T) {
	router := testRouter(t, testDeps(t, &stubCatalog{}, &stubCart{cart: &domain.Cart{}}))
	rec, body := doJSON(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected health response %d %v", rec.Code, body)
	}
}

func TestNoRouteOffersHomeAndSearch(t *testing.T) {
	router := testRouter(t, testDeps(t, &stubCatalog{}, &stubCart{cart: &domain.Cart{}}))
	rec, body := doJSON(t, router, http.MethodGet, "/api/nowhere", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body["home"] != "/" || body["search"] == "" {
		t.Fatalf("expected navigation hints, got %v", body)
	}
}

func TestNewsletterValidation(t *testing.T) {
	router := testRouter(t, testDeps(t, &stubCatalog{}, &stubCart{cart: &domain.Cart{}}))

	rec, body := doJSON(t, router, http.MethodPost, "/api/newsletter", `{"email":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty email, got %d %v", rec.Code, body)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/api/newsletter", `{"email":"not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed email, got %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodPost, "/api/newsletter", `{"email":"player@example.com"}`)
	if rec.Code != http.StatusAccepted || body["status"] != "subscribed" {
		t.Fatalf("expected signup accepted, got %d %v", rec.Code, body)
	}
}

func TestPanicRecoveryReturnsCorrelationID(t *testing.T) {
	deps := testDeps(t, &stubCatalog{}, &stubCart{cart: &domain.Cart{}})
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(log.New(io.Discard, "", 0), deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	rec, body := doJSON(t, router, http.MethodGet, "/boom", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["correlationId"] == "" || body["correlationId"] == nil {
		t.Fatalf("expected correlation id, got %v", body)
	}
	if strings.Contains(rec.Body.String(), "kaboom") {
		t.Fatal("panic internals leaked to the client")
	}
}
