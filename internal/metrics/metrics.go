package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartAdds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_adds_total",
		Help: "Products merged into carts",
	})

	CartRecoveries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_storage_recoveries_total",
		Help: "Cart reads that fell back to an empty baseline",
	})

	NewsletterSignups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_newsletter_signups_total",
		Help: "Accepted newsletter signups",
	})

	CarouselAdvances = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_carousel_advances_total",
		Help: "Carousel slide advances, automatic and manual",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
)
