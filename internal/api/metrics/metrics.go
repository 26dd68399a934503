// Package metrics defines and registers all custom Prometheus metrics for
// the storefront API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pokeshop"

// LoginsTotal counts login attempts that reached the credential check.
// Label:
//   - result: "ok" or "invalid"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LoginRateLimitedTotal counts login attempts rejected by the rate limiter
// before credentials were checked.
var LoginRateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_rate_limited_total",
		Help:      "Total number of login attempts blocked by the rate limiter.",
	},
)

// CheckoutsTotal counts checkout attempts.
// Label:
//   - result: "ok", "empty_cart", "out_of_stock", "product_missing" or "error"
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts, by result.",
	},
	[]string{"result"},
)

// UnitsSoldTotal counts stock units decremented by successful checkouts.
var UnitsSoldTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "units_sold_total",
		Help:      "Total number of units sold through checkout.",
	},
)

// ImageUploadsTotal counts stored image uploads.
// Label:
//   - kind: "product" or "banner"
var ImageUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Total number of image files stored, by record kind.",
	},
	[]string{"kind"},
)
