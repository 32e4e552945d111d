// Package metrics holds the prometheus collectors of the catalog service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// ImageStored labels a blob written for the first time.
	ImageStored = "stored"
	// ImageDeduplicated labels an upload whose digest file already existed.
	ImageDeduplicated = "deduplicated"
)

var (
	// ItemsCreated counts committed item inserts.
	ItemsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "items_created_total",
		Help:      "Number of items added to the catalog.",
	})

	// ImagesStored counts image uploads by outcome.
	ImagesStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "images_stored_total",
		Help:      "Number of image uploads, by whether the blob was new or deduplicated.",
	}, []string{"result"})

	// ImagePlaceholders counts image requests answered with the placeholder.
	ImagePlaceholders = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "image_placeholder_total",
		Help:      "Number of image requests served with the default placeholder.",
	})

	// HTTPRequests counts handled requests by route, method and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of HTTP requests, by route, method and status code.",
	}, []string{"route", "method", "status"})

	// HTTPDuration observes request latency by route and method.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency, by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
)
