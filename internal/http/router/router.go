package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"transportmarket/internal/http/handlers"
	mw "transportmarket/internal/http/middleware"
	"transportmarket/internal/http/middleware/ratelimit"
	"transportmarket/internal/logx"
)

// Deps bundles the handlers and route-scoped middleware of the API.
type Deps struct {
	Logger    logx.Logger
	Base      *handlers.Handlers
	Orders    *handlers.OrderHandler
	Messages  *handlers.MessageHandler
	Threads   *handlers.ThreadHandler
	Couriers  *handlers.CourierHandler
	Streams   *handlers.StreamHandler
	RateLimit *ratelimit.Middleware
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(mw.WithIdentity)
	r.Use(mw.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	// the stream route outlives the request timeout on purpose
	r.Get("/streams/{topic}", d.Streams.Tail)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(5 * time.Second))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", d.Orders.Create)
			r.Get("/{orderID}", d.Orders.Get)
			r.Post("/{orderID}/status", d.Orders.Transition)
			r.Post("/{orderID}/assign", d.Orders.Assign)
			r.Post("/{orderID}/dismiss", d.Orders.Dismiss)
			r.Post("/{orderID}/archive", d.Orders.Archive)

			r.Group(func(r chi.Router) {
				if d.RateLimit != nil {
					r.Use(d.RateLimit.Handler())
				}
				r.Post("/{orderID}/messages", d.Messages.Post)
			})
		})

		r.Post("/admin/messages", d.Messages.PostAdmin)
		r.Post("/messages/{messageID}/read", d.Messages.MarkRead)
		r.Get("/threads", d.Threads.List)

		r.Route("/couriers/{courierID}/zones", func(r chi.Router) {
			r.Get("/", d.Couriers.ListZones)
			r.Post("/", d.Couriers.AddZone)
			r.Delete("/{zoneID}", d.Couriers.DeleteZone)
		})
		r.Put("/push-token", d.Couriers.PutPushToken)
	})

	return r
}
