package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/darshak-ai/restaurant-platform/api/controllers"
	"github.com/darshak-ai/restaurant-platform/api/middleware"
	"github.com/darshak-ai/restaurant-platform/internal/checkout"
	"github.com/darshak-ai/restaurant-platform/internal/orders"
	"github.com/darshak-ai/restaurant-platform/internal/session"
	"github.com/darshak-ai/restaurant-platform/internal/state"
	"github.com/darshak-ai/restaurant-platform/pkg/config"
	"github.com/darshak-ai/restaurant-platform/pkg/logger"
	pkgredis "github.com/darshak-ai/restaurant-platform/pkg/redis"
	"github.com/darshak-ai/restaurant-platform/pkg/upstream"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	API        *upstream.Client
	States     *state.Store
	Sessions   *session.Service
	Observer   *session.Observer
	Checkout   *checkout.Service
	Reporter   *orders.Reporter
	Idempotent pkgredis.IdempotencyStore
	TaxRate    decimal.Decimal
	// Pingers feed the readiness probe, keyed by dependency name.
	Pingers map[string]func(r *http.Request) error
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(d.Pingers, cfg))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, cfg.App.IsProd(), logg))
		r.Use(middleware.Idempotency(d.Idempotent, cfg.Checkout.IdempotencyTTL, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.Login(d.Sessions, logg))
			r.Post("/register", controllers.Register(d.Sessions, logg))
			r.Post("/logout", controllers.Logout(d.Sessions, logg))
			r.With(middleware.RequireAuth(d.States, logg)).Get("/me", controllers.Me(d.Sessions, logg))
		})

		r.Get("/bootstrap", controllers.Bootstrap(d.API, d.States, d.Observer, cfg, logg))

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", controllers.ListRestaurants(d.API, d.States, d.Observer, logg))
			r.Post("/select", controllers.SelectRestaurant(d.API, d.States, d.Observer, logg))
		})
		r.Post("/location", controllers.StoreLocation(d.States, logg))

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.Menu(d.API, d.States, d.Observer, logg))
			r.Get("/search", controllers.SearchMenu(d.API, d.States, d.Observer, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.ViewCart(d.States, d.TaxRate, logg))
			r.Post("/items", controllers.AddCartItem(d.API, d.States, d.Observer, d.TaxRate, logg))
			r.Put("/items/{itemID}", controllers.UpdateCartItem(d.States, d.TaxRate, logg))
			r.Delete("/items/{itemID}", controllers.RemoveCartItem(d.States, d.TaxRate, logg))
			r.Delete("/", controllers.ClearCart(d.States, d.TaxRate, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", controllers.BeginCheckout(d.Checkout, d.States, logg))
			r.Get("/", controllers.CheckoutStatus(d.Checkout, d.States, logg))
			r.Post("/submit", controllers.SubmitCheckout(d.Checkout, d.States, logg))
			r.Post("/bypass", controllers.BypassCheckout(d.Checkout, d.States, logg))
			r.Post("/retry", controllers.RetryCheckout(d.Checkout, d.States, logg))
			r.Delete("/", controllers.AbandonCheckout(d.Checkout, d.States, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/current", controllers.CurrentOrder(d.States, logg))
			r.Get("/history", controllers.OrderHistory(d.States, logg))
			r.Get("/track/{orderNumber}", controllers.TrackOrder(d.API, d.Observer, logg))
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/pages", controllers.ListPages(d.API, d.Observer, logg))
			r.Get("/pages/{slug}", controllers.PageBySlug(d.API, d.Observer, logg))
			r.Get("/gallery", controllers.GalleryImages(d.API, d.Observer, logg))
			r.Get("/announcements", controllers.Announcements(d.API, d.Observer, logg))
			r.Get("/contact", controllers.ContactInfo(d.API, d.Observer, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.States, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(d.API, d.Observer, logg))
				r.Put("/{orderID}/status", controllers.AdminUpdateOrderStatus(d.API, d.Observer, logg))
				r.Delete("/{orderID}", controllers.AdminCancelOrder(d.API, d.Observer, logg))
			})
			r.Get("/analytics", controllers.AdminAnalytics(d.Reporter, d.Observer, logg))

			r.Route("/restaurants", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateRestaurant(d.API, d.Observer, logg))
				r.Put("/{restaurantID}", controllers.AdminUpdateRestaurant(d.API, d.Observer, logg))
				r.Delete("/{restaurantID}", controllers.AdminDeleteRestaurant(d.API, d.Observer, logg))
				r.Get("/{restaurantID}/menus", controllers.AdminListMenus(d.API, d.Observer, logg))
			})

			r.Route("/menus", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateMenu(d.API, d.Observer, logg))
				r.Put("/{menuID}", controllers.AdminUpdateMenu(d.API, d.Observer, logg))
				r.Delete("/{menuID}", controllers.AdminDeleteMenu(d.API, d.Observer, logg))
			})

			r.Route("/content", func(r chi.Router) {
				r.Get("/", controllers.AdminSearchContent(d.API, d.Observer, logg))
				r.Post("/", controllers.AdminCreateContent(d.API, d.Observer, logg))
				r.Put("/{contentID}", controllers.AdminUpdateContent(d.API, d.Observer, logg))
				r.Delete("/{contentID}", controllers.AdminDeleteContent(d.API, d.Observer, logg))
			})
		})
	})

	return r
}
