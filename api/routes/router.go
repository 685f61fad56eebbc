package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mgoulart/sellerdesk-backend/api/controllers"
	"github.com/mgoulart/sellerdesk-backend/api/middleware"
	"github.com/mgoulart/sellerdesk-backend/internal/binding"
	"github.com/mgoulart/sellerdesk-backend/internal/catalog"
	"github.com/mgoulart/sellerdesk-backend/internal/inventory"
	"github.com/mgoulart/sellerdesk-backend/internal/locations"
	"github.com/mgoulart/sellerdesk-backend/internal/orders"
	"github.com/mgoulart/sellerdesk-backend/internal/prefs"
	"github.com/mgoulart/sellerdesk-backend/pkg/config"
	"github.com/mgoulart/sellerdesk-backend/pkg/db"
	"github.com/mgoulart/sellerdesk-backend/pkg/logger"
	"github.com/mgoulart/sellerdesk-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DBPinger    db.Pinger
	RedisPinger redis.Pinger

	Catalog   catalog.Service
	Inventory inventory.Service
	Binding   binding.Coordinator
	Orders    orders.Service
	Locations locations.Service
	Prefs     prefs.Store

	Metrics prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(deps.Catalog, logg))
			r.Get("/search", controllers.SearchProducts(deps.Catalog, logg))
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", controllers.GetProduct(deps.Catalog, logg))
				r.Patch("/", controllers.UpdateProduct(deps.Catalog, logg))
				r.Post("/variants", controllers.GenerateProductVariants(deps.Catalog, logg))
				r.Get("/stock", controllers.GetProductStock(deps.Inventory, logg))
				r.Get("/movements", controllers.ListStockMovements(deps.Inventory, logg))
			})
		})

		r.Post("/stock/adjustments", controllers.AdjustStock(deps.Inventory, logg))

		r.Route("/locations", func(r chi.Router) {
			r.Post("/", controllers.CreateLocation(deps.Locations, logg))
			r.Get("/", controllers.ListLocations(deps.Locations, logg))
			r.Route("/{locationId}", func(r chi.Router) {
				r.Get("/", controllers.GetLocation(deps.Locations, logg))
				r.Put("/", controllers.RenameLocation(deps.Locations, logg))
				r.Delete("/", controllers.DeleteLocation(deps.Locations, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.IngestOrder(deps.Orders, logg))
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Route("/{orderId}", func(r chi.Router) {
				r.Get("/", controllers.GetOrder(deps.Orders, logg))
				r.Route("/binding", func(r chi.Router) {
					r.Get("/", controllers.GetBindingSession(deps.Binding, logg))
					r.Post("/select", controllers.SelectBindingItem(deps.Binding, logg))
					r.Post("/bind", controllers.BindProduct(deps.Binding, logg))
					r.Post("/unbind", controllers.UnbindProduct(deps.Binding, logg))
					r.Post("/commit", controllers.CommitBindings(deps.Binding, logg))
				})
			})
		})

		r.Route("/prefs/{key}", func(r chi.Router) {
			r.Get("/", controllers.GetPreference(deps.Prefs, logg))
			r.Put("/", controllers.SetPreference(deps.Prefs, logg))
			r.Delete("/", controllers.DeletePreference(deps.Prefs, logg))
		})
	})

	return r
}
