// Package server wires repositories and handlers into the HTTP routes.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/mytheresa/storefront/app/cart"
	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/categories"
	"github.com/mytheresa/storefront/app/checkout"
	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/app/session"
	"github.com/mytheresa/storefront/app/telemetry"
	"github.com/mytheresa/storefront/database"
	"github.com/mytheresa/storefront/models"
)

type Deps struct {
	DB            *gorm.DB
	Sessions      *session.Provider
	Events        telemetry.Emitter
	Logger        *slog.Logger
	CheckoutDelay time.Duration
}

// NewRouter returns the storefront's HTTP handler.
func NewRouter(d Deps) http.Handler {
	if d.Sessions == nil {
		d.Sessions = &session.Provider{}
	}
	if d.Events == nil {
		d.Events = telemetry.Nop{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	carts := models.NewCartRepository(d.DB)
	catalogHandler := catalog.NewCatalogHandler(models.NewProductsRepository(d.DB), d.Sessions, d.Events, d.Logger)
	categoryHandler := categories.NewCategoryHandler(models.NewCategoriesRepository(d.DB), d.Logger)
	cartHandler := cart.NewCartHandler(carts, d.Sessions, d.Events, d.Logger)
	checkoutHandler := checkout.NewCheckoutHandler(carts, d.Sessions, d.Events, d.Logger, d.CheckoutDelay)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", catalogHandler.HandleGet)
	mux.HandleFunc("GET /products/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("GET /categories", categoryHandler.HandleGetAll)

	mux.HandleFunc("GET /cart", cartHandler.HandleGet)
	mux.HandleFunc("POST /cart", cartHandler.HandleAdd)
	mux.HandleFunc("PATCH /cart", cartHandler.HandleUpdate)
	mux.HandleFunc("DELETE /cart", cartHandler.HandleDelete)

	mux.HandleFunc("GET /checkout", checkoutHandler.HandleSummary)
	mux.HandleFunc("POST /checkout", checkoutHandler.HandleSubmit)

	mux.HandleFunc("GET /healthz", healthHandler(d.DB, d.Logger))

	return recoverer(d.Logger, requestLogger(d.Logger, mux))
}

func healthHandler(db *gorm.DB, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			logger.ErrorContext(r.Context(), "health check", "error", err)
			respond.Error(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
