package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/app/session"
	"github.com/mytheresa/storefront/app/telemetry"
	"github.com/mytheresa/storefront/models"
	"github.com/shopspring/decimal"
)

const lowStockThreshold = 10

type Response struct {
	Total    int           `json:"total"`
	Products []ProductView `json:"products"`
}

type CategoryView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductView struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	ImageURL    string       `json:"image_url"`
	Stock       int          `json:"stock"`
	StockStatus string       `json:"stock_status"`
	Category    CategoryView `json:"category"`
}

// StockStatus buckets a stock level the way the storefront labels it.
func StockStatus(stock int) string {
	switch {
	case stock <= 0:
		return "out_of_stock"
	case stock <= lowStockThreshold:
		return "low_stock"
	default:
		return "in_stock"
	}
}

func NewProductView(p models.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       respond.Money(p.Price),
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		StockStatus: StockStatus(p.Stock),
		Category: CategoryView{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		},
	}
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
}

type CatalogHandler struct {
	repo     ProductProvider
	sessions *session.Provider
	events   telemetry.Emitter
	logger   *slog.Logger
}

func NewCatalogHandler(r ProductProvider, sessions *session.Provider, events telemetry.Emitter, logger *slog.Logger) *CatalogHandler {
	if events == nil {
		events = telemetry.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{
		repo:     r,
		sessions: sessions,
		events:   events,
		logger:   logger,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	// Parse filters
	filters := models.ProductFilters{
		CategorySlug: strings.ToLower(r.URL.Query().Get("category")),
	}

	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := decimal.NewFromString(priceStr); err == nil {
			filters.PriceLessThan = &val
		}
	}

	res, total, err := h.repo.GetFilteredProducts(r.Context(), offset, limit, filters)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list products", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	products := make([]ProductView, len(res))
	for i, p := range res {
		products[i] = NewProductView(p)
	}

	respond.JSON(w, http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := h.repo.GetByID(r.Context(), uint(id))
	if errors.Is(err, models.ErrProductNotFound) {
		respond.Error(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "get product", "id", id, "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	view := NewProductView(*product)

	if token, _, err := h.sessions.Resolve(r); err == nil {
		h.events.Capture(r.Context(), telemetry.NewEvent(telemetry.ProductViewed, token, map[string]any{
			"product_id":    view.ID,
			"product_name":  view.Name,
			"product_price": view.Price,
			"category":      view.Category.Name,
		}))
	}

	respond.JSON(w, http.StatusOK, view)
}
