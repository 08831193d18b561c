package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/pricing"
	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/app/session"
	"github.com/mytheresa/storefront/app/telemetry"
	"github.com/mytheresa/storefront/models"
)

type Item struct {
	ID        uint                `json:"id"`
	ProductID uint                `json:"product_id"`
	Quantity  int                 `json:"quantity"`
	LineTotal float64             `json:"line_total"`
	CreatedAt time.Time           `json:"created_at"`
	Product   catalog.ProductView `json:"product"`
}

type Response struct {
	Items    []Item  `json:"items"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

type CartStore interface {
	List(ctx context.Context, token string) ([]models.CartItem, error)
	Add(ctx context.Context, token string, productID uint, quantity int) error
	UpdateQuantity(ctx context.Context, token string, itemID uint, quantity int) error
	Remove(ctx context.Context, token string, itemID uint) error
}

type CartHandler struct {
	repo     CartStore
	sessions *session.Provider
	events   telemetry.Emitter
	logger   *slog.Logger
}

func NewCartHandler(r CartStore, sessions *session.Provider, events telemetry.Emitter, logger *slog.Logger) *CartHandler {
	if events == nil {
		events = telemetry.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{
		repo:     r,
		sessions: sessions,
		events:   events,
		logger:   logger,
	}
}

// NewItems maps stored line items to their response shape.
func NewItems(items []models.CartItem) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		line := pricing.Line{Price: it.Product.Price, Quantity: it.Quantity}
		out[i] = Item{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			LineTotal: respond.Money(line.Amount()),
			CreatedAt: it.CreatedAt,
			Product:   catalog.NewProductView(it.Product),
		}
	}
	return out
}

// HandleGet lists the caller's cart with totals.
func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	token, _, err := h.sessions.Resolve(r)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "resolve session", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to resolve session")
		return
	}

	items, err := h.repo.List(r.Context(), token)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list cart", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to retrieve cart")
		return
	}

	totals := pricing.Compute(pricing.FromCart(items))

	productIDs := make([]uint, len(items))
	for i, it := range items {
		productIDs[i] = it.ProductID
	}
	h.events.Capture(r.Context(), telemetry.NewEvent(telemetry.CartViewed, token, map[string]any{
		"cart_total":   respond.Money(totals.Subtotal),
		"item_count":   totals.ItemCount,
		"unique_items": totals.UniqueItems,
		"product_ids":  productIDs,
	}))

	respond.JSON(w, http.StatusOK, Response{
		Items:    NewItems(items),
		Subtotal: respond.Money(totals.Subtotal),
		Tax:      respond.Money(totals.Tax),
		Total:    respond.Money(totals.Total),
	})
}

// HandleAdd adds a product to the caller's cart and issues the session cookie.
func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID *uint `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.ProductID == nil {
		respond.Error(w, http.StatusBadRequest, "Missing product_id")
		return
	}
	if input.Quantity <= 0 {
		respond.Error(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	token, _, err := h.sessions.Resolve(r)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "resolve session", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to resolve session")
		return
	}

	if err := h.repo.Add(r.Context(), token, *input.ProductID, input.Quantity); err != nil {
		h.logger.ErrorContext(r.Context(), "add to cart", "product_id", *input.ProductID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to add item to cart")
		return
	}

	h.events.Capture(r.Context(), telemetry.NewEvent(telemetry.ProductAddedToCart, token, map[string]any{
		"product_id": *input.ProductID,
		"quantity":   input.Quantity,
	}))

	h.sessions.SetCookie(w, token)
	respond.Success(w)
}

// HandleUpdate sets the quantity of one of the caller's line items.
func (h *CartHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CartItemID *uint `json:"cart_item_id"`
		Quantity   *int  `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.CartItemID == nil {
		respond.Error(w, http.StatusBadRequest, "Missing cart item ID")
		return
	}
	if input.Quantity == nil {
		respond.Error(w, http.StatusBadRequest, "Missing quantity")
		return
	}

	token, _, err := h.sessions.Resolve(r)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "resolve session", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to resolve session")
		return
	}

	err = h.repo.UpdateQuantity(r.Context(), token, *input.CartItemID, *input.Quantity)
	h.finishMutation(w, r, err, "Failed to update cart item")
}

// HandleDelete removes one of the caller's line items.
func (h *CartHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		respond.Error(w, http.StatusBadRequest, "Missing cart item ID")
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	token, _, err := h.sessions.Resolve(r)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "resolve session", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to resolve session")
		return
	}

	err = h.repo.Remove(r.Context(), token, uint(id))
	h.finishMutation(w, r, err, "Failed to remove cart item")
}

func (h *CartHandler) finishMutation(w http.ResponseWriter, r *http.Request, err error, failure string) {
	switch {
	case err == nil:
		respond.Success(w)
	case errors.Is(err, models.ErrForbidden):
		respond.Error(w, http.StatusForbidden, "Cart item belongs to another session")
	default:
		h.logger.ErrorContext(r.Context(), "cart mutation", "error", err)
		respond.Error(w, http.StatusInternalServerError, failure)
	}
}
