// Package checkout serves the order summary and the simulated order
// submission. No payment is taken and no order is stored.
package checkout

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mytheresa/storefront/app/cart"
	"github.com/mytheresa/storefront/app/pricing"
	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/app/session"
	"github.com/mytheresa/storefront/app/telemetry"
	"github.com/mytheresa/storefront/models"
)

// DefaultDelay is how long a simulated payment takes.
const DefaultDelay = 1500 * time.Millisecond

type Summary struct {
	Items     []cart.Item `json:"items"`
	ItemCount int         `json:"item_count"`
	Subtotal  float64     `json:"subtotal"`
	Tax       float64     `json:"tax"`
	Total     float64     `json:"total"`
}

type Confirmation struct {
	Status      string  `json:"status"`
	OrderNumber string  `json:"order_number"`
	Total       float64 `json:"total"`
	ItemCount   int     `json:"item_count"`
}

type Form struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	ZipCode    string `json:"zip_code"`
	CardNumber string `json:"card_number"`
}

// Validate reports the first problem with the form, or "" when it is complete.
func (f Form) Validate() string {
	fields := []struct {
		name  string
		value string
	}{
		{"full_name", f.FullName},
		{"email", f.Email},
		{"address", f.Address},
		{"city", f.City},
		{"zip_code", f.ZipCode},
		{"card_number", f.CardNumber},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return "Missing " + field.name
		}
	}
	if !strings.Contains(f.Email, "@") {
		return "Invalid email"
	}
	return ""
}

type CartLister interface {
	List(ctx context.Context, token string) ([]models.CartItem, error)
}

type CheckoutHandler struct {
	repo     CartLister
	sessions *session.Provider
	events   telemetry.Emitter
	logger   *slog.Logger
	delay    time.Duration
}

func NewCheckoutHandler(r CartLister, sessions *session.Provider, events telemetry.Emitter, logger *slog.Logger, delay time.Duration) *CheckoutHandler {
	if events == nil {
		events = telemetry.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{
		repo:     r,
		sessions: sessions,
		events:   events,
		logger:   logger,
		delay:    delay,
	}
}

// loadCart returns the caller's token, items and totals. It writes the error
// response itself and returns ok=false when the request cannot proceed.
func (h *CheckoutHandler) loadCart(w http.ResponseWriter, r *http.Request) (string, []models.CartItem, pricing.Totals, bool) {
	token, _, err := h.sessions.Resolve(r)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "resolve session", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to resolve session")
		return "", nil, pricing.Totals{}, false
	}

	items, err := h.repo.List(r.Context(), token)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list cart", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Failed to retrieve cart")
		return "", nil, pricing.Totals{}, false
	}
	if len(items) == 0 {
		respond.Error(w, http.StatusConflict, "Cart is empty")
		return "", nil, pricing.Totals{}, false
	}

	return token, items, pricing.Compute(pricing.FromCart(items)), true
}

func (h *CheckoutHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	token, items, totals, ok := h.loadCart(w, r)
	if !ok {
		return
	}

	h.events.Capture(r.Context(), telemetry.NewEvent(telemetry.CheckoutStarted, token, map[string]any{
		"total":        respond.Money(totals.Total),
		"item_count":   totals.ItemCount,
		"unique_items": totals.UniqueItems,
	}))

	respond.JSON(w, http.StatusOK, Summary{
		Items:     cart.NewItems(items),
		ItemCount: totals.ItemCount,
		Subtotal:  respond.Money(totals.Subtotal),
		Tax:       respond.Money(totals.Tax),
		Total:     respond.Money(totals.Total),
	})
}

func (h *CheckoutHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if msg := form.Validate(); msg != "" {
		respond.Error(w, http.StatusBadRequest, msg)
		return
	}

	token, _, totals, ok := h.loadCart(w, r)
	if !ok {
		return
	}

	if err := wait(r.Context(), h.delay); err != nil {
		h.logger.WarnContext(r.Context(), "checkout abandoned", "error", err)
		respond.Error(w, http.StatusServiceUnavailable, "Checkout cancelled")
		return
	}

	// Shown to the customer only; no order row is written.
	orderNumber := uuid.NewString()
	total := respond.Money(totals.Total)
	h.events.Capture(r.Context(), telemetry.NewEvent(telemetry.OrderCompleted, token, map[string]any{
		"order_number":   orderNumber,
		"total":          total,
		"customer_email": form.Email,
		"customer_name":  form.FullName,
	}))

	respond.JSON(w, http.StatusOK, Confirmation{
		Status:      "confirmed",
		OrderNumber: orderNumber,
		Total:       total,
		ItemCount:   totals.ItemCount,
	})
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
