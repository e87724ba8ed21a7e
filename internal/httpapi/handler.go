package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"makwell-storefront/internal/app"
	"makwell-storefront/internal/cart"
	"makwell-storefront/internal/catalog"
	"makwell-storefront/internal/checkout"
	"makwell-storefront/internal/listing"
	"makwell-storefront/internal/logger"
	"makwell-storefront/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the storefront API. Each request runs against the
// calling visitor's session.
type Handler struct {
	sessions *app.Sessions
}

func NewHandler(sessions *app.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) session(r *http.Request) *app.App {
	return h.sessions.Get(r.Context(), logger.VisitorFrom(r.Context()))
}

type addItemRequest struct {
	ID string `json:"id"`
}

type setQuantityRequest struct {
	Qty *int `json:"qty"`
}

type advanceImageRequest struct {
	ID     string `json:"id"`
	Cursor int    `json:"cursor"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	store := h.sessions.Catalog()
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"catalogLoaded": store.Loaded(),
		"products":      store.Len(),
	})
}

// ListProducts applies the q, category, sort and page parameters that are
// present, in that order, and returns the resulting snapshot.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var cmds []app.Command

	if query.Has("q") {
		cmds = append(cmds, app.SetQuery{Text: query.Get("q")})
	}
	if query.Has("category") {
		cmds = append(cmds, app.SetCategory{Category: query.Get("category")})
	}
	if query.Has("sort") {
		cmds = append(cmds, app.SetSort{Sort: listing.ParseSortKey(query.Get("sort"))})
	}
	if query.Has("page") {
		cmds = append(cmds, app.SetPage{Page: utils.QueryInt(r, "page", 1)})
	}

	snap, err := h.session(r).DispatchAll(r.Context(), cmds...)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	card, ok := h.session(r).Product(chi.URLParam(r, "id"))
	if !ok {
		h.writeError(w, r, catalog.ErrProductNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, card)
}

func (h *Handler) ProductImages(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.session(r).Images(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
}

// AdvanceImage is called by the client when the candidate at cursor failed to load.
func (h *Handler) AdvanceImage(w http.ResponseWriter, r *http.Request) {
	var req advanceImageRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	step, err := h.session(r).AdvanceImage(req.ID, req.Cursor)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, step)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]any{"categories": h.session(r).Categories()})
}

func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.session(r).Facets())
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.session(r).Snapshot(r.Context()).Cart)
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.dispatchCart(w, r, app.AddToCart{ProductID: req.ID})
}

func (h *Handler) SetCartItem(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Qty == nil {
		utils.WriteJSONError(w, "qty is required", http.StatusBadRequest)
		return
	}
	h.dispatchCart(w, r, app.SetQuantity{ProductID: chi.URLParam(r, "id"), Quantity: *req.Qty})
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	h.dispatchCart(w, r, app.RemoveFromCart{ProductID: chi.URLParam(r, "id")})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.dispatchCart(w, r, app.ClearCart{})
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.session(r).Checkout(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, receipt)
}

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.session(r).Snapshot(r.Context()).Preferences)
}

func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.dispatchPreferences(w, r, app.ToggleTheme{})
}

func (h *Handler) DismissCTA(w http.ResponseWriter, r *http.Request) {
	h.dispatchPreferences(w, r, app.DismissCTA{})
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.sessions.Metrics().Snapshot())
}

func (h *Handler) dispatchCart(w http.ResponseWriter, r *http.Request, cmd app.Command) {
	snap, err := h.session(r).Dispatch(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap.Cart)
}

func (h *Handler) dispatchPreferences(w http.ResponseWriter, r *http.Request, cmd app.Command) {
	snap, err := h.session(r).Dispatch(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap.Preferences)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	utils.WriteJSONError(w, errorMessage(err), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, cart.ErrInvalidProductID):
		return http.StatusBadRequest
	case errors.Is(err, cart.ErrProductNotFound), errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrOutOfStock), errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrMissingSink):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	if statusFor(err) >= http.StatusInternalServerError {
		return strings.ToLower(http.StatusText(http.StatusInternalServerError))
	}
	return err.Error()
}
