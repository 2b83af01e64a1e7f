package quote

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/widget-basket/internal/common"
	"github.com/noah-isme/widget-basket/internal/pricing"
)

// Handler exposes the catalog and quote endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
	Logger   zerolog.Logger
}

type quoteRequest struct {
	Items []string `json:"items" validate:"required,min=1,max=200,dive,required,max=32"`
}

type productResponse struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type tierResponse struct {
	Below string `json:"below"`
	Cost  string `json:"cost"`
}

type quoteResponse struct {
	ID       string            `json:"id"`
	Items    []productResponse `json:"items"`
	Subtotal string            `json:"subtotal"`
	Discount string            `json:"discount"`
	Delivery string            `json:"delivery"`
	Total    string            `json:"total"`
}

// Routes mounts the handler endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/catalog", h.Catalog)
	r.Get("/delivery-tiers", h.DeliveryTiers)
	r.Post("/quote", h.Quote)
}

// Catalog lists products in catalog order.
func (h *Handler) Catalog(w http.ResponseWriter, _ *http.Request) {
	products := h.Svc.Catalog()
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{Code: p.Code(), Name: p.Name(), Price: pricing.Format(p.Price())})
	}
	common.JSON(w, http.StatusOK, map[string]any{"products": out})
}

// DeliveryTiers lists the delivery brackets in configuration order.
func (h *Handler) DeliveryTiers(w http.ResponseWriter, _ *http.Request) {
	tiers, err := h.Svc.DeliveryTiers()
	if err != nil {
		h.Logger.Error().Err(err).Msg("list delivery tiers")
		common.WriteError(w, err)
		return
	}
	out := make([]tierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, tierResponse{Below: pricing.Format(t.Threshold), Cost: pricing.Format(t.Cost)})
	}
	common.JSON(w, http.StatusOK, map[string]any{"tiers": out})
}

// Quote prices the posted product codes.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.validator().Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid quote request", fieldErrors(err))
		return
	}

	q, err := h.Svc.Quote(r.Context(), req.Items)
	if err != nil {
		var appErr *common.AppError
		if !errors.As(err, &appErr) {
			h.Logger.Error().Err(err).Msg("price basket")
		}
		common.WriteError(w, err)
		return
	}

	items := make([]productResponse, 0, len(q.Items))
	for _, p := range q.Items {
		items = append(items, productResponse{Code: p.Code(), Name: p.Name(), Price: pricing.Format(p.Price())})
	}
	common.JSON(w, http.StatusOK, quoteResponse{
		ID:       q.ID.String(),
		Items:    items,
		Subtotal: pricing.Format(q.Summary.Subtotal),
		Discount: q.Summary.Discount.String(),
		Delivery: pricing.Format(q.Summary.Delivery),
		Total:    pricing.Format(q.Summary.Total),
	})
}

var defaultValidate = validator.New(validator.WithRequiredStructEnabled())

func (h *Handler) validator() *validator.Validate {
	if h.Validate == nil {
		return defaultValidate
	}
	return h.Validate
}

func fieldErrors(err error) []map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, map[string]string{"field": fe.Namespace(), "rule": fe.Tag()})
	}
	return out
}
