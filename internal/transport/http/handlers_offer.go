package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartfinance/internal/offer"
	"smartfinance/internal/transport/http/shared"
	"smartfinance/internal/underwriting"
)

// OfferHandler exposes the decision front door and the offer read path.
type OfferHandler struct {
	offers *offer.Service
	logger *slog.Logger
}

func NewOfferHandler(offers *offer.Service, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{offers: offers, logger: logger}
}

func (h *OfferHandler) Register(r chi.Router) {
	r.Get("/offers/{token}", h.HandleGetOffer)
	r.Post("/decide-offer", h.HandleDecideOffer)
}

func (h *OfferHandler) HandleGetOffer(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	// Shape check before any store access so malformed keys cannot probe
	// the store.
	if !offer.ValidToken(token) {
		shared.WriteBadRequest(w, "Invalid offer key format.")
		return
	}

	o, err := h.offers.Get(r.Context(), token)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, o)
}

type decideOfferRequest struct {
	PAN             string  `json:"pan"`
	Phone           string  `json:"phone"`
	CreditScore     int     `json:"creditScore"`
	RequestedAmount float64 `json:"requestedAmount"`
	Salary          float64 `json:"salary"`
	IsExisting      bool    `json:"isExisting"`
}

type decideOfferResponse struct {
	underwriting.Decision
	OfferKey string `json:"offerKey,omitempty"`
}

func (h *OfferHandler) HandleDecideOffer(w http.ResponseWriter, r *http.Request) {
	req, ok := shared.DecodeJSON[decideOfferRequest](w, r)
	if !ok {
		return
	}
	if req.CreditScore <= 0 || req.RequestedAmount <= 0 {
		shared.WriteBadRequest(w, "creditScore and requestedAmount are required.")
		return
	}

	decision := underwriting.Decide(req.CreditScore, req.RequestedAmount, req.Salary)
	resp := decideOfferResponse{Decision: decision}

	if decision.Approved() {
		token, err := h.offers.Create(r.Context(), decision, req.PAN, req.Phone, req.IsExisting)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		resp.OfferKey = token
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}
