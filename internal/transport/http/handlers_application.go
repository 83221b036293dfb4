package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartfinance/internal/application"
	"smartfinance/internal/offer"
	"smartfinance/internal/transport/http/shared"
)

// ApplicationHandler exposes submission and the status read path.
type ApplicationHandler struct {
	service *application.Service
	logger  *slog.Logger
}

func NewApplicationHandler(service *application.Service, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{service: service, logger: logger}
}

func (h *ApplicationHandler) Register(r chi.Router) {
	r.Post("/submit-application", h.HandleSubmit)
	r.Get("/status/{pan}", h.HandleStatus)
}

type submitRequest struct {
	OfferKey    string                   `json:"offerKey"`
	FormData    *application.FormData    `json:"formData"`
	LoanDetails *application.LoanDetails `json:"loanDetails"`
}

type submitResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ApplicationID string `json:"applicationId"`
}

func (h *ApplicationHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	req, ok := shared.DecodeJSON[submitRequest](w, r)
	if !ok {
		return
	}
	if req.OfferKey == "" || req.FormData == nil || req.LoanDetails == nil {
		shared.WriteBadRequest(w, "Missing application data or offer key.")
		return
	}
	if !offer.ValidToken(req.OfferKey) {
		shared.WriteBadRequest(w, "Invalid offer key format.")
		return
	}

	id, err := h.service.Submit(r.Context(), req.OfferKey, *req.FormData, *req.LoanDetails)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, submitResponse{
		Success:       true,
		Message:       "Application submitted.",
		ApplicationID: id,
	})
}

func (h *ApplicationHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	pan := chi.URLParam(r, "pan")
	if pan == "" {
		shared.WriteBadRequest(w, "PAN is required.")
		return
	}

	st, err := h.service.StatusByPAN(r.Context(), pan)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, st)
}
