package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"smartfinance/internal/otp"
	"smartfinance/internal/transport/http/shared"
)

// OTPHandler exposes the email and phone OTP endpoints.
type OTPHandler struct {
	service *otp.Service
	logger  *slog.Logger
}

func NewOTPHandler(service *otp.Service, logger *slog.Logger) *OTPHandler {
	return &OTPHandler{service: service, logger: logger}
}

func (h *OTPHandler) Register(r chi.Router) {
	r.Post("/send-email-otp", h.HandleSendEmailOTP)
	r.Post("/verify-email-otp", h.HandleVerifyEmailOTP)
	r.Post("/send-bank-otp", h.HandleSendBankOTP)
	r.Post("/verify-bank-otp", h.HandleVerifyBankOTP)
}

type sendEmailOTPRequest struct {
	Email string `json:"email"`
}

func (h *OTPHandler) HandleSendEmailOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := shared.DecodeJSON[sendEmailOTPRequest](w, r)
	if !ok {
		return
	}
	if req.Email == "" {
		shared.WriteBadRequest(w, "Email is required.")
		return
	}
	if !govalidator.IsEmail(req.Email) {
		shared.WriteBadRequest(w, "Email is not valid.")
		return
	}

	res, err := h.service.Send(r.Context(), req.Email)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, res)
}

type verifyEmailOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *OTPHandler) HandleVerifyEmailOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := shared.DecodeJSON[verifyEmailOTPRequest](w, r)
	if !ok {
		return
	}
	if req.Email == "" || req.OTP == "" {
		shared.WriteBadRequest(w, "Email and OTP are required.")
		return
	}

	res, err := h.service.Verify(r.Context(), req.Email, req.OTP)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, res)
}

type sendBankOTPRequest struct {
	Phone string `json:"phone"`
}

func (h *OTPHandler) HandleSendBankOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := shared.DecodeJSON[sendBankOTPRequest](w, r)
	if !ok {
		return
	}
	if req.Phone == "" {
		shared.WriteBadRequest(w, "Phone is required.")
		return
	}

	res, err := h.service.Send(r.Context(), req.Phone)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, res)
}

type verifyBankOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

func (h *OTPHandler) HandleVerifyBankOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := shared.DecodeJSON[verifyBankOTPRequest](w, r)
	if !ok {
		return
	}
	if req.Phone == "" || req.OTP == "" {
		shared.WriteBadRequest(w, "Phone and OTP are required.")
		return
	}

	res, err := h.service.Verify(r.Context(), req.Phone, req.OTP)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, res)
}
