package httptransport

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"smartfinance/internal/transport/http/shared"
	"smartfinance/internal/verify"
)

// VerifyHandler exposes the identity verification endpoints.
type VerifyHandler struct {
	service *verify.Service
	logger  *slog.Logger
}

func NewVerifyHandler(service *verify.Service, logger *slog.Logger) *VerifyHandler {
	return &VerifyHandler{service: service, logger: logger}
}

func (h *VerifyHandler) Register(r chi.Router) {
	r.Post("/verify-pan", h.HandleVerifyPAN)
	r.Post("/verify-bank-details", h.HandleVerifyBankDetails)
	r.Post("/verify-salary", h.HandleVerifySalary)
	r.Post("/verify-final-details", h.HandleVerifyFinalDetails)
	r.Get("/profile-image/{pan}", h.HandleProfileImage)
}

type verifyPANRequest struct {
	PAN  string `json:"pan"`
	Name string `json:"name"`
}

func (h *VerifyHandler) HandleVerifyPAN(w http.ResponseWriter, r *http.Request) {
	req, ok := shared.DecodeJSON[verifyPANRequest](w, r)
	if !ok {
		return
	}
	if req.PAN == "" || req.Name == "" {
		shared.WriteBadRequest(w, "PAN and Name are required.")
		return
	}

	res, err := h.service.VerifyPAN(r.Context(), req.PAN, req.Name)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, res)
}

type verifyBankDetailsRequest struct {
	PAN           string `json:"pan"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
}

func (h *VerifyHandler) HandleVerifyBankDetails(w http.ResponseWriter, r *http.Request) {
	req, ok := shared.DecodeJSON[verifyBankDetailsRequest](w, r)
	if !ok {
		return
	}
	if req.PAN == "" || req.AccountNumber == "" || req.IFSCCode == "" {
		shared.WriteBadRequest(w, "PAN, Account Number, and IFSC are required.")
		return
	}

	res, err := h.service.VerifyBankDetails(r.Context(), req.PAN, req.AccountNumber, req.IFSCCode)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, res)
}

// verifySalaryRequest carries OCR output. Numbers arrive as display strings
// with thousands separators, so they are parsed leniently here.
type verifySalaryRequest struct {
	DBPhone          string `json:"dbPhone"`
	DBAddress        string `json:"dbAddress"`
	LoanAmount       string `json:"loanAmount"`
	ExtractedSalary  string `json:"extractedSalary"`
	ExtractedPhone   string `json:"extractedPhone"`
	ExtractedAddress string `json:"extractedAddress"`
}

func (h *VerifyHandler) HandleVerifySalary(w http.ResponseWriter, r *http.Request) {
	req, ok := shared.DecodeJSON[verifySalaryRequest](w, r)
	if !ok {
		return
	}
	if req.DBPhone == "" || req.DBAddress == "" || req.LoanAmount == "" || req.ExtractedSalary == "" {
		shared.WriteJSON(w, http.StatusBadRequest, verify.SalaryResult{
			Status:  verify.SalaryFailed,
			Message: "Missing required fields (dbPhone, dbAddress, loanAmount, extractedSalary).",
		})
		return
	}
	loanAmount, err := parseDisplayNumber(req.LoanAmount)
	if err != nil {
		shared.WriteJSON(w, http.StatusBadRequest, verify.SalaryResult{
			Status:  verify.SalaryFailed,
			Message: "loanAmount is not a number.",
		})
		return
	}
	salary, err := parseDisplayNumber(req.ExtractedSalary)
	if err != nil {
		shared.WriteJSON(w, http.StatusBadRequest, verify.SalaryResult{
			Status:  verify.SalaryFailed,
			Message: "extractedSalary is not a number.",
		})
		return
	}

	res, err := h.service.VerifySalarySlip(r.Context(), verify.SalarySlipInput{
		DBPhone:          req.DBPhone,
		DBAddress:        req.DBAddress,
		LoanAmount:       loanAmount,
		ExtractedSalary:  salary,
		ExtractedPhone:   req.ExtractedPhone,
		ExtractedAddress: req.ExtractedAddress,
	})
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, res)
}

type verifyFinalDetailsRequest struct {
	PAN           string `json:"pan"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	DOB           string `json:"dob"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
}

func (h *VerifyHandler) HandleVerifyFinalDetails(w http.ResponseWriter, r *http.Request) {
	req, ok := shared.DecodeJSON[verifyFinalDetailsRequest](w, r)
	if !ok {
		return
	}
	if req.PAN == "" {
		shared.WriteBadRequest(w, "PAN is required.")
		return
	}

	res, err := h.service.VerifyFinalDetails(r.Context(), verify.FinalDetailsInput{
		PAN:           req.PAN,
		Email:         req.Email,
		Phone:         req.Phone,
		DOB:           req.DOB,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
	})
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, res)
}

type profileImageResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (h *VerifyHandler) HandleProfileImage(w http.ResponseWriter, r *http.Request) {
	pan := chi.URLParam(r, "pan")
	if pan == "" {
		shared.WriteBadRequest(w, "PAN is required.")
		return
	}

	url, err := h.service.ProfileImage(r.Context(), pan)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, profileImageResponse{Success: true, ImageURL: url})
}

// parseDisplayNumber accepts values the way browsers render them, with
// thousands separators and stray whitespace.
func parseDisplayNumber(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(cleaned, 64)
}
