// Package verify hosts the three independent identity checks: PAN-to-name,
// bank-account-to-PAN, and payslip-to-profile. Each reads the customer record
// keyed by PAN and returns a mismatch as a value, never as an error.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"smartfinance/internal/audit"
	"smartfinance/internal/customer"
	"smartfinance/internal/platform/metrics"
	dErrors "smartfinance/pkg/domain-errors"
	"smartfinance/pkg/privacy"
)

var tracer = otel.Tracer("smartfinance/verify")

// Service runs the identity checks against the customer store.
type Service struct {
	customers customer.Store
	logger    *slog.Logger
	metrics   *metrics.Metrics
	audit     *audit.Publisher
}

func NewService(customers customer.Store, logger *slog.Logger, m *metrics.Metrics, auditPub *audit.Publisher) *Service {
	return &Service{customers: customers, logger: logger, metrics: m, audit: auditPub}
}

// VerifyPAN matches the claimed name against the record's full name on the
// first token only, case-insensitively. The leniency is a product decision:
// middle and last names routinely differ between documents. On success the
// full profile comes back so the caller can pre-fill later steps.
func (s *Service) VerifyPAN(ctx context.Context, pan, claimedName string) (Result, error) {
	ctx, span := tracer.Start(ctx, "verify.pan")
	defer span.End()

	record, err := s.customers.FindByPAN(ctx, pan)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			s.observe(ctx, audit.ActionPANVerified, "pan", pan, "not_found")
			return Result{Verified: false, Message: "PAN not found in our records."}, nil
		}
		return Result{}, err
	}

	if !firstTokenMatches(record.FullName, claimedName) {
		span.SetAttributes(attribute.String("outcome", "mismatch"))
		s.observe(ctx, audit.ActionPANVerified, "pan", pan, "name_mismatch")
		// The on-file name in the rejection is a known information leak,
		// kept as a conscious product trade-off.
		return Result{
			Verified: false,
			Field:    "name",
			Message:  fmt.Sprintf("Name mismatch. PAN record found for %s, but you entered %s.", record.FullName, claimedName),
		}, nil
	}

	span.SetAttributes(attribute.String("outcome", "verified"))
	s.observe(ctx, audit.ActionPANVerified, "pan", pan, "ok")
	return Result{
		Verified: true,
		Message:  "PAN verified successfully.",
		Profile: &Profile{
			Name:         record.FullName,
			DOB:          record.DOB,
			Email:        record.Email,
			Phone:        record.Phone,
			Address:      record.Address,
			FaceImageURL: record.ProfileImageURL,
		},
	}, nil
}

// VerifyBankDetails requires an exact account-number match and a
// case-insensitive IFSC match. Financial identifiers get no fuzzy logic.
// PAN verification is a soft precondition enforced by the caller.
func (s *Service) VerifyBankDetails(ctx context.Context, pan, accountNumber, ifscCode string) (Result, error) {
	ctx, span := tracer.Start(ctx, "verify.bank_details")
	defer span.End()

	record, err := s.customers.FindByPAN(ctx, pan)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			s.observe(ctx, audit.ActionBankVerified, "bank", pan, "not_found")
			return Result{Verified: false, Message: "PAN not found in records. Please verify PAN first."}, nil
		}
		return Result{}, err
	}

	if record.AccountNumber != accountNumber {
		s.observe(ctx, audit.ActionBankVerified, "bank", pan, "account_mismatch")
		return Result{
			Verified: false,
			Field:    "accountNumber",
			Message:  "Account Number does not match our records for this PAN.",
		}, nil
	}
	if !strings.EqualFold(record.IFSCCode, ifscCode) {
		s.observe(ctx, audit.ActionBankVerified, "bank", pan, "ifsc_mismatch")
		return Result{
			Verified: false,
			Field:    "ifscCode",
			Message:  "IFSC Code does not match our records for this PAN.",
		}, nil
	}

	s.observe(ctx, audit.ActionBankVerified, "bank", pan, "ok")
	return Result{Verified: true, Message: "Bank details verified."}, nil
}

// VerifyFinalDetails re-checks every form field against the record before
// submission and names the first offending field on mismatch.
func (s *Service) VerifyFinalDetails(ctx context.Context, in FinalDetailsInput) (Result, error) {
	ctx, span := tracer.Start(ctx, "verify.final_details")
	defer span.End()

	record, err := s.customers.FindByPAN(ctx, in.PAN)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			s.observe(ctx, audit.ActionFinalVerified, "final", in.PAN, "not_found")
			return Result{Verified: false, Field: "pan", Message: "PAN number not found in bank records. Please re-verify PAN."}, nil
		}
		return Result{}, err
	}

	mismatch := func(field, message string) (Result, error) {
		s.observe(ctx, audit.ActionFinalVerified, "final", in.PAN, field+"_mismatch")
		return Result{Verified: false, Field: field, Message: message}, nil
	}

	if record.Email != in.Email {
		return mismatch("email", fmt.Sprintf("Email (%s) does not match our records for this PAN.", in.Email))
	}
	if record.Phone != in.Phone {
		return mismatch("phone", fmt.Sprintf("Phone number (%s) does not match our records for this PAN.", in.Phone))
	}
	if record.DOB != in.DOB {
		return mismatch("dob", fmt.Sprintf("Date of Birth (%s) does not match our records (%s).", in.DOB, record.DOB))
	}
	if record.AccountNumber != in.AccountNumber {
		return mismatch("accountNumber", "Account Number does not match our records for this PAN.")
	}
	if !strings.EqualFold(record.IFSCCode, in.IFSCCode) {
		return mismatch("ifscCode", "IFSC Code does not match our records for this PAN.")
	}

	s.observe(ctx, audit.ActionFinalVerified, "final", in.PAN, "ok")
	return Result{Verified: true, Message: "All details verified successfully."}, nil
}

// ProfileImage returns the stored profile image reference for the external
// face-match collaborator.
func (s *Service) ProfileImage(ctx context.Context, pan string) (string, error) {
	record, err := s.customers.FindByPAN(ctx, pan)
	if err != nil {
		return "", err
	}
	return record.ProfileImageURL, nil
}

func (s *Service) observe(ctx context.Context, action audit.Action, check, subject, outcome string) {
	result := "failed"
	if outcome == "ok" {
		result = "ok"
	}
	if s.metrics != nil {
		s.metrics.Verifications.WithLabelValues(check, result).Inc()
	}
	if s.audit != nil {
		s.audit.Emit(ctx, action, subject, outcome)
	}
	if outcome != "ok" {
		s.logger.Info("verification rejected", "check", check, "subject", privacy.MaskPAN(subject), "outcome", outcome)
	}
}

// firstTokenMatches compares only the first whitespace-separated token of
// each name, trimmed and case-insensitive.
func firstTokenMatches(recordName, claimedName string) bool {
	recTokens := strings.Fields(strings.TrimSpace(recordName))
	claimTokens := strings.Fields(strings.TrimSpace(claimedName))
	if len(recTokens) == 0 || len(claimTokens) == 0 {
		return false
	}
	return strings.EqualFold(recTokens[0], claimTokens[0])
}
