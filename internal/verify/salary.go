package verify

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"smartfinance/internal/audit"
)

// Affordability thresholds. The band (200000, 300000] intentionally falls
// through to the absolute floor only; see the tier comments below.
const (
	largeLoanCutoff     = 300000.0
	largeLoanMinSalary  = 30000.0
	middleLoanLower     = 100000.0
	middleLoanUpper     = 200000.0
	middleLoanMinSalary = 15000.0
	minSalaryFloor      = 15000.0
)

// VerifySalarySlip cross-checks the OCR-extracted payslip fields against the
// on-file contact details and applies the affordability tiers in order.
//
// The phone check is hard: an extracted phone that differs from the record
// fails immediately. A missing extraction skips the check (OCR may be
// imperfect). The address check is soft: a mismatch is logged but never
// fatal. Preserve this asymmetry.
func (s *Service) VerifySalarySlip(ctx context.Context, in SalarySlipInput) (SalaryResult, error) {
	ctx, span := tracer.Start(ctx, "verify.salary_slip")
	defer span.End()

	if in.ExtractedPhone != "" && in.ExtractedPhone != in.DBPhone {
		s.observe(ctx, audit.ActionSalaryVerified, "salary", in.DBPhone, "phone_mismatch")
		return SalaryResult{
			Status: SalaryFailed,
			Message: fmt.Sprintf("Phone Number Mismatch: Your registered phone (%s) does not match the phone on the salary slip (%s).",
				in.DBPhone, in.ExtractedPhone),
		}, nil
	}
	if in.ExtractedPhone == "" {
		s.logger.Warn("could not extract phone from slip, skipping phone check")
	}

	if in.ExtractedAddress != "" && in.DBAddress != "" {
		dbNorm := normalizeAddress(in.DBAddress)
		extNorm := normalizeAddress(in.ExtractedAddress)
		if !strings.Contains(dbNorm, extNorm) && !strings.Contains(extNorm, dbNorm) {
			// Soft check: OCR noise and formatting differences are expected.
			s.logger.Warn("payslip address does not match records, continuing")
		}
	} else if in.ExtractedAddress == "" {
		s.logger.Warn("could not extract address from slip, skipping address check")
	}

	// Tier 1: large loans need a higher salary.
	if in.LoanAmount > largeLoanCutoff && in.ExtractedSalary < largeLoanMinSalary {
		s.observe(ctx, audit.ActionSalaryVerified, "salary", in.DBPhone, "salary_below_large_tier")
		return SalaryResult{
			Status: SalaryFailed,
			Message: fmt.Sprintf("Salary Insufficient: Your salary of %.0f does not meet the 30,000 requirement for a loan over 300,000.",
				in.ExtractedSalary),
		}, nil
	}

	// Tier 2: mid-band loans. Amounts in (200000, 300000] skip this tier and
	// are only checked against the absolute floor below.
	if in.LoanAmount > middleLoanLower && in.LoanAmount <= middleLoanUpper && in.ExtractedSalary < middleLoanMinSalary {
		s.observe(ctx, audit.ActionSalaryVerified, "salary", in.DBPhone, "salary_below_middle_tier")
		return SalaryResult{
			Status: SalaryFailed,
			Message: fmt.Sprintf("Salary Insufficient: Your salary of %.0f does not meet the 15,000 requirement for this loan amount.",
				in.ExtractedSalary),
		}, nil
	}

	// Tier 3: absolute floor.
	if in.ExtractedSalary < minSalaryFloor {
		s.observe(ctx, audit.ActionSalaryVerified, "salary", in.DBPhone, "salary_below_floor")
		return SalaryResult{
			Status: SalaryFailed,
			Message: fmt.Sprintf("Salary Insufficient: Your salary of %.0f is below the minimum requirement of %.0f.",
				in.ExtractedSalary, minSalaryFloor),
		}, nil
	}

	s.observe(ctx, audit.ActionSalaryVerified, "salary", in.DBPhone, "ok")
	return SalaryResult{
		Status:          SalaryVerified,
		Message:         "Salary Slip Verified.",
		VerifiedSalary:  in.ExtractedSalary,
		VerifiedPhone:   in.DBPhone,
		VerifiedAddress: in.DBAddress,
	}, nil
}

// normalizeAddress lower-cases and strips everything non-alphanumeric so
// containment survives OCR punctuation and spacing noise.
func normalizeAddress(addr string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(addr) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
