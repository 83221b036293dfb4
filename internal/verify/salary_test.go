package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slipInput() SalarySlipInput {
	return SalarySlipInput{
		DBPhone:          "9876543210",
		DBAddress:        "221B MG Road, Bengaluru, Karnataka 560001",
		LoanAmount:       150000,
		ExtractedSalary:  40000,
		ExtractedPhone:   "9876543210",
		ExtractedAddress: "221B MG ROAD BENGALURU KARNATAKA 560001",
	}
}

func TestVerifySalarySlipPhoneCheck(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("extracted phone mismatch is a hard failure", func(t *testing.T) {
		in := slipInput()
		in.ExtractedPhone = "1111111111"
		res, err := svc.VerifySalarySlip(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, SalaryFailed, res.Status)
		assert.Contains(t, res.Message, "Phone Number Mismatch")
	})

	t.Run("missing extracted phone skips the check", func(t *testing.T) {
		in := slipInput()
		in.ExtractedPhone = ""
		res, err := svc.VerifySalarySlip(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, SalaryVerified, res.Status)
	})
}

func TestVerifySalarySlipAddressIsSoft(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("wildly different address still verifies", func(t *testing.T) {
		in := slipInput()
		in.ExtractedAddress = "totally different place, another city"
		res, err := svc.VerifySalarySlip(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, SalaryVerified, res.Status, "address is a soft check only")
	})

	t.Run("containment survives punctuation noise", func(t *testing.T) {
		in := slipInput()
		in.ExtractedAddress = "221-B, M.G. Road / Bengaluru; Karnataka 560001"
		res, err := svc.VerifySalarySlip(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, SalaryVerified, res.Status)
	})
}

func TestVerifySalarySlipAffordabilityTiers(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	run := func(loanAmount, salary float64) SalaryResult {
		in := slipInput()
		in.LoanAmount = loanAmount
		in.ExtractedSalary = salary
		res, err := svc.VerifySalarySlip(ctx, in)
		require.NoError(t, err)
		return res
	}

	t.Run("tier 1: over 300000 needs 30000", func(t *testing.T) {
		assert.Equal(t, SalaryFailed, run(400000, 25000).Status)
		assert.Equal(t, SalaryVerified, run(400000, 30000).Status)
	})

	t.Run("tier 2: (100000, 200000] needs 15000", func(t *testing.T) {
		assert.Equal(t, SalaryFailed, run(150000, 12000).Status)
		assert.Equal(t, SalaryVerified, run(150000, 15000).Status)
	})

	t.Run("gap band (200000, 300000] only hits the floor", func(t *testing.T) {
		// 250000 at 16000 passes: tier 1 and tier 2 both skip this band and
		// 16000 clears the absolute floor. This band behavior is pinned
		// deliberately.
		res := run(250000, 16000)
		assert.Equal(t, SalaryVerified, res.Status)
		assert.Equal(t, 16000.0, res.VerifiedSalary)
	})

	t.Run("tier 3: absolute floor applies everywhere", func(t *testing.T) {
		assert.Equal(t, SalaryFailed, run(50000, 14999).Status)
		assert.Equal(t, SalaryVerified, run(50000, 15000).Status)
	})

	t.Run("verified result echoes on-file contact details", func(t *testing.T) {
		res := run(150000, 40000)
		assert.Equal(t, "9876543210", res.VerifiedPhone)
		assert.Contains(t, res.VerifiedAddress, "MG Road")
	})
}
