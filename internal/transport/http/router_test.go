package httptransport_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartfinance/internal/application"
	"smartfinance/internal/customer"
	"smartfinance/internal/mail"
	"smartfinance/internal/offer"
	"smartfinance/internal/otp"
	httptransport "smartfinance/internal/transport/http"
	"smartfinance/internal/verify"
	"smartfinance/pkg/testutil"
)

const sandboxCode = "654321"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	otpSvc := otp.NewService(otp.NewInMemoryStore(), mail.NewLogMailer(logger), logger, nil, nil,
		otp.WithSandboxCode(sandboxCode))
	verifySvc := verify.NewService(customer.SeededStore(), logger, nil, nil)
	offerSvc := offer.NewService(offer.NewInMemoryStore(), logger, nil, nil)
	appSvc := application.NewService(offerSvc, application.NewInMemoryStore(), logger, nil, nil)

	return httptransport.NewRouter(httptransport.Deps{
		Logger:       logger,
		OTP:          otpSvc,
		Verify:       verifySvc,
		Offers:       offerSvc,
		Applications: appSvc,
	})
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestOTPEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("send email otp requires a valid address", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/send-email-otp",
			map[string]string{"email": "not-an-email@"}))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("send email otp never echoes the code", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/send-email-otp",
			map[string]string{"email": "rahul.sharma@example.com"}))
		testutil.AssertStatus(t, rr, http.StatusOK)

		env := testutil.UnmarshalEnvelope(t, rr)
		assert.True(t, env.Success)
		assert.NotRegexp(t, `\d{6}`, rr.Body.String())
	})

	t.Run("phone otp round trip", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/send-bank-otp",
			map[string]string{"phone": "9876543210"}))
		testutil.AssertStatus(t, rr, http.StatusOK)

		rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/verify-bank-otp",
			map[string]string{"phone": "9876543210", "otp": sandboxCode}))
		testutil.AssertStatus(t, rr, http.StatusOK)
		env := testutil.UnmarshalEnvelope(t, rr)
		assert.True(t, env.Success)

		// The code was consumed by the first verification.
		rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/verify-bank-otp",
			map[string]string{"phone": "9876543210", "otp": sandboxCode}))
		testutil.AssertStatus(t, rr, http.StatusOK)
		env = testutil.UnmarshalEnvelope(t, rr)
		assert.False(t, env.Success)
		assert.Equal(t, "Invalid or expired OTP.", env.Message)
	})

	t.Run("missing fields are a 400", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/verify-email-otp",
			map[string]string{"email": "rahul.sharma@example.com"}))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}

func TestVerifyEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("verify pan returns the profile", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/verify-pan",
			map[string]string{"pan": "abcde1234f", "name": "rahul"}))
		testutil.AssertStatus(t, rr, http.StatusOK)

		env := testutil.UnmarshalEnvelope(t, rr)
		require.True(t, env.Success)
		data, ok := env.Extra["verifiedData"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Rahul Sharma", data["name"])
	})

	t.Run("unknown pan is still a 200 with a failed result", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/verify-pan",
			map[string]string{"pan": "ZZZZZ9999Z", "name": "Nobody"}))
		testutil.AssertStatus(t, rr, http.StatusOK)
		env := testutil.UnmarshalEnvelope(t, rr)
		assert.False(t, env.Success)
	})

	t.Run("verify bank details", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/verify-bank-details",
			map[string]string{"pan": "ABCDE1234F", "accountNumber": "104592837465", "ifscCode": "hdfc0001234"}))
		testutil.AssertStatus(t, rr, http.StatusOK)
		env := testutil.UnmarshalEnvelope(t, rr)
		assert.True(t, env.Success)
	})

	t.Run("verify salary accepts display numbers", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/verify-salary",
			map[string]string{
				"dbPhone":          "9876543210",
				"dbAddress":        "221B MG Road, Bengaluru, Karnataka 560001",
				"loanAmount":       "1,20,000",
				"extractedSalary":  "45,000",
				"extractedPhone":   "9876543210",
				"extractedAddress": "221B MG Road Bengaluru Karnataka 560001",
			}))
		testutil.AssertStatus(t, rr, http.StatusOK)

		res := testutil.UnmarshalResponse[verify.SalaryResult](t, rr)
		assert.Equal(t, verify.SalaryVerified, res.Status)
		assert.Equal(t, 45000.0, res.VerifiedSalary)
	})

	t.Run("verify salary missing fields", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/verify-salary",
			map[string]string{"dbPhone": "9876543210"}))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		res := testutil.UnmarshalResponse[verify.SalaryResult](t, rr)
		assert.Equal(t, verify.SalaryFailed, res.Status)
	})

	t.Run("verify final details flags the failing field", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/verify-final-details",
			map[string]string{
				"pan":           "ABCDE1234F",
				"email":         "wrong@example.com",
				"phone":         "9876543210",
				"dob":           "1991-04-12",
				"accountNumber": "104592837465",
				"ifscCode":      "HDFC0001234",
			}))
		testutil.AssertStatus(t, rr, http.StatusOK)
		env := testutil.UnmarshalEnvelope(t, rr)
		assert.False(t, env.Success)
		assert.Equal(t, "email", env.Extra["field"])
	})

	t.Run("profile image", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/profile-image/ABCDE1234F", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		env := testutil.UnmarshalEnvelope(t, rr)
		assert.True(t, env.Success)
		assert.Equal(t, "/profiles/abcde1234f.jpg", env.Extra["imageUrl"])
	})
}

func decideOffer(t *testing.T, router http.Handler) string {
	t.Helper()
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/decide-offer",
		map[string]any{
			"pan":             "ABCDE1234F",
			"phone":           "9876543210",
			"creditScore":     720,
			"requestedAmount": 120000,
			"salary":          40000,
			"isExisting":      true,
		}))
	testutil.AssertStatus(t, rr, http.StatusOK)

	env := testutil.UnmarshalEnvelope(t, rr)
	key, ok := env.Extra["offerKey"].(string)
	require.True(t, ok, "an approved decision must carry an offer key")
	return key
}

func TestOfferEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("decide offer approves and mints a key", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/decide-offer",
			map[string]any{"creditScore": 720, "requestedAmount": 120000, "salary": 40000}))
		testutil.AssertStatus(t, rr, http.StatusOK)

		env := testutil.UnmarshalEnvelope(t, rr)
		assert.Equal(t, "APPROVED", env.Extra["status"])
		assert.Equal(t, 12.5, env.Extra["interest"])
		assert.Len(t, env.Extra["offerKey"], 36)
	})

	t.Run("rejected decision has no key", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/decide-offer",
			map[string]any{"creditScore": 650, "requestedAmount": 200000}))
		testutil.AssertStatus(t, rr, http.StatusOK)

		env := testutil.UnmarshalEnvelope(t, rr)
		assert.Equal(t, "REJECTED", env.Extra["status"])
		assert.NotContains(t, env.Extra, "offerKey")
	})

	t.Run("malformed token is rejected before lookup", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/offers/short", nil))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("unknown token is a 404", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet,
			"/api/offers/123e4567-e89b-42d3-a456-426614174000", nil))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})

	t.Run("minted key reads back the offer", func(t *testing.T) {
		key := decideOffer(t, router)
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/offers/"+key, nil))
		testutil.AssertStatus(t, rr, http.StatusOK)

		body := testutil.UnmarshalResponse[map[string]any](t, rr)
		assert.Equal(t, 120000.0, (*body)["loanAmount"])
		assert.Equal(t, true, (*body)["isExisting"])
		assert.Equal(t, "ABCDE1234F", (*body)["pan"])
	})
}

func TestApplicationEndpoints(t *testing.T) {
	router := newTestRouter(t)

	form := map[string]any{
		"personal": map[string]any{
			"name": "Rahul Sharma", "email": "rahul.sharma@example.com",
			"dob": "1991-04-12", "phone": "9876543210",
		},
		"bank": map[string]any{
			"accountNumber": "104592837465", "ifscCode": "HDFC0001234", "panCard": "ABCDE1234F",
		},
		"guarantor": map[string]any{"name": "Priya Nair", "phone": "9123456780", "relationship": "Spouse"},
	}
	loan := map[string]any{"amount": 120000, "rate": 12.5, "tenure": 36}

	t.Run("missing fields are a 400", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/submit-application",
			map[string]any{"formData": form}))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("submit returns 201 with an application id", func(t *testing.T) {
		key := decideOffer(t, router)
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/submit-application",
			map[string]any{"offerKey": key, "formData": form, "loanDetails": loan}))
		testutil.AssertStatus(t, rr, http.StatusCreated)

		env := testutil.UnmarshalEnvelope(t, rr)
		assert.True(t, env.Success)
		id, ok := env.Extra["applicationId"].(string)
		require.True(t, ok)
		assert.Contains(t, id, "APP-")

		// The same key cannot submit twice.
		rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/submit-application",
			map[string]any{"offerKey": key, "formData": form, "loanDetails": loan}))
		testutil.AssertStatus(t, rr, http.StatusConflict)

		// And the status read path sees the submission.
		rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/status/ABCDE1234F", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		status := testutil.UnmarshalResponse[map[string]any](t, rr)
		assert.Equal(t, id, (*status)["application_id"])
		assert.Equal(t, "SUBMITTED", (*status)["application_status"])
	})

	t.Run("status for an unknown pan is a 404", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/status/ZZZZZ9999Z", nil))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}
