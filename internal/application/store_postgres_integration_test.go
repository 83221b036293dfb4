//go:build integration

package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartfinance/internal/application"
	dErrors "smartfinance/pkg/domain-errors"
	"smartfinance/pkg/testutil/containers"
)

const applicationsSchema = `
CREATE TABLE loan_applications (
    application_id     TEXT PRIMARY KEY,
    pan_number         TEXT NOT NULL,
    application_status TEXT NOT NULL,
    submission_date    TIMESTAMPTZ NOT NULL,
    form_data          JSONB NOT NULL,
    loan_details       JSONB NOT NULL
);
CREATE INDEX loan_applications_pan_idx
    ON loan_applications (pan_number, submission_date DESC);
`

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := containers.NewPostgresDB(t, applicationsSchema)
	store := application.NewPostgresStore(db)
	ctx := context.Background()

	app := func(id, pan string, at time.Time) application.LoanApplication {
		return application.LoanApplication{
			ApplicationID:  id,
			PAN:            pan,
			Status:         application.StatusSubmitted,
			SubmissionDate: at,
			Form: application.FormData{
				Personal: application.PersonalDetails{Name: "Rahul Sharma"},
				Bank:     application.BankDetails{PANCard: pan},
			},
			Loan: application.LoanDetails{Amount: 120000, Rate: 12.5, Tenure: 36},
		}
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("append then latest round trips", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, app("APP-pg-1", "ABCDE1234F", base)))

		st, err := store.LatestByPAN(ctx, "ABCDE1234F")
		require.NoError(t, err)
		assert.Equal(t, "APP-pg-1", st.ApplicationID)
		assert.Equal(t, application.StatusSubmitted, st.Status)
		assert.True(t, st.SubmissionDate.Equal(base))
	})

	t.Run("latest wins over earlier submissions", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, app("APP-pg-2", "ABCDE1234F", base.Add(time.Hour))))
		require.NoError(t, store.Append(ctx, app("APP-pg-3", "ABCDE1234F", base.Add(30*time.Minute))))

		st, err := store.LatestByPAN(ctx, "ABCDE1234F")
		require.NoError(t, err)
		assert.Equal(t, "APP-pg-2", st.ApplicationID)
	})

	t.Run("pan lookup is case insensitive", func(t *testing.T) {
		st, err := store.LatestByPAN(ctx, " abcde1234f ")
		require.NoError(t, err)
		assert.Equal(t, "APP-pg-2", st.ApplicationID)
	})

	t.Run("unknown pan is not found", func(t *testing.T) {
		_, err := store.LatestByPAN(ctx, "ZZZZZ9999Z")
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})
}
