package application

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	dErrors "smartfinance/pkg/domain-errors"
)

// PostgresStore owns the loan_applications table.
//
//	CREATE TABLE loan_applications (
//	    application_id     TEXT PRIMARY KEY,
//	    pan_number         TEXT NOT NULL,
//	    application_status TEXT NOT NULL,
//	    submission_date    TIMESTAMPTZ NOT NULL,
//	    form_data          JSONB NOT NULL,
//	    loan_details       JSONB NOT NULL
//	);
//	CREATE INDEX loan_applications_pan_idx
//	    ON loan_applications (pan_number, submission_date DESC);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, app LoanApplication) error {
	form, err := json.Marshal(app.Form)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "form encode failed")
	}
	loan, err := json.Marshal(app.Loan)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "loan details encode failed")
	}
	query := `
		INSERT INTO loan_applications
			(application_id, pan_number, application_status, submission_date, form_data, loan_details)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query,
		app.ApplicationID, normalizePAN(app.PAN), app.Status, app.SubmissionDate, form, loan)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUpstream, "application write failed")
	}
	return nil
}

func (s *PostgresStore) LatestByPAN(ctx context.Context, pan string) (Status, error) {
	query := `
		SELECT application_id, application_status, submission_date
		FROM loan_applications
		WHERE pan_number = $1
		ORDER BY submission_date DESC
		LIMIT 1
	`
	var st Status
	err := s.db.QueryRowContext(ctx, query, normalizePAN(pan)).Scan(
		&st.ApplicationID, &st.Status, &st.SubmissionDate)
	if errors.Is(err, sql.ErrNoRows) {
		return Status{}, errNoApplications
	}
	if err != nil {
		return Status{}, dErrors.Wrap(err, dErrors.CodeUpstream, "status lookup failed")
	}
	return st, nil
}
