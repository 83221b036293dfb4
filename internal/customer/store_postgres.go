package customer

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	dErrors "smartfinance/pkg/domain-errors"
)

// PostgresStore reads the bank_accounts table. The table is owned by the
// account system; this service only ever selects from it.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByPAN(ctx context.Context, pan string) (Record, error) {
	query := `
		SELECT pan_number, full_name, to_char(dob, 'YYYY-MM-DD'), email,
		       phone_number, address, account_number, ifsc_code, profile_image_url
		FROM bank_accounts
		WHERE pan_number = $1
	`
	var r Record
	err := s.db.QueryRowContext(ctx, query, strings.ToUpper(strings.TrimSpace(pan))).Scan(
		&r.PAN, &r.FullName, &r.DOB, &r.Email,
		&r.Phone, &r.Address, &r.AccountNumber, &r.IFSCCode, &r.ProfileImageURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, dErrors.Wrap(err, dErrors.CodeUpstream, "customer lookup failed")
	}
	return r, nil
}
