// Package privacy keeps raw PII out of logs and audit records. Identifiers
// are compared and correlated through a salted one-way hash; display paths
// get masked forms instead.
package privacy

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hasher produces log-safe digests of PII values. The salt is deployment
// scoped: the same value hashes identically within one deployment, so audit
// trails stay correlatable without storing the identifier itself.
type Hasher struct {
	salt string
}

func NewHasher(salt string) *Hasher {
	return &Hasher{salt: salt}
}

// HashPII returns the hex SHA-256 of the trimmed value plus salt. Empty input
// returns an empty string so optional fields stay optional downstream.
func (h *Hasher) HashPII(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(strings.TrimSpace(value) + h.salt))
	return hex.EncodeToString(sum[:])
}

// MaskPAN keeps the last four characters of a PAN for display.
func MaskPAN(pan string) string {
	if pan == "" {
		return "N/A"
	}
	if len(pan) <= 4 {
		return pan
	}
	return "******" + pan[len(pan)-4:]
}

// MaskAccount keeps the last four digits of an account number for display.
func MaskAccount(accountNumber string) string {
	if accountNumber == "" {
		return "N/A"
	}
	if len(accountNumber) <= 4 {
		return accountNumber
	}
	return "****" + accountNumber[len(accountNumber)-4:]
}
