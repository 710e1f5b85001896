package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta el SQLSTATE 23505 (unique_violation): lo disparan
// el email único de usuarios, el OTP uno-a-uno por GRN y el índice parcial de
// códigos OTP vigentes, que los repos traducen a domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// Fallback para errores envueltos fuera de la jerarquía de pgconn.
	return strings.Contains(err.Error(), "23505")
}
