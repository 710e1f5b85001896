package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
	"github.com/jhoicas/Paqueteria-api/internal/domain/repository"
)

var _ repository.OTPRepository = (*OTPRepo)(nil)

// OTPRepo implementación de OTPRepository sobre PostgreSQL. La unicidad de
// códigos vigentes la da el índice único parcial sobre (code) WHERE valid;
// la colisión se traduce a domain.ErrDuplicate para que el emisor reintente.
type OTPRepo struct {
	q Querier
}

// NewOTPRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOTPRepository(q Querier) *OTPRepo {
	return &OTPRepo{q: q}
}

// Create persiste el OTP de un GRN (uno a uno: grn_id es único).
func (r *OTPRepo) Create(otp *entity.OTP) error {
	query := `
		INSERT INTO otps (id, code, grn_id, created_at, valid)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, otp.ID, otp.Code, otp.GRNID, otp.CreatedAt, otp.Valid)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert otp: %w", err)
	}
	return nil
}

// GetByGRN obtiene el OTP de un GRN. Devuelve (nil, nil) si no existe.
func (r *OTPRepo) GetByGRN(grnID string) (*entity.OTP, error) {
	return r.findOne(`WHERE grn_id = $1`, grnID)
}

// GetValidByCode busca la única fila con code=code y valid=true.
// Devuelve (nil, nil) si no existe.
func (r *OTPRepo) GetValidByCode(code string) (*entity.OTP, error) {
	return r.findOne(`WHERE code = $1 AND valid`, code)
}

// Update sobreescribe la fila (regeneración en el lugar o invalidación).
func (r *OTPRepo) Update(otp *entity.OTP) error {
	query := `UPDATE otps SET code = $2, created_at = $3, valid = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, otp.ID, otp.Code, otp.CreatedAt, otp.Valid)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update otp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OTPRepo) findOne(where string, arg any) (*entity.OTP, error) {
	query := `SELECT id, code, grn_id, created_at, valid FROM otps ` + where
	var o entity.OTP
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&o.ID, &o.Code, &o.GRNID, &o.CreatedAt, &o.Valid,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get otp: %w", err)
	}
	return &o, nil
}
