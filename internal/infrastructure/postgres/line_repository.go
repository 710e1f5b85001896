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

var _ repository.LineRepository = (*LineRepo)(nil)

// LineRepo implementación de LineRepository sobre PostgreSQL. Reassign y
// Renumber dependen del constraint UNIQUE (grn_id, line_number) DEFERRABLE
// INITIALLY DEFERRED: dentro de una tx los números pueden chocar
// transitoriamente y solo se validan en el commit.
type LineRepo struct {
	q Querier
}

// NewLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLineRepository(q Querier) *LineRepo {
	return &LineRepo{q: q}
}

const lineColumns = `id, grn_id, line_number, sender_name, phone, sender_location,
	courier_name, courier_id, parcel_type, remark, created_at`

// Create persiste una línea.
func (r *LineRepo) Create(line *entity.GRNLine) error {
	query := `
		INSERT INTO grn_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.GRNID, line.LineNumber, line.SenderName, line.Phone, line.SenderLocation,
		line.CourierName, line.CourierID, line.ParcelType, line.Remark, line.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert grn line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID. Devuelve (nil, nil) si no existe.
func (r *LineRepo) GetByID(id string) (*entity.GRNLine, error) {
	query := `SELECT ` + lineColumns + ` FROM grn_lines WHERE id = $1`
	var l entity.GRNLine
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.GRNID, &l.LineNumber, &l.SenderName, &l.Phone, &l.SenderLocation,
		&l.CourierName, &l.CourierID, &l.ParcelType, &l.Remark, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grn line: %w", err)
	}
	return &l, nil
}

// ListByGRN devuelve las líneas de un GRN ordenadas por número de línea.
func (r *LineRepo) ListByGRN(grnID string) ([]*entity.GRNLine, error) {
	query := `SELECT ` + lineColumns + ` FROM grn_lines WHERE grn_id = $1 ORDER BY line_number, created_at`
	rows, err := r.q.Query(context.Background(), query, grnID)
	if err != nil {
		return nil, fmt.Errorf("list grn lines: %w", err)
	}
	defer rows.Close()

	var out []*entity.GRNLine
	for rows.Next() {
		var l entity.GRNLine
		if err := rows.Scan(
			&l.ID, &l.GRNID, &l.LineNumber, &l.SenderName, &l.Phone, &l.SenderLocation,
			&l.CourierName, &l.CourierID, &l.ParcelType, &l.Remark, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan grn line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// Reassign mueve la línea al GRN destino con el número de línea indicado.
func (r *LineRepo) Reassign(lineID, destGRNID string, lineNumber int) error {
	query := `UPDATE grn_lines SET grn_id = $2, line_number = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, lineID, destGRNID, lineNumber)
	if err != nil {
		return fmt.Errorf("reassign grn line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Renumber compacta line_number a 1..N preservando el orden relativo actual.
func (r *LineRepo) Renumber(grnID string) error {
	query := `
		UPDATE grn_lines gl
		SET line_number = t.rn
		FROM (
			SELECT id, row_number() OVER (ORDER BY line_number, created_at) AS rn
			FROM grn_lines WHERE grn_id = $1
		) t
		WHERE gl.id = t.id AND gl.line_number <> t.rn`
	if _, err := r.q.Exec(context.Background(), query, grnID); err != nil {
		return fmt.Errorf("renumber grn lines: %w", err)
	}
	return nil
}
