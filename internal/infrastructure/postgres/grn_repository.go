package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
	"github.com/jhoicas/Paqueteria-api/internal/domain/repository"
)

var _ repository.GRNRepository = (*GRNRepo)(nil)

// GRNRepo implementación de GRNRepository sobre PostgreSQL.
type GRNRepo struct {
	q Querier
}

// NewGRNRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGRNRepository(q Querier) *GRNRepo {
	return &GRNRepo{q: q}
}

// Create persiste la cabecera de un GRN.
func (r *GRNRepo) Create(grn *entity.GRN) error {
	query := `
		INSERT INTO grns (id, receiver_id, delivery_location_id, created_by, place, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		grn.ID, grn.ReceiverID, grn.DeliveryLocationID, grn.CreatedBy, grn.Place, grn.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert grn: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un GRN. Devuelve (nil, nil) si no existe.
func (r *GRNRepo) GetByID(id string) (*entity.GRN, error) {
	query := `
		SELECT id, receiver_id, delivery_location_id, created_by, place, created_at
		FROM grns WHERE id = $1`
	var g entity.GRN
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.ReceiverID, &g.DeliveryLocationID, &g.CreatedBy, &g.Place, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grn: %w", err)
	}
	return &g, nil
}

// Delete borra la cabecera. Líneas, OTP y registros de bodega caen en cascada
// (ON DELETE CASCADE); los DN bloquean el borrado vía RESTRICT, pero el caso
// de uso lo rechaza antes de llegar aquí.
func (r *GRNRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM grns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete grn: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cabeceras según el filtro, de la más reciente a la más antigua.
func (r *GRNRepo) List(filter repository.GRNFilter) ([]*entity.GRN, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.LocationID != "" {
		where = append(where, "g.delivery_location_id = "+arg(filter.LocationID))
	}
	if filter.Courier != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM grn_lines gl WHERE gl.grn_id = g.id AND gl.courier_name = `+arg(filter.Courier)+`)`)
	}
	if filter.ParcelType != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM grn_lines gl WHERE gl.grn_id = g.id AND gl.parcel_type = `+arg(filter.ParcelType)+`)`)
	}
	switch filter.Status {
	case "delivered":
		// Entregado: tiene líneas y ninguna sin DN.
		where = append(where,
			`EXISTS (SELECT 1 FROM grn_lines gl WHERE gl.grn_id = g.id)`,
			`NOT EXISTS (
				SELECT 1 FROM grn_lines gl
				LEFT JOIN dns d ON d.grn_line_id = gl.id
				WHERE gl.grn_id = g.id AND d.id IS NULL)`)
	case "pending":
		where = append(where, `EXISTS (
			SELECT 1 FROM grn_lines gl
			LEFT JOIN dns d ON d.grn_line_id = gl.id
			WHERE gl.grn_id = g.id AND d.id IS NULL)`)
	}

	query := `
		SELECT g.id, g.receiver_id, g.delivery_location_id, g.created_by, g.place, g.created_at
		FROM grns g`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY g.created_at DESC, g.id"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list grns: %w", err)
	}
	defer rows.Close()

	var out []*entity.GRN
	for rows.Next() {
		var g entity.GRN
		if err := rows.Scan(&g.ID, &g.ReceiverID, &g.DeliveryLocationID, &g.CreatedBy, &g.Place, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan grn: %w", err)
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}

// Totals calcula los contadores derivados de un GRN en una sola consulta.
func (r *GRNRepo) Totals(grnID string) (entity.GRNTotals, error) {
	query := `
		SELECT count(gl.id),
		       count(d.id),
		       count(wi.id)
		FROM grn_lines gl
		LEFT JOIN dns d ON d.grn_line_id = gl.id
		LEFT JOIN warehouse_inwards wi ON wi.grn_line_id = gl.id
		WHERE gl.grn_id = $1`
	var t entity.GRNTotals
	err := r.q.QueryRow(context.Background(), query, grnID).Scan(
		&t.TotalLines, &t.DeliveredLines, &t.InwardedLines,
	)
	if err != nil {
		return entity.GRNTotals{}, fmt.Errorf("grn totals: %w", err)
	}
	return t, nil
}
