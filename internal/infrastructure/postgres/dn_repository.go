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

var _ repository.DNRepository = (*DNRepo)(nil)

// DNRepo implementación de DNRepository sobre PostgreSQL. Sin Update ni
// Delete: la tabla solo crece.
type DNRepo struct {
	q Querier
}

// NewDNRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDNRepository(q Querier) *DNRepo {
	return &DNRepo{q: q}
}

// Create sella la nota de entrega de una línea (una por línea: grn_line_id es único).
func (r *DNRepo) Create(dn *entity.DN) error {
	query := `
		INSERT INTO dns (id, grn_line_id, created_at, remark, from_warehouse_inward)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		dn.ID, dn.GRNLineID, dn.CreatedAt, dn.Remark, dn.FromWarehouseInward,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert dn: %w", err)
	}
	return nil
}

// GetByLine obtiene el DN de una línea. Devuelve (nil, nil) si no está entregada.
func (r *DNRepo) GetByLine(lineID string) (*entity.DN, error) {
	query := `
		SELECT id, grn_line_id, created_at, remark, from_warehouse_inward
		FROM dns WHERE grn_line_id = $1`
	var dn entity.DN
	err := r.q.QueryRow(context.Background(), query, lineID).Scan(
		&dn.ID, &dn.GRNLineID, &dn.CreatedAt, &dn.Remark, &dn.FromWarehouseInward,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dn: %w", err)
	}
	return &dn, nil
}

// List historial de entregas, de la más reciente a la más antigua.
func (r *DNRepo) List(filter repository.DNFilter) ([]*entity.DN, error) {
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
		where = append(where, "gl.courier_name = "+arg(filter.Courier))
	}
	if filter.ParcelType != "" {
		where = append(where, "gl.parcel_type = "+arg(filter.ParcelType))
	}

	query := `
		SELECT d.id, d.grn_line_id, d.created_at, d.remark, d.from_warehouse_inward
		FROM dns d
		JOIN grn_lines gl ON gl.id = d.grn_line_id
		JOIN grns g ON g.id = gl.grn_id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY d.created_at DESC, d.id"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dns: %w", err)
	}
	defer rows.Close()

	var out []*entity.DN
	for rows.Next() {
		var dn entity.DN
		if err := rows.Scan(&dn.ID, &dn.GRNLineID, &dn.CreatedAt, &dn.Remark, &dn.FromWarehouseInward); err != nil {
			return nil, fmt.Errorf("scan dn: %w", err)
		}
		out = append(out, &dn)
	}
	return out, rows.Err()
}
