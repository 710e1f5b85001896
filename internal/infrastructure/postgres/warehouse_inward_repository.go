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

var _ repository.WarehouseInwardRepository = (*WarehouseInwardRepo)(nil)

// WarehouseInwardRepo implementación de WarehouseInwardRepository sobre
// PostgreSQL. La etapa no se persiste: se deriva de floor y
// delivered_to_receiver, igual que en el dominio.
type WarehouseInwardRepo struct {
	q Querier
}

// NewWarehouseInwardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseInwardRepository(q Querier) *WarehouseInwardRepo {
	return &WarehouseInwardRepo{q: q}
}

const inwardColumns = `id, grn_line_id, inwarded_by, inwarded_at, inward_remark,
	floor, rack, COALESCE(assigned_to_floor_by, ''), assigned_to_floor_at, floor_remark,
	delivered_to_receiver, COALESCE(delivered_by, ''), delivered_at, delivery_remark`

// Create persiste el registro de bodega de una línea (uno a uno: grn_line_id es único).
func (r *WarehouseInwardRepo) Create(w *entity.WarehouseInward) error {
	query := `
		INSERT INTO warehouse_inwards (id, grn_line_id, inwarded_by, inwarded_at, inward_remark)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, w.ID, w.GRNLineID, w.InwardedBy, w.InwardedAt, w.InwardRemark)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse inward: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de bodega por ID. Devuelve (nil, nil) si no existe.
func (r *WarehouseInwardRepo) GetByID(id string) (*entity.WarehouseInward, error) {
	return r.findOne(`WHERE id = $1`, id)
}

// GetByLine obtiene el registro de una línea. Devuelve (nil, nil) si no fue ingresada.
func (r *WarehouseInwardRepo) GetByLine(lineID string) (*entity.WarehouseInward, error) {
	return r.findOne(`WHERE grn_line_id = $1`, lineID)
}

// Update sobreescribe los campos mutables (etapas 2 y 3 mutan en el lugar).
func (r *WarehouseInwardRepo) Update(w *entity.WarehouseInward) error {
	query := `
		UPDATE warehouse_inwards SET
			floor = $2, rack = $3,
			assigned_to_floor_by = NULLIF($4, ''), assigned_to_floor_at = $5, floor_remark = $6,
			delivered_to_receiver = $7, delivered_by = NULLIF($8, ''), delivered_at = $9, delivery_remark = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		w.ID, w.Floor, w.Rack,
		w.AssignedToFloorBy, w.AssignedToFloorAt, w.FloorRemark,
		w.DeliveredToReceiver, w.DeliveredBy, w.DeliveredAt, w.DeliveryRemark,
	)
	if err != nil {
		return fmt.Errorf("update warehouse inward: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStage lista registros en la etapa indicada, filtrando por la
// ubicación de entrega del GRN actual de la línea ("" = todas).
func (r *WarehouseInwardRepo) ListByStage(locationID string, stage entity.Stage, limit, offset int) ([]*entity.WarehouseInward, error) {
	var cond string
	switch stage {
	case entity.StageReceived:
		cond = `wi.floor = '' AND NOT wi.delivered_to_receiver`
	case entity.StageOnFloor:
		cond = `wi.floor <> '' AND NOT wi.delivered_to_receiver`
	case entity.StageDelivered:
		cond = `wi.delivered_to_receiver`
	default:
		return nil, domain.ErrInvalidInput
	}

	query := `
		SELECT wi.id, wi.grn_line_id, wi.inwarded_by, wi.inwarded_at, wi.inward_remark,
		       wi.floor, wi.rack, COALESCE(wi.assigned_to_floor_by, ''), wi.assigned_to_floor_at, wi.floor_remark,
		       wi.delivered_to_receiver, COALESCE(wi.delivered_by, ''), wi.delivered_at, wi.delivery_remark
		FROM warehouse_inwards wi
		JOIN grn_lines gl ON gl.id = wi.grn_line_id
		JOIN grns g ON g.id = gl.grn_id
		WHERE ` + cond
	args := []any{}
	if locationID != "" {
		args = append(args, locationID)
		query += ` AND g.delivery_location_id = $1`
	}
	query += ` ORDER BY wi.inwarded_at, wi.id`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouse inwards: %w", err)
	}
	defer rows.Close()

	var out []*entity.WarehouseInward
	for rows.Next() {
		w, err := scanInward(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WarehouseInwardRepo) findOne(where string, arg any) (*entity.WarehouseInward, error) {
	query := `SELECT ` + inwardColumns + ` FROM warehouse_inwards ` + where
	w, err := scanInward(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInward(row rowScanner) (*entity.WarehouseInward, error) {
	var w entity.WarehouseInward
	err := row.Scan(
		&w.ID, &w.GRNLineID, &w.InwardedBy, &w.InwardedAt, &w.InwardRemark,
		&w.Floor, &w.Rack, &w.AssignedToFloorBy, &w.AssignedToFloorAt, &w.FloorRemark,
		&w.DeliveredToReceiver, &w.DeliveredBy, &w.DeliveredAt, &w.DeliveryRemark,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan warehouse inward: %w", err)
	}
	return &w, nil
}
