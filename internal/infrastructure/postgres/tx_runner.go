package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Paqueteria-api/internal/application/ports"
	"github.com/jhoicas/Paqueteria-api/internal/domain/repository"
)

// Ensure TxRunner implements ports.TxRunner.
var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	grnRepo repository.GRNRepository,
	lineRepo repository.LineRepository,
	otpRepo repository.OTPRepository,
	dnRepo repository.DNRepository,
	inwardRepo repository.WarehouseInwardRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	grnRepo := NewGRNRepository(tx)
	lineRepo := NewLineRepository(tx)
	otpRepo := NewOTPRepository(tx)
	dnRepo := NewDNRepository(tx)
	inwardRepo := NewWarehouseInwardRepository(tx)

	if err := fn(grnRepo, lineRepo, otpRepo, dnRepo, inwardRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
