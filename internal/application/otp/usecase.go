package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Paqueteria-api/internal/application/dto"
	"github.com/jhoicas/Paqueteria-api/internal/application/notify"
	"github.com/jhoicas/Paqueteria-api/internal/application/ports"
	"github.com/jhoicas/Paqueteria-api/internal/application/scope"
	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
	"github.com/jhoicas/Paqueteria-api/internal/domain/repository"
	"github.com/jhoicas/Paqueteria-api/pkg/logger"
)

// UseCase emisión, reenvío y canje de OTPs a nivel de GRN.
// El canje entrega TODAS las líneas pendientes del GRN de una vez: el canje
// parcial no existe por diseño.
type UseCase struct {
	tx           ports.TxRunner
	userRepo     repository.UserRepository
	locationRepo repository.LocationRepository
	notifier     ports.Notifier
	log          *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx ports.TxRunner,
	userRepo repository.UserRepository,
	locationRepo repository.LocationRepository,
	notifier ports.Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{tx: tx, userRepo: userRepo, locationRepo: locationRepo, notifier: notifier, log: log}
}

func validCode(code string) bool {
	if len(code) != entity.OTPDigits {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Redeem canjea un OTP: busca la única fila con code+valid, verifica permiso
// de ubicación y expiración, y sella un DN en cada línea del GRN que aún no
// lo tenga, invalidando el OTP. Todo en una transacción.
func (uc *UseCase) Redeem(ctx context.Context, actor *entity.User, requestedLocationID string, in dto.VerifyOTPRequest) (*dto.RedeemResponse, error) {
	if !validCode(in.Code) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()

	var resp *dto.RedeemResponse
	err := uc.tx.Run(ctx, func(
		grnRepo repository.GRNRepository,
		lineRepo repository.LineRepository,
		otpRepo repository.OTPRepository,
		dnRepo repository.DNRepository,
		_ repository.WarehouseInwardRepository,
	) error {
		row, err := otpRepo.GetValidByCode(in.Code)
		if err != nil {
			return err
		}
		if row == nil {
			// Código incorrecto o ya usado: no se distingue hacia el usuario.
			return domain.ErrNotFound
		}
		grn, err := grnRepo.GetByID(row.GRNID)
		if err != nil {
			return err
		}
		if grn == nil {
			return domain.ErrNotFound
		}
		if err := scope.Authorize(actor, requestedLocationID, grn.DeliveryLocationID); err != nil {
			return err
		}
		if row.IsExpired(now) {
			return domain.ErrOTPExpired
		}

		lines, err := lineRepo.ListByGRN(grn.ID)
		if err != nil {
			return err
		}
		delivered := make([]dto.LineResponse, 0, len(lines))
		for _, line := range lines {
			dn, err := dnRepo.GetByLine(line.ID)
			if err != nil {
				return err
			}
			if dn != nil {
				continue
			}
			if err := dnRepo.Create(&entity.DN{
				ID:        uuid.New().String(),
				GRNLineID: line.ID,
				CreatedAt: now,
				Remark:    fmt.Sprintf("Verificado por %s", actor.Name),
			}); err != nil {
				return err
			}
			delivered = append(delivered, dto.NewLineResponse(line, true, nil))
		}
		if len(delivered) == 0 {
			return domain.ErrAlreadyDelivered
		}

		row.Valid = false
		if err := otpRepo.Update(row); err != nil {
			return err
		}
		resp = &dto.RedeemResponse{GRNID: grn.ID, DeliveredLines: delivered}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Resend regenera el OTP de un GRN (misma fila, código nuevo, ventana nueva)
// y lo reenvía al receptor. Igual que en la creación, el correo es la razón
// de ser de la operación: si el envío falla, la regeneración se revierte y el
// código anterior sigue vigente.
func (uc *UseCase) Resend(ctx context.Context, actor *entity.User, requestedLocationID, grnID string) (*dto.ResendResponse, error) {
	now := time.Now()

	var resp *dto.ResendResponse
	err := uc.tx.Run(ctx, func(
		grnRepo repository.GRNRepository,
		lineRepo repository.LineRepository,
		otpRepo repository.OTPRepository,
		_ repository.DNRepository,
		_ repository.WarehouseInwardRepository,
	) error {
		grn, err := grnRepo.GetByID(grnID)
		if err != nil {
			return err
		}
		if grn == nil {
			return domain.ErrNotFound
		}
		if err := scope.Authorize(actor, requestedLocationID, grn.DeliveryLocationID); err != nil {
			return err
		}
		loc, err := uc.locationRepo.GetByID(grn.DeliveryLocationID)
		if err != nil {
			return err
		}
		if loc != nil && loc.IsWarehouse {
			// Los GRN de bodega no manejan OTP: el código se emite al trasladar.
			return domain.ErrConflict
		}
		totals, err := grnRepo.Totals(grnID)
		if err != nil {
			return err
		}
		if totals.IsDelivered() {
			return domain.ErrAlreadyDelivered
		}

		row, err := GetOrRegenerate(otpRepo, grnID, now)
		if err != nil {
			return err
		}
		receiver, err := uc.userRepo.GetByID(grn.ReceiverID)
		if err != nil {
			return err
		}
		if receiver == nil {
			return domain.ErrUserNotFound
		}
		body := notify.OTPResendBody(receiver.Name, grn.ID, row.Code)
		if err := uc.notifier.Send(ctx, receiver.Email, notify.OTPResendSubject(grn.ID), body); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrNotification, err)
		}
		resp = &dto.ResendResponse{GRNID: grn.ID, SentTo: receiver.Email}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
