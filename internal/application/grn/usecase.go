package grn

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Paqueteria-api/internal/application/dto"
	"github.com/jhoicas/Paqueteria-api/internal/application/notify"
	"github.com/jhoicas/Paqueteria-api/internal/application/otp"
	"github.com/jhoicas/Paqueteria-api/internal/application/ports"
	"github.com/jhoicas/Paqueteria-api/internal/application/scope"
	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
	"github.com/jhoicas/Paqueteria-api/internal/domain/repository"
	"github.com/jhoicas/Paqueteria-api/pkg/logger"
)

// UseCase ciclo de vida del contenedor GRN: creación atómica con sus líneas,
// borrado y consultas derivadas con alcance de ubicación explícito.
type UseCase struct {
	tx           ports.TxRunner
	userRepo     repository.UserRepository
	locationRepo repository.LocationRepository
	grnRepo      repository.GRNRepository
	lineRepo     repository.LineRepository
	dnRepo       repository.DNRepository
	inwardRepo   repository.WarehouseInwardRepository
	notifier     ports.Notifier
	log          *logger.Logger
}

// NewUseCase construye el caso de uso. Los repositorios sueltos (atados al
// pool) sirven las lecturas; las escrituras pasan por el TxRunner.
func NewUseCase(
	tx ports.TxRunner,
	userRepo repository.UserRepository,
	locationRepo repository.LocationRepository,
	grnRepo repository.GRNRepository,
	lineRepo repository.LineRepository,
	dnRepo repository.DNRepository,
	inwardRepo repository.WarehouseInwardRepository,
	notifier ports.Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:           tx,
		userRepo:     userRepo,
		locationRepo: locationRepo,
		grnRepo:      grnRepo,
		lineRepo:     lineRepo,
		dnRepo:       dnRepo,
		inwardRepo:   inwardRepo,
		notifier:     notifier,
		log:          log,
	}
}

// Create registra un GRN con sus líneas numeradas 1..N en orden de entrada.
// Si la ubicación de entrega no es bodega, emite el OTP y envía el manifiesto
// por correo dentro de la MISMA transacción: un fallo de envío revierte todo.
// En bodega no se emite OTP; el código nacerá al trasladar las líneas.
func (uc *UseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateGRNRequest) (*dto.GRNResponse, error) {
	receiver, err := uc.userRepo.GetByID(in.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, domain.ErrUserNotFound
	}
	loc, err := uc.locationRepo.GetByID(in.DeliveryLocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	grnID := uuid.New().String()
	lines := make([]*entity.GRNLine, 0, len(in.Lines))
	for _, li := range in.Lines {
		line := &entity.GRNLine{
			ID:             uuid.New().String(),
			GRNID:          grnID,
			SenderName:     li.SenderName,
			Phone:          li.Phone,
			SenderLocation: li.SenderLocation,
			CourierName:    li.CourierName,
			CourierID:      li.CourierID,
			ParcelType:     li.ParcelType,
			Remark:         li.Remark,
			CreatedAt:      now,
		}
		if line.IsPlaceholder() {
			continue
		}
		if !entity.ValidCourier(line.CourierName) || !entity.ValidParcelType(line.ParcelType) {
			return nil, domain.ErrInvalidInput
		}
		line.LineNumber = len(lines) + 1
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, domain.ErrNoLines
	}

	header := &entity.GRN{
		ID:                 grnID,
		ReceiverID:         receiver.ID,
		DeliveryLocationID: loc.ID,
		CreatedBy:          actor.ID,
		Place:              in.Place,
		CreatedAt:          now,
	}

	err = uc.tx.Run(ctx, func(
		grnRepo repository.GRNRepository,
		lineRepo repository.LineRepository,
		otpRepo repository.OTPRepository,
		_ repository.DNRepository,
		_ repository.WarehouseInwardRepository,
	) error {
		if err := grnRepo.Create(header); err != nil {
			return err
		}
		for _, line := range lines {
			if err := lineRepo.Create(line); err != nil {
				return err
			}
		}
		if loc.IsWarehouse {
			return nil
		}
		row, err := otp.IssueForGRN(otpRepo, grnID, now)
		if err != nil {
			return err
		}
		body := notify.GRNCreatedBody(receiver.Name, loc.Name, grnID, row.Code, lines)
		if err := uc.notifier.Send(ctx, receiver.Email, notify.GRNCreatedSubject(grnID), body); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrNotification, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := uc.toResponse(header, receiver, loc, entity.GRNTotals{TotalLines: len(lines)})
	for _, line := range lines {
		resp.Lines = append(resp.Lines, dto.NewLineResponse(line, false, nil))
	}
	return resp, nil
}

// Delete borra un GRN y su contenido no terminal. Rechaza el borrado si
// alguna línea ya tiene DN: la evidencia de una entrega nunca se destruye.
func (uc *UseCase) Delete(ctx context.Context, actor *entity.User, requestedLocationID, grnID string) error {
	header, err := uc.grnRepo.GetByID(grnID)
	if err != nil {
		return err
	}
	if header == nil {
		return domain.ErrNotFound
	}
	if err := scope.Authorize(actor, requestedLocationID, header.DeliveryLocationID); err != nil {
		return err
	}
	totals, err := uc.grnRepo.Totals(grnID)
	if err != nil {
		return err
	}
	if totals.DeliveredLines > 0 {
		return domain.ErrAlreadyDelivered
	}

	return uc.tx.Run(ctx, func(
		grnRepo repository.GRNRepository,
		_ repository.LineRepository,
		_ repository.OTPRepository,
		_ repository.DNRepository,
		_ repository.WarehouseInwardRepository,
	) error {
		return grnRepo.Delete(grnID)
	})
}

// GetByID devuelve un GRN con sus líneas y estado de custodia por línea.
func (uc *UseCase) GetByID(actor *entity.User, requestedLocationID, grnID string) (*dto.GRNResponse, error) {
	header, err := uc.grnRepo.GetByID(grnID)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.ErrNotFound
	}
	if err := scope.Authorize(actor, requestedLocationID, header.DeliveryLocationID); err != nil {
		return nil, err
	}

	receiver, err := uc.userRepo.GetByID(header.ReceiverID)
	if err != nil {
		return nil, err
	}
	loc, err := uc.locationRepo.GetByID(header.DeliveryLocationID)
	if err != nil {
		return nil, err
	}
	totals, err := uc.grnRepo.Totals(grnID)
	if err != nil {
		return nil, err
	}

	resp := uc.toResponse(header, receiver, loc, totals)
	lines, err := uc.lineRepo.ListByGRN(grnID)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		dn, err := uc.dnRepo.GetByLine(line.ID)
		if err != nil {
			return nil, err
		}
		var stage *entity.Stage
		if wi, err := uc.inwardRepo.GetByLine(line.ID); err != nil {
			return nil, err
		} else if wi != nil {
			s := wi.Stage()
			stage = &s
		}
		resp.Lines = append(resp.Lines, dto.NewLineResponse(line, dn != nil, stage))
	}
	return resp, nil
}

// List lista GRNs bajo el alcance de ubicación efectivo, con filtros
// opcionales por estado de entrega, courier y tipo de paquete. Los valores de
// filtro fuera de catálogo se ignoran.
func (uc *UseCase) List(actor *entity.User, requestedLocationID string, in dto.ListGRNsRequest) (*dto.GRNListResponse, error) {
	effective, err := scope.EffectiveLocation(actor, requestedLocationID)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()

	filter := repository.GRNFilter{
		LocationID: effective,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if in.Status == "delivered" || in.Status == "pending" {
		filter.Status = in.Status
	}
	if entity.ValidCourier(in.Courier) {
		filter.Courier = in.Courier
	}
	if entity.ValidParcelType(in.ParcelType) {
		filter.ParcelType = in.ParcelType
	}

	headers, err := uc.grnRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GRNResponse, 0, len(headers))
	for _, header := range headers {
		receiver, err := uc.userRepo.GetByID(header.ReceiverID)
		if err != nil {
			return nil, err
		}
		loc, err := uc.locationRepo.GetByID(header.DeliveryLocationID)
		if err != nil {
			return nil, err
		}
		totals, err := uc.grnRepo.Totals(header.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *uc.toResponse(header, receiver, loc, totals))
	}
	return &dto.GRNListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ListDNs historial de entregas bajo el alcance de ubicación efectivo.
func (uc *UseCase) ListDNs(actor *entity.User, requestedLocationID string, page dto.PageRequest) (*dto.DNListResponse, error) {
	effective, err := scope.EffectiveLocation(actor, requestedLocationID)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()

	dns, err := uc.dnRepo.List(repository.DNFilter{LocationID: effective, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.DNResponse, 0, len(dns))
	for _, dn := range dns {
		item := dto.DNResponse{
			ID:                  dn.ID,
			GRNLineID:           dn.GRNLineID,
			Remark:              dn.Remark,
			FromWarehouseInward: dn.FromWarehouseInward,
			CreatedAt:           dn.CreatedAt,
		}
		if line, err := uc.lineRepo.GetByID(dn.GRNLineID); err != nil {
			return nil, err
		} else if line != nil {
			item.GRNID = line.GRNID
			item.LineNumber = line.LineNumber
			item.SenderName = line.SenderName
		}
		items = append(items, item)
	}
	return &dto.DNListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *UseCase) toResponse(header *entity.GRN, receiver *entity.User, loc *entity.Location, totals entity.GRNTotals) *dto.GRNResponse {
	resp := &dto.GRNResponse{
		ID:                 header.ID,
		ReceiverID:         header.ReceiverID,
		DeliveryLocationID: header.DeliveryLocationID,
		Place:              header.Place,
		CreatedBy:          header.CreatedBy,
		CreatedAt:          header.CreatedAt,
		TotalLines:         totals.TotalLines,
		DeliveredLines:     totals.DeliveredLines,
		IsDelivered:        totals.IsDelivered(),
	}
	if receiver != nil {
		resp.ReceiverName = receiver.Name
	}
	if loc != nil {
		resp.LocationName = loc.Name
		resp.InwardStatus = totals.InwardStatus(loc.IsWarehouse)
	}
	return resp
}
