package warehouse

import (
	"context"
	"fmt"
	"sort"
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

// UseCase pipeline de bodega en tres etapas: ingreso, asignación a piso y
// entrega en piso. Cada invocación es un lote best-effort dentro de UNA
// transacción: los ítems inválidos acumulan errores sin abortar al resto, y
// un lote sin ningún éxito es un fallo global.
type UseCase struct {
	tx           ports.TxRunner
	userRepo     repository.UserRepository
	locationRepo repository.LocationRepository
	grnRepo      repository.GRNRepository
	inwardRepo   repository.WarehouseInwardRepository
	notifier     ports.Notifier
	log          *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx ports.TxRunner,
	userRepo repository.UserRepository,
	locationRepo repository.LocationRepository,
	grnRepo repository.GRNRepository,
	inwardRepo repository.WarehouseInwardRepository,
	notifier ports.Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:           tx,
		userRepo:     userRepo,
		locationRepo: locationRepo,
		grnRepo:      grnRepo,
		inwardRepo:   inwardRepo,
		notifier:     notifier,
		log:          log,
	}
}

// Inward etapa 1: traslada líneas custodiadas en GRNs de bodega hacia la
// ubicación del actor. Las líneas válidas se agrupan por GRN de origen; cada
// grupo acuña un GRN nuevo en la ubicación del actor, reasigna sus líneas con
// numeración densa y renumera el origen. Cada línea trasladada queda con su
// registro de bodega en etapa "received".
//
// Si la ubicación destino no es bodega se emite el OTP del GRN nuevo y se
// envía el correo de traslado; a diferencia de la creación, un fallo de envío
// aquí NO revierte el traslado (el movimiento físico ya ocurrió): se registra
// como advertencia en el resultado.
func (uc *UseCase) Inward(ctx context.Context, actor *entity.User, in dto.InwardRequest) (*dto.BatchResult, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if actor.LocationID == "" {
		return nil, domain.ErrNoLocation
	}
	destLoc, err := uc.locationRepo.GetByID(actor.LocationID)
	if err != nil {
		return nil, err
	}
	if destLoc == nil {
		return nil, domain.ErrNoLocation
	}
	if len(in.LineIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	result := &dto.BatchResult{}
	err = uc.tx.Run(ctx, func(
		grnRepo repository.GRNRepository,
		lineRepo repository.LineRepository,
		otpRepo repository.OTPRepository,
		dnRepo repository.DNRepository,
		inwardRepo repository.WarehouseInwardRepository,
	) error {
		// Validación por línea; las válidas se agrupan por GRN de origen.
		type group struct {
			source *entity.GRN
			lines  []*entity.GRNLine
		}
		groups := make(map[string]*group)
		order := make([]string, 0)
		for _, lineID := range in.LineIDs {
			line, err := lineRepo.GetByID(lineID)
			if err != nil {
				return err
			}
			if line == nil {
				result.Failed = append(result.Failed, dto.BatchError{ID: lineID, Reason: "línea no encontrada"})
				continue
			}
			source, err := grnRepo.GetByID(line.GRNID)
			if err != nil {
				return err
			}
			if source == nil {
				result.Failed = append(result.Failed, dto.BatchError{ID: lineID, Reason: "GRN de origen no encontrado"})
				continue
			}
			srcLoc, err := uc.locationRepo.GetByID(source.DeliveryLocationID)
			if err != nil {
				return err
			}
			if srcLoc == nil || !srcLoc.IsWarehouse {
				result.Failed = append(result.Failed, dto.BatchError{ID: lineID, Reason: domain.ErrNotWarehouse.Error()})
				continue
			}
			if wi, err := inwardRepo.GetByLine(lineID); err != nil {
				return err
			} else if wi != nil {
				result.Failed = append(result.Failed, dto.BatchError{ID: lineID, Reason: domain.ErrAlreadyInwarded.Error()})
				continue
			}
			if dn, err := dnRepo.GetByLine(lineID); err != nil {
				return err
			} else if dn != nil {
				result.Failed = append(result.Failed, dto.BatchError{ID: lineID, Reason: domain.ErrAlreadyDelivered.Error()})
				continue
			}
			g, ok := groups[source.ID]
			if !ok {
				g = &group{source: source}
				groups[source.ID] = g
				order = append(order, source.ID)
			}
			g.lines = append(g.lines, line)
		}
		if len(order) == 0 {
			return nil
		}

		for _, sourceID := range order {
			g := groups[sourceID]
			srcLoc, err := uc.locationRepo.GetByID(g.source.DeliveryLocationID)
			if err != nil {
				return err
			}
			dest := &entity.GRN{
				ID:                 uuid.New().String(),
				ReceiverID:         g.source.ReceiverID,
				DeliveryLocationID: actor.LocationID,
				CreatedBy:          actor.ID,
				Place:              fmt.Sprintf("Trasladado desde %s", srcLoc.Name),
				CreatedAt:          now,
			}
			if err := grnRepo.Create(dest); err != nil {
				return err
			}
			sort.Slice(g.lines, func(i, j int) bool { return g.lines[i].LineNumber < g.lines[j].LineNumber })
			for n, line := range g.lines {
				if err := lineRepo.Reassign(line.ID, dest.ID, n+1); err != nil {
					return err
				}
				line.GRNID = dest.ID
				line.LineNumber = n + 1
				if err := inwardRepo.Create(&entity.WarehouseInward{
					ID:           uuid.New().String(),
					GRNLineID:    line.ID,
					InwardedBy:   actor.ID,
					InwardedAt:   now,
					InwardRemark: in.Remark,
				}); err != nil {
					return err
				}
				result.Succeeded = append(result.Succeeded, line.ID)
			}
			if err := lineRepo.Renumber(g.source.ID); err != nil {
				return err
			}
			result.CreatedGRNs = append(result.CreatedGRNs, dest.ID)

			if destLoc.IsWarehouse {
				continue
			}
			row, err := otp.IssueForGRN(otpRepo, dest.ID, now)
			if err != nil {
				return err
			}
			receiver, err := uc.userRepo.GetByID(dest.ReceiverID)
			if err != nil {
				return err
			}
			if receiver == nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("GRN %s: receptor no encontrado, correo no enviado", dest.ID))
				continue
			}
			body := notify.TransferBody(receiver.Name, srcLoc.Name, destLoc.Name, dest.ID, row.Code, g.lines)
			if err := uc.notifier.Send(ctx, receiver.Email, notify.TransferSubject(dest.ID), body); err != nil {
				uc.log.Warn().Err(err).Str("grn_id", dest.ID).Msg("fallo al enviar correo de traslado")
				result.Warnings = append(result.Warnings, fmt.Sprintf("GRN %s: %s", dest.ID, domain.ErrNotification.Error()))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return result, domain.ErrInvalidInput
	}
	return result, nil
}

// AssignToFloor etapa 2: asigna piso y estante a registros ingresados. El
// piso es obligatorio para todo el lote; la reasignación de un registro que
// ya está en piso se rechaza por ítem.
func (uc *UseCase) AssignToFloor(ctx context.Context, actor *entity.User, in dto.AssignFloorRequest) (*dto.BatchResult, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if in.Floor == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.InwardIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	result := &dto.BatchResult{}
	err := uc.tx.Run(ctx, func(
		_ repository.GRNRepository,
		_ repository.LineRepository,
		_ repository.OTPRepository,
		_ repository.DNRepository,
		inwardRepo repository.WarehouseInwardRepository,
	) error {
		for _, id := range in.InwardIDs {
			w, err := inwardRepo.GetByID(id)
			if err != nil {
				return err
			}
			if w == nil {
				result.Failed = append(result.Failed, dto.BatchError{ID: id, Reason: "registro de bodega no encontrado"})
				continue
			}
			if w.DeliveredToReceiver {
				result.Failed = append(result.Failed, dto.BatchError{ID: id, Reason: domain.ErrAlreadyDelivered.Error()})
				continue
			}
			if w.IsOnFloor() {
				result.Failed = append(result.Failed, dto.BatchError{ID: id, Reason: domain.ErrAlreadyOnFloor.Error()})
				continue
			}
			at := now
			w.Floor = in.Floor
			w.Rack = in.Rack
			w.FloorRemark = in.Remark
			w.AssignedToFloorBy = actor.ID
			w.AssignedToFloorAt = &at
			if err := inwardRepo.Update(w); err != nil {
				return err
			}
			result.Succeeded = append(result.Succeeded, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return result, domain.ErrInvalidInput
	}
	return result, nil
}

// FloorDelivery etapa 3: entrega en piso al receptor. Cada registro válido
// queda marcado como entregado y sella el DN de su línea con
// from_warehouse_inward=true. La etapa es terminal: un registro ya entregado
// (o una línea que ya tiene DN por canje de OTP) se rechaza por ítem.
func (uc *UseCase) FloorDelivery(ctx context.Context, actor *entity.User, in dto.FloorDeliveryRequest) (*dto.BatchResult, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if len(in.InwardIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	result := &dto.BatchResult{}
	err := uc.tx.Run(ctx, func(
		_ repository.GRNRepository,
		_ repository.LineRepository,
		_ repository.OTPRepository,
		dnRepo repository.DNRepository,
		inwardRepo repository.WarehouseInwardRepository,
	) error {
		for _, id := range in.InwardIDs {
			w, err := inwardRepo.GetByID(id)
			if err != nil {
				return err
			}
			if w == nil {
				result.Failed = append(result.Failed, dto.BatchError{ID: id, Reason: "registro de bodega no encontrado"})
				continue
			}
			if w.DeliveredToReceiver {
				result.Failed = append(result.Failed, dto.BatchError{ID: id, Reason: domain.ErrAlreadyDelivered.Error()})
				continue
			}
			if dn, err := dnRepo.GetByLine(w.GRNLineID); err != nil {
				return err
			} else if dn != nil {
				result.Failed = append(result.Failed, dto.BatchError{ID: id, Reason: domain.ErrAlreadyDelivered.Error()})
				continue
			}
			at := now
			w.DeliveredToReceiver = true
			w.DeliveredBy = actor.ID
			w.DeliveredAt = &at
			w.DeliveryRemark = in.Remark
			if err := inwardRepo.Update(w); err != nil {
				return err
			}
			if err := dnRepo.Create(&entity.DN{
				ID:                  uuid.New().String(),
				GRNLineID:           w.GRNLineID,
				CreatedAt:           now,
				Remark:              in.Remark,
				FromWarehouseInward: true,
			}); err != nil {
				return err
			}
			result.Succeeded = append(result.Succeeded, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return result, domain.ErrInvalidInput
	}
	return result, nil
}

// ListInwards tracking de registros de bodega por etapa bajo el alcance de
// ubicación efectivo.
func (uc *UseCase) ListInwards(actor *entity.User, requestedLocationID string, stage entity.Stage, page dto.PageRequest) (*dto.InwardListResponse, error) {
	switch stage {
	case entity.StageReceived, entity.StageOnFloor, entity.StageDelivered:
	default:
		return nil, domain.ErrInvalidInput
	}
	effective, err := scope.EffectiveLocation(actor, requestedLocationID)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()

	rows, err := uc.inwardRepo.ListByStage(effective, stage, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InwardResponse, 0, len(rows))
	for _, w := range rows {
		items = append(items, dto.NewInwardResponse(w))
	}
	return &dto.InwardListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListPendingInward GRNs de bodega con líneas aún sin ingresar, para la
// pantalla de ingreso. Solo tiene sentido sobre una ubicación bodega.
func (uc *UseCase) ListPendingInward(actor *entity.User, requestedLocationID string, page dto.PageRequest) (*dto.GRNListResponse, error) {
	effective, err := scope.EffectiveLocation(actor, requestedLocationID)
	if err != nil {
		return nil, err
	}
	if effective == "" {
		return nil, domain.ErrNoLocation
	}
	loc, err := uc.locationRepo.GetByID(effective)
	if err != nil {
		return nil, err
	}
	if loc == nil || !loc.IsWarehouse {
		return nil, domain.ErrNotWarehouse
	}
	page.DefaultPage()

	headers, err := uc.grnRepo.List(repository.GRNFilter{
		LocationID: effective,
		Status:     "pending",
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.GRNResponse, 0, len(headers))
	for _, header := range headers {
		totals, err := uc.grnRepo.Totals(header.ID)
		if err != nil {
			return nil, err
		}
		if totals.IsFullyInwarded() {
			continue
		}
		receiver, err := uc.userRepo.GetByID(header.ReceiverID)
		if err != nil {
			return nil, err
		}
		item := dto.GRNResponse{
			ID:                 header.ID,
			ReceiverID:         header.ReceiverID,
			DeliveryLocationID: header.DeliveryLocationID,
			Place:              header.Place,
			CreatedBy:          header.CreatedBy,
			CreatedAt:          header.CreatedAt,
			TotalLines:         totals.TotalLines,
			DeliveredLines:     totals.DeliveredLines,
			IsDelivered:        totals.IsDelivered(),
			LocationName:       loc.Name,
			InwardStatus:       totals.InwardStatus(true),
		}
		if receiver != nil {
			item.ReceiverName = receiver.Name
		}
		items = append(items, item)
	}
	return &dto.GRNListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
