package grn

import (
	"context"

	"github.com/jhoicas/Paqueteria-api/internal/application/scope"
	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
)

// ManifestLine línea del manifiesto con su estado de custodia resuelto.
type ManifestLine struct {
	Line      *entity.GRNLine
	Delivered bool
	Stage     *entity.Stage
}

// ManifestPDFGenerator puerto de generación del manifiesto imprimible (DIP:
// la infraestructura implementa, la aplicación consume).
type ManifestPDFGenerator interface {
	GenerateManifestPDF(
		ctx context.Context,
		header *entity.GRN,
		receiver *entity.User,
		location *entity.Location,
		totals entity.GRNTotals,
		lines []ManifestLine,
	) ([]byte, error)
}

// ManifestUseCase genera el manifiesto PDF de un GRN.
type ManifestUseCase struct {
	grns *UseCase
	gen  ManifestPDFGenerator
}

// NewManifestUseCase construye el caso de uso del manifiesto.
func NewManifestUseCase(grns *UseCase, gen ManifestPDFGenerator) *ManifestUseCase {
	return &ManifestUseCase{grns: grns, gen: gen}
}

// Generate arma el manifiesto del GRN (cabecera, receptor, tabla de líneas
// con su estado) y devuelve los bytes del PDF.
func (uc *ManifestUseCase) Generate(ctx context.Context, actor *entity.User, requestedLocationID, grnID string) ([]byte, error) {
	header, err := uc.grns.grnRepo.GetByID(grnID)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.ErrNotFound
	}
	if err := scope.Authorize(actor, requestedLocationID, header.DeliveryLocationID); err != nil {
		return nil, err
	}
	receiver, err := uc.grns.userRepo.GetByID(header.ReceiverID)
	if err != nil {
		return nil, err
	}
	loc, err := uc.grns.locationRepo.GetByID(header.DeliveryLocationID)
	if err != nil {
		return nil, err
	}
	totals, err := uc.grns.grnRepo.Totals(grnID)
	if err != nil {
		return nil, err
	}

	rows, err := uc.grns.lineRepo.ListByGRN(grnID)
	if err != nil {
		return nil, err
	}
	lines := make([]ManifestLine, 0, len(rows))
	for _, line := range rows {
		ml := ManifestLine{Line: line}
		dn, err := uc.grns.dnRepo.GetByLine(line.ID)
		if err != nil {
			return nil, err
		}
		ml.Delivered = dn != nil
		if wi, err := uc.grns.inwardRepo.GetByLine(line.ID); err != nil {
			return nil, err
		} else if wi != nil {
			s := wi.Stage()
			ml.Stage = &s
		}
		lines = append(lines, ml)
	}
	return uc.gen.GenerateManifestPDF(ctx, header, receiver, loc, totals, lines)
}
