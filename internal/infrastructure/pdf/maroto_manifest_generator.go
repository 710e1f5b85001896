// Package pdf implementa la generación del manifiesto imprimible de un GRN.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Manifiesto GRN + N° GRN + Fecha                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECEPTOR: Nombre + contacto │ UBICACIÓN de entrega          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Remitente | Courier | Tipo | Estado             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: líneas totales / entregadas / estado de ingreso    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appgrn "github.com/jhoicas/Paqueteria-api/internal/application/grn"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoManifestGenerator implementa grn.ManifestPDFGenerator usando Maroto v2.
type MarotoManifestGenerator struct{}

// NewMarotoManifestGenerator construye el generador.
func NewMarotoManifestGenerator() *MarotoManifestGenerator { return &MarotoManifestGenerator{} }

// GenerateManifestPDF genera el PDF del manifiesto y devuelve sus bytes.
func (g *MarotoManifestGenerator) GenerateManifestPDF(
	_ context.Context,
	header *entity.GRN,
	receiver *entity.User,
	location *entity.Location,
	totals entity.GRNTotals,
	lines []appgrn.ManifestLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Manifiesto GRN", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(header))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(receiverRow(receiver, location))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(totals, location))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar manifiesto: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° GRN + fecha (der).
func headerRow(header *entity.GRN) core.Row {
	fecha := header.CreatedAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("MANIFIESTO DE RECEPCIÓN DE PAQUETES", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Nota de Recepción de Mercancía (GRN)", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("GRN "+header.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// receiverRow: receptor (izq) y ubicación de entrega (der).
func receiverRow(receiver *entity.User, location *entity.Location) core.Row {
	name, contact := "—", "—"
	if receiver != nil {
		name = receiver.Name
		contact = fmt.Sprintf("Email: %s   |   Tel: %s",
			nonEmpty(receiver.Email, "—"), nonEmpty(receiver.Phone, "—"))
	}
	locName := "—"
	if location != nil {
		locName = location.Name
		if location.IsWarehouse {
			locName += " (bodega)"
		}
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("RECEPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("UBICACIÓN DE ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(locName, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 1, align.Center),
		h("Remitente", 4, align.Left),
		h("Courier", 3, align.Left),
		h("Tipo", 2, align.Left),
		h("Estado", 2, align.Right),
	)
}

// tableLineRows: una fila por línea del GRN.
func tableLineRows(lines []appgrn.ManifestLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, ml := range lines {
		l := ml.Line
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.LineNumber),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				nonEmpty(l.SenderName, "Desconocido"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				entity.CourierDisplay(l.CourierName),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				entity.ParcelTypeDisplay(l.ParcelType),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				custodyLabel(ml),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// summaryRow: contadores del GRN y estado de ingreso si aplica.
func summaryRow(totals entity.GRNTotals, location *entity.Location) core.Row {
	summary := fmt.Sprintf("Líneas: %d   |   Entregadas: %d", totals.TotalLines, totals.DeliveredLines)
	if location != nil {
		if st := totals.InwardStatus(location.IsWarehouse); st != nil {
			summary += "   |   " + *st
		}
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(summary, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// custodyLabel estado legible de una línea para la tabla.
func custodyLabel(ml appgrn.ManifestLine) string {
	if ml.Delivered {
		return "Entregada"
	}
	if ml.Stage != nil {
		switch *ml.Stage {
		case entity.StageOnFloor:
			return "En piso"
		case entity.StageReceived:
			return "En bodega"
		}
	}
	return "Pendiente"
}
