// Package pdf implementa la proyección de un albarán a PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor (empresa o autónomo)  │  ALBARÁN + Fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto                                 │
//	│  PROYECTO: Nombre + descripción                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo | Descripción | Detalle | Cant | P.Unit | Imp. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                      │
//	│  Observaciones                                              │
//	│  FIRMA: imagen si está firmado, línea en blanco si no       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dverdu/albaranes-api/internal/application/notes"
	"github.com/dverdu/albaranes-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ notes.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa notes.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateNotePDF genera el PDF del albarán y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateNotePDF(_ context.Context, data *notes.PDFData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Albarán "+data.Note.ID, true).
		WithAuthor(emitterName(data), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(data.Client))
	m.AddRows(projectRow(data.Project))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(data.Note.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(data.Note))

	if data.Note.Notes != "" {
		m.AddRows(notesRow(data.Note.Notes))
	}

	m.AddRows(line.NewRow(3))
	for _, r := range signatureRows(data) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y título ALBARÁN + fecha (der).
func headerRow(data *notes.PDFData) core.Row {
	fecha := data.Note.CreatedAt.Format("02/01/2006")

	left := col.New(7)
	if data.Company != nil {
		left.Add(
			text.New(data.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CIF: "+nonEmpty(data.Company.CIF, "—")+"   |   "+nonEmpty(data.Company.Address, "—"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		)
	} else {
		left.Add(
			text.New(emitterName(data), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIF: "+nonEmpty(creatorNIF(data), "—"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		)
	}

	return row.New(18).Add(
		left,
		col.New(5).Add(
			text.New("ALBARÁN", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Nº "+shortID(data.Note.ID), props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente destinatario.
func clientRow(client *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				nonEmpty(client.Email, "—"),
				nonEmpty(client.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// projectRow: proyecto al que pertenece el albarán.
func projectRow(project *entity.Project) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PROYECTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(project.Name+descSuffix(project.Description), props.Text{
				Size: 9, Top: 7,
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
		h("Tipo", 1, align.Left),
		h("Descripción", 4, align.Left),
		h("Detalle", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("P.Unit", 1, align.Right),
		h("Importe", 2, align.Right),
	)
}

// tableItemRows: una fila por línea. El detalle depende del tipo: persona y
// fecha para horas, referencia para material.
func tableItemRows(items []entity.NoteItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				itemTypeLabel(it.Type),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				itemDetail(it),
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				formatEuro(it.UnitPrice.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatEuro(it.LineTotal().StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total del albarán alineado a la derecha.
func totalRow(note *entity.DeliveryNote) core.Row {
	return row.New(10).Add(
		col.New(7),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(2).Add(text.New(formatEuro(note.TotalAmount.StringFixed(2)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// notesRow: observaciones libres del albarán.
func notesRow(observations string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
			text.New(observations, props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

// signatureRows: imagen de la firma con su fecha si el albarán está firmado;
// si no, una línea en blanco para firmar sobre papel.
func signatureRows(data *notes.PDFData) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("RECIBÍ / CONFORME", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if data.SignatureImagePath != "" && data.Note.Signature != nil {
		rows = append(rows, row.New(30).Add(
			col.New(4).Add(image.NewFromFile(data.SignatureImagePath, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Firmado el "+data.Note.Signature.Date.Format("02/01/2006 15:04"), props.Text{
					Size: 8, Top: 12, Left: 3, Color: colorGray,
				}),
			),
		))
		return rows
	}
	rows = append(rows, row.New(22).Add(
		col.New(5).Add(
			text.New("_______________________________", props.Text{Size: 9, Top: 14}),
			text.New("Firma y fecha", props.Text{Size: 7, Top: 19, Color: colorGray}),
		),
		col.New(7),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func emitterName(data *notes.PDFData) string {
	if data.Company != nil {
		return data.Company.Name
	}
	if data.Creator != nil {
		return strings.TrimSpace(data.Creator.Name + " " + data.Creator.Surname)
	}
	return "—"
}

func creatorNIF(data *notes.PDFData) string {
	if data.Creator != nil {
		return data.Creator.NIF
	}
	return ""
}

func itemTypeLabel(t string) string {
	if t == entity.ItemTypeHours {
		return "Horas"
	}
	return "Material"
}

func itemDetail(it entity.NoteItem) string {
	if it.Type == entity.ItemTypeHours {
		parts := []string{}
		if it.Person != "" {
			parts = append(parts, it.Person)
		}
		if it.WorkDate != nil {
			parts = append(parts, it.WorkDate.Format("02/01/2006"))
		}
		return strings.Join(parts, " · ")
	}
	if it.Reference != "" {
		return "Ref: " + it.Reference
	}
	return ""
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func descSuffix(desc string) string {
	if desc == "" {
		return ""
	}
	return " · " + desc
}

// shortID acorta un UUID a su primer bloque para el número visible del albarán.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	return id
}

// formatEuro convierte "1234.56" a "1.234,56 €".
func formatEuro(s string) string {
	intPart, decPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, decPart = s[:i], s[i+1:]
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}
	out := string(buf)
	if decPart != "" {
		out += "," + decPart
	}
	if neg {
		out = "-" + out
	}
	return out + " €"
}
