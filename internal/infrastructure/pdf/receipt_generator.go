// Package pdf genera el recibo (cuenta previa o comprobante de pago) de una comanda.
//
// Layout de la página:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: Nombre del restaurante │ Comanda N°  │
//	│  Mesa / apertura / cierre / status            │
//	│  ──────────────────────────────────────────  │
//	│  TABLA: Qtd | Produto | P.Unit | Subtotal     │
//	│  ──────────────────────────────────────────  │
//	│  TOTAL / Valor pago / Troco / Forma pgto      │
//	│  FOOTER                                       │
//	└──────────────────────────────────────────────┘
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/restaurante-api/internal/application/comanda"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

var _ comanda.ReceiptGenerator = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 120, Green: 40, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var paymentLabels = map[string]string{
	entity.PaymentCash:   "Dinheiro",
	entity.PaymentCredit: "Cartão de crédito",
	entity.PaymentDebit:  "Cartão de débito",
	entity.PaymentPix:    "PIX",
}

// ReceiptGenerator implementa comanda.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	restaurant string
	printer    *message.Printer
}

// NewReceiptGenerator construye el generador; restaurant va en el encabezado.
func NewReceiptGenerator(restaurant string) *ReceiptGenerator {
	return &ReceiptGenerator{
		restaurant: restaurant,
		printer:    message.NewPrinter(language.BrazilianPortuguese),
	}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(_ context.Context, r comanda.Receipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Comanda %d", r.Comanda.ID), true).
		WithAuthor(g.restaurant, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(g.infoRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))

	m.AddRows(itemsHeaderRow())
	for _, l := range r.Lines {
		m.AddRows(g.itemRows(l)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))
	m.AddRows(g.totalsRows(r.Comanda)...)
	m.AddRows(row.New(4))
	m.AddRows(footerRow(r.Comanda))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(r comanda.Receipt) core.Row {
	title := "CONFERÊNCIA"
	if r.Comanda.Status == entity.ComandaStatusPaid {
		title = "RECIBO"
	}
	return row.New(14).Add(
		col.New(8).Add(
			text.New(g.restaurant, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
		),
		col.New(4).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Comanda Nº %d", r.Comanda.ID), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6}),
		),
	)
}

func (g *ReceiptGenerator) infoRow(r comanda.Receipt) core.Row {
	mesa := "—"
	if r.Table != nil {
		mesa = fmt.Sprintf("%d", r.Table.Number)
		if r.Table.Location != "" {
			mesa += " (" + r.Table.Location + ")"
		}
	}
	info := fmt.Sprintf("Mesa: %s   |   Abertura: %s", mesa, r.Comanda.OpenedAt.Format("02/01/2006 15:04"))
	if r.Comanda.ClosedAt != nil {
		info += "   |   Fechamento: " + r.Comanda.ClosedAt.Format("02/01/2006 15:04")
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(info, props.Text{Size: 8, Color: colorGray, Top: 2}),
	))
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(7).Add(
		h("Qtd", 1, align.Center),
		h("Produto", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// itemRows una fila por línea y, si hay observación, una fila extra en gris.
func (g *ReceiptGenerator) itemRows(l comanda.ReceiptLine) []core.Row {
	rows := []core.Row{row.New(6).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(g.money(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(g.money(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1})),
	)}
	if l.Notes != "" {
		rows = append(rows, row.New(4).Add(
			col.New(1),
			col.New(11).Add(text.New("obs: "+l.Notes, props.Text{Size: 7, Color: colorGray})),
		))
	}
	return rows
}

func (g *ReceiptGenerator) totalsRows(c *entity.Comanda) []core.Row {
	pair := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 9.0
		if bold {
			style = fontstyle.Bold
			size = 11
		}
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{Style: style, Size: size, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(value, props.Text{Style: style, Size: size, Align: align.Right, Top: 1})),
		)
	}
	rows := []core.Row{pair("TOTAL:", g.money(c.Total), true)}
	if c.AmountTendered != nil {
		rows = append(rows, pair("Valor pago:", g.money(*c.AmountTendered), false))
	}
	if c.Change != nil {
		rows = append(rows, pair("Troco:", g.money(*c.Change), false))
	}
	if c.PaymentMethod != "" {
		rows = append(rows, pair("Pagamento:", nonEmpty(paymentLabels[c.PaymentMethod], c.PaymentMethod), false))
	}
	return rows
}

func footerRow(c *entity.Comanda) core.Row {
	msg := "Documento sem valor fiscal. Confira os itens antes do pagamento."
	switch c.Status {
	case entity.ComandaStatusPaid:
		msg = "Obrigado pela preferência!"
	case entity.ComandaStatusCancelled:
		msg = "Comanda cancelada."
	}
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Align: align.Center, Color: colorGray}),
	))
}

// money formatea en reales con separadores pt-BR, p.ej. "R$ 1.234,50".
func (g *ReceiptGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("R$ %.2f", d.Round(2).InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
