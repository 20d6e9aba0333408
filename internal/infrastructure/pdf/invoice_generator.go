// Package pdf genera la factura con GST de un pedido de la tienda.
//
// Layout de cada página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + GSTIN       │  N° Pedido + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURAR A                   │  ENVIAR A        (pág. 1)    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Color/Talla | Cant | P.Unit | GST | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES + MÉTODO DE PAGO                     (última pág.)  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/application/order"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// ItemsPerPage líneas de la tabla por página; el resto de bloques cabe en el margen.
const ItemsPerPage = 18

// addressWidth ancho máximo de cada línea en los bloques de dirección.
const addressWidth = 30

var (
	colorPrimary = &props.Color{Red: 128, Green: 0, Blue: 64}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// InvoiceGenerator implementa order.InvoicePDFGenerator usando Maroto v2.
type InvoiceGenerator struct{}

// NewInvoiceGenerator construye el generador.
func NewInvoiceGenerator() *InvoiceGenerator { return &InvoiceGenerator{} }

var _ order.InvoicePDFGenerator = (*InvoiceGenerator)(nil)

// GenerateOrderInvoice genera el PDF y devuelve sus bytes.
func (g *InvoiceGenerator) GenerateOrderInvoice(_ context.Context, o *entity.Order, store order.StoreInfo) ([]byte, error) {
	if o == nil {
		return nil, fmt.Errorf("pdf: pedido nulo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tax Invoice "+o.Number, true).
		WithAuthor(store.Name, true).
		Build()

	m := maroto.New(cfg)

	chunks := paginate(o.Items, ItemsPerPage)
	for i, items := range chunks {
		p := page.New()
		p.Add(headerRow(o, store, i+1, len(chunks)))
		p.Add(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
		if i == 0 {
			p.Add(addressRow(o))
			p.Add(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		}
		p.Add(tableHeaderRow())
		p.Add(itemRows(items)...)
		if i == len(chunks)-1 {
			p.Add(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
			p.Add(totalRows(o)...)
			p.Add(line.NewRow(3))
			p.Add(paymentRow(o))
		}
		m.AddPages(p)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// paginate reparte las líneas en páginas de n; un pedido sin líneas produce una página vacía.
func paginate(items []entity.OrderItem, n int) [][]entity.OrderItem {
	if n < 1 {
		n = 1
	}
	if len(items) == 0 {
		return [][]entity.OrderItem{nil}
	}
	var pages [][]entity.OrderItem
	for len(items) > n {
		pages = append(pages, items[:n])
		items = items[n:]
	}
	return append(pages, items)
}

func headerRow(o *entity.Order, store order.StoreInfo, pageNum, pages int) core.Row {
	gstin := "GSTIN: " + nonEmpty(store.GSTIN, "-")
	return row.New(20).Add(
		col.New(7).Add(
			text.New(store.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(gstin, props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New(nonEmpty(store.Address, ""), props.Text{Size: 7, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(o.Number, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6}),
			text.New("Date: "+o.CreatedAt.Format("02 Jan 2006"), props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}),
			text.New(fmt.Sprintf("Page %d of %d", pageNum, pages), props.Text{Size: 7, Align: align.Right, Top: 16, Color: colorGray}),
		),
	)
}

func addressRow(o *entity.Order) core.Row {
	billing := o.BillingAddress
	if billing.Line1 == "" {
		billing = o.ShippingAddress
	}
	billTo := append([]string{nonEmpty(o.Customer.Name, billing.FullName), o.Customer.Email, o.Customer.Phone}, addressLines(billing)...)
	shipTo := append([]string{nonEmpty(o.ShippingAddress.FullName, o.Customer.Name), o.ShippingAddress.Phone}, addressLines(o.ShippingAddress)...)

	return row.New(36).Add(
		col.New(6).Add(addressBlock("BILL TO", billTo)...),
		col.New(6).Add(addressBlock("SHIP TO", shipTo)...),
	)
}

func addressBlock(title string, lines []string) []core.Component {
	comps := []core.Component{
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	}
	top := 6.0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		comps = append(comps, text.New(l, props.Text{Size: 8, Top: top}))
		top += 4
	}
	return comps
}

// addressLines arma la dirección envuelta a addressWidth caracteres.
func addressLines(a entity.Address) []string {
	var out []string
	street := strings.TrimSpace(a.Line1 + " " + a.Line2)
	out = append(out, wrap(street, addressWidth)...)
	cityLine := strings.Trim(strings.Join([]string{a.City, a.State, a.PostalCode}, ", "), ", ")
	out = append(out, wrap(cityLine, addressWidth)...)
	if a.Country != "" {
		out = append(out, a.Country)
	}
	return out
}

// wrap corta en palabras sin superar width caracteres; una palabra más larga se parte.
func wrap(s string, width int) []string {
	var lines []string
	var cur []rune
	for _, f := range strings.Fields(s) {
		w := []rune(f)
		for len(w) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(cur) == 0:
			cur = w
		case len(cur)+1+len(w) <= width:
			cur = append(append(cur, ' '), w...)
		default:
			lines = append(lines, string(cur))
			cur = w
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Product", 4, align.Left),
		h("Colour / Size", 2, align.Left),
		h("Qty", 1, align.Center),
		h("Unit price", 2, align.Right),
		h("GST", 1, align.Center),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []entity.OrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.Color+" / "+it.Size, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatINR(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.GSTPercent.String()+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatINR(it.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalRows(o *entity.Order) []core.Row {
	totalLine := func(label, value string, grand bool) core.Row {
		style := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		if grand {
			style.Style = fontstyle.Bold
			style.Size = 10
			style.Color = colorPrimary
		}
		lbl := style
		lbl.Right = 2
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, lbl)),
			col.New(3).Add(text.New(value, style)),
		)
	}

	rows := []core.Row{totalLine("Subtotal:", formatINR(o.Subtotal), false)}
	if o.Discount.IsPositive() {
		label := "Discount:"
		if o.CouponCode != "" {
			label = "Discount (" + o.CouponCode + "):"
		}
		rows = append(rows, totalLine(label, "-"+formatINR(o.Discount), false))
	}
	shipping := "FREE"
	if o.ShippingCost.IsPositive() {
		shipping = formatINR(o.ShippingCost)
	}
	rows = append(rows, totalLine("Shipping:", shipping, false))

	t := o.Tax
	if t.IGST.IsPositive() {
		rows = append(rows, totalLine("IGST ("+t.IGSTRate.String()+"%):", formatINR(t.IGST), false))
	} else {
		rows = append(rows,
			totalLine("CGST ("+t.CGSTRate.String()+"%):", formatINR(t.CGST), false),
			totalLine("SGST ("+t.SGSTRate.String()+"%):", formatINR(t.SGST), false),
		)
	}
	rows = append(rows, totalLine("TOTAL (incl. GST):", formatINR(o.Total), true))
	return rows
}

func paymentRow(o *entity.Order) core.Row {
	method := "Cash on delivery"
	if o.PaymentMethod == entity.PaymentMethodOnline {
		method = "Online (Razorpay)"
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Payment: %s   |   Status: %s", method, o.PaymentStatus), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatINR formatea con agrupación india: 1234567.5 → "Rs. 12,34,567.50".
// Helvetica no trae el glifo ₹.
func formatINR(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var groups []string
	if len(intPart) > 3 {
		groups = append(groups, intPart[len(intPart)-3:])
		intPart = intPart[:len(intPart)-3]
		for len(intPart) > 2 {
			groups = append([]string{intPart[len(intPart)-2:]}, groups...)
			intPart = intPart[:len(intPart)-2]
		}
		if intPart != "" {
			groups = append([]string{intPart}, groups...)
		}
	} else {
		groups = []string{intPart}
	}
	return sign + "Rs. " + strings.Join(groups, ",") + "." + frac
}
