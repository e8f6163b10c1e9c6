package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"pitak-order-api/internal/model"
)

// DocType selects the document variant.
type DocType string

const (
	TypeOrder   DocType = "order"
	TypeReceipt DocType = "receipt"
)

// The built-in Helvetica font has no Thai glyphs, so values are
// transliterated to ASCII before drawing.
var amuletTranslations = []struct{ th, en string }{
	{"ทองแดงรมดำ", "Bronze Black"},
	{"ทองเหลืองผิวรุ้ง", "Brass Rainbow"},
	{"หน้ากากทองขาว", "White Gold Mask"},
	{"พิมพ์ใหญ่", "Large"},
	{"พิมพ์กลาง", "Medium"},
	{"เนื้อ", ""},
	{"หลวงพ่อเงิน", "Luang Por Ngern"},
	{"พิทักษ์แผ่นดิน", "Pitak Phandin"},
}

func stripNonASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r <= 127 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func toASCII(s string) string {
	if s == "" {
		return "-"
	}
	if out := stripNonASCII(s); out != "" {
		return out
	}
	return "Thai Text"
}

// TranslateAmulet maps known Thai amulet names to English and drops
// any remaining Thai characters.
func TranslateAmulet(name string) string {
	if name == "" {
		return "Amulet"
	}
	out := name
	for _, t := range amuletTranslations {
		out = strings.ReplaceAll(out, t.th, t.en)
	}
	var b strings.Builder
	for _, r := range out {
		if r <= 127 {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	if trimmed := strings.TrimSpace(b.String()); trimmed != "" {
		return trimmed
	}
	return "Amulet"
}

func formatTHB(amount float64) string {
	s := fmt.Sprintf("%.0f", amount)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s + " THB"
}

// Render draws the order confirmation or receipt for one order
// snapshot and returns the PDF bytes.
func Render(o *model.Order, docType DocType) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.AddPage()

	gold := [3]int{212, 173, 54}
	dark := [3]int{74, 0, 18}
	green := [3]int{38, 173, 97}
	orange := [3]int{242, 156, 18}

	y := 62.0

	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(gold[0], gold[1], gold[2])
	doc.Text(200, y, "PITAK-PHANDIN")
	y += 30

	title := "ORDER CONFIRMATION"
	if docType == TypeReceipt {
		title = "RECEIPT"
	}
	doc.SetFont("Helvetica", "", 14)
	doc.SetTextColor(dark[0], dark[1], dark[2])
	doc.Text(210, y, title)
	y += 40

	doc.SetDrawColor(gold[0], gold[1], gold[2])
	doc.SetLineWidth(2)
	doc.Line(50, y, 545, y)
	y += 30

	doc.SetTextColor(0, 0, 0)
	row := func(label, value string) {
		doc.SetFont("Helvetica", "B", 12)
		doc.Text(50, y, label)
		doc.SetFont("Helvetica", "", 12)
		doc.Text(180, y, value)
		y += 24
	}

	row("Order ID:", toASCII(o.OrderID))
	row("Customer:", toASCII(o.CustomerName))
	row("Phone:", toASCII(o.Phone))
	row("Item:", TranslateAmulet(o.AmuletName))
	row("Quantity:", fmt.Sprintf("%d", o.Quantity))
	row("Unit Price:", formatTHB(o.Price))

	y += 10
	doc.SetLineWidth(1)
	doc.Line(50, y, 350, y)
	y += 25

	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(0, 0, 0)
	doc.Text(50, y, "TOTAL:")
	doc.SetTextColor(gold[0], gold[1], gold[2])
	doc.Text(180, y, formatTHB(o.Total))
	y += 35

	statusText := "PENDING PAYMENT"
	statusColor := orange
	if docType == TypeReceipt {
		statusText = "PAID"
		statusColor = green
	}
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(0, 0, 0)
	doc.Text(50, y, "Status:")
	doc.SetTextColor(statusColor[0], statusColor[1], statusColor[2])
	doc.Text(180, y, statusText)
	y += 50

	doc.SetLineWidth(1)
	doc.Line(50, y, 545, y)
	y += 25

	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(0, 0, 0)
	doc.Text(210, y, "Thank you for your order")
	y += 18
	doc.SetFont("Helvetica", "", 10)
	doc.Text(190, y, "Pitak-Phandin Amulet Collection")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
