package notify

import (
	"bytes"
	"fmt"

	"go-shop/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Invoice is everything printed on an order's PDF
type Invoice struct {
	Order    *models.Order
	Items    []models.OrderItem
	Customer *models.User
}

// InvoiceFileName is the name the PDF is stored and attached under
func InvoiceFileName(order *models.Order) string {
	return fmt.Sprintf("invoice_%s.pdf", order.ID.Hex())
}

// RenderInvoice lays the order out on a single A4 page with a QR code that
// encodes the order id.
func RenderInvoice(inv Invoice) ([]byte, error) {
	order := inv.Order
	qrPNG, err := qrcode.Encode("order:"+order.ID.Hex(), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("Invoice for Order #%s", order.ID.Hex()))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	if inv.Customer != nil {
		pdf.Cell(0, 7, tr(fmt.Sprintf("Customer: %s <%s>", inv.Customer.Username, inv.Customer.Email)))
		pdf.Ln(7)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Payment: %s (%s)", order.PaymentMethod, order.PaymentStatus))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(7)
	if order.ShippingAddress != "" {
		pdf.MultiCell(110, 6, tr("Ship to: "+order.ShippingAddress), "", "L", false)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 20, 35, 35, false, imageOpts, 0, "")

	pdf.SetY(62)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(100, 8, "Product", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Subtotal", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range inv.Items {
		pdf.CellFormat(100, 8, tr(item.ProductTitle), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, item.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, item.Subtotal().StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(150, 9, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 9, order.TotalPrice.StringFixed(2), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
