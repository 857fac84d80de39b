package credentials

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"ticketly/internal/tickets"
)

// ETicketGenerator renders a single-page printable eTicket with the
// credential QR embedded. The PDF is generated on demand from the stored
// ticket row and is never persisted.
type ETicketGenerator struct {
	renderer *Renderer
}

func NewETicketGenerator(renderer *Renderer) *ETicketGenerator {
	return &ETicketGenerator{renderer: renderer}
}

// Generate renders the eTicket PDF for a ticket. The ticket must have its
// Event association loaded.
func (g *ETicketGenerator) Generate(ticket *tickets.Ticket) ([]byte, error) {
	if ticket.Event == nil {
		return nil, fmt.Errorf("ticket %s has no event loaded", ticket.ID)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	pdf.SetAutoPageBreak(false, 0)

	// Header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 15, "TICKETLY OFFICIAL eTICKET")
	pdf.Ln(20)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(8)

	// Ticket summary + QR
	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 55, "F")

	pdf.SetXY(20, yStart+7)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "TICKET SUMMARY")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Ticket: %s", ticket.TicketNumber))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Seat: %s", ticket.SeatNumber))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Attendee: %s", ticket.AttendeeName))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Paid: %.2f %s", ticket.FinalPrice, ticket.Currency))

	qrBytes, err := g.renderer.QRBytes(ticket.CredentialPayload)
	if err != nil {
		return nil, err
	}
	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qrBytes))
	pdf.ImageOptions("qr", 145, yStart+5, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 63)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "Present this QR code at the gate for check-in.")
	pdf.Ln(10)

	// Event details
	drawSectionTitle(pdf, "EVENT DETAILS")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Event: %s", ticket.Event.Name))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Venue: %s", ticket.Event.Venue))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Starts: %s", ticket.Event.StartsAt.Format(time.RFC1123)))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Valid until: %s", ticket.ValidUntil.Format(time.RFC1123)))
	pdf.Ln(10)

	// Payment details
	drawSectionTitle(pdf, "PAYMENT INFORMATION")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Method: %s", ticket.PaymentMethod))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", ticket.PaymentStatus))
	pdf.Ln(6)
	if ticket.TransactionID != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Transaction: %s", ticket.TransactionID))
		pdf.Ln(6)
	}
	if ticket.Discount > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Early bird discount: %.2f %s", ticket.Discount, ticket.Currency))
		pdf.Ln(6)
	}

	// Footer
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, 285, 195, 285)
	pdf.SetY(288)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 8, "Ticketly. Keep this ticket safe; the QR code admits one person.", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render eTicket PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 9, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
}
