package credentials

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// Renderer materializes an encoded credential as a scannable QR PNG on disk.
// Rendering happens after the booking transaction commits; a render failure
// never invalidates the ticket because the stored payload can be re-rendered.
type Renderer struct {
	outputDir string
	size      int
}

func NewRenderer(outputDir string, size int) *Renderer {
	if size <= 0 {
		size = 256
	}
	return &Renderer{outputDir: outputDir, size: size}
}

// RenderQR writes the QR PNG for a ticket and returns its path.
func (r *Renderer) RenderQR(ticketNumber, encodedPayload string) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create QR output directory: %w", err)
	}

	path := filepath.Join(r.outputDir, fmt.Sprintf("%s.png", ticketNumber))
	if err := qrcode.WriteFile(encodedPayload, qrcode.Medium, r.size, path); err != nil {
		return "", fmt.Errorf("failed to render QR code: %w", err)
	}
	return path, nil
}

// QRBytes renders the QR PNG in memory, for embedding into the eTicket PDF.
func (r *Renderer) QRBytes(encodedPayload string) ([]byte, error) {
	qrBytes, err := qrcode.Encode(encodedPayload, qrcode.Medium, r.size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return qrBytes, nil
}
