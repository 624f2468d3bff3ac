package pdfgen

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// CertificateParams описывает содержимое сертификата участия.
type CertificateParams struct {
	ParticipantName string
	EventName       string
	Role            string
	IssuedAt        time.Time
}

// RenderCertificate рендерит PDF-сертификат формата A4 в память.
func RenderCertificate(params CertificateParams) ([]byte, error) {
	issuedAt := params.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Рамка по периметру листа
	pdf.SetLineWidth(0.5)
	pdf.Rect(10, 10, 190, 277, "D")

	pdf.SetFont("Helvetica", "BU", 24)
	pdf.SetY(40)
	pdf.CellFormat(0, 12, "Certificate of Participation", "", 1, "C", false, 0, "")

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 10, params.ParticipantName, "", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 8, fmt.Sprintf("has participated in %s.", params.EventName), "", 1, "C", false, 0, "")

	if params.Role != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 14)
		pdf.CellFormat(0, 8, fmt.Sprintf("Role: %s", params.Role), "", 1, "C", false, 0, "")
	}

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued: %s", issuedAt.Format("Mon Jan 2 2006")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate pdf: %w", err)
	}
	return buf.Bytes(), nil
}
