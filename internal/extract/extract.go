package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MimePDF is the only accepted document media type.
const MimePDF = "application/pdf"

// TextExtractor converts an uploaded document payload into plain text. It is
// an injectable capability so handlers can be tested with deterministic fakes.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType string) (string, error)
}

// PDFExtractor extracts text from PDF bytes using github.com/ledongthuc/pdf.
type PDFExtractor struct{}

// ExtractText pulls plain text from an in-memory PDF payload.
func (PDFExtractor) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if normalizeMimeType(mimeType) != MimePDF {
		return "", fmt.Errorf("unsupported mime type: %s", mimeType)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty pdf data")
	}
	return extractPDF(data)
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}

var _ TextExtractor = PDFExtractor{}
