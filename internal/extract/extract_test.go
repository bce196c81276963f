package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestExtractTextRejectsNonPDFMime(t *testing.T) {
	_, err := PDFExtractor{}.ExtractText(context.Background(), []byte("hello"), "text/plain")
	if err == nil {
		t.Fatal("expected unsupported mime error for text/plain")
	}
	if !strings.Contains(err.Error(), "unsupported mime type") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTextRejectsEmptyPayload(t *testing.T) {
	_, err := PDFExtractor{}.ExtractText(context.Background(), nil, "application/pdf")
	if err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestExtractTextRejectsCorruptPDF(t *testing.T) {
	_, err := PDFExtractor{}.ExtractText(context.Background(), []byte("not a pdf at all"), "application/pdf")
	if err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
}

func TestExtractTextMimeParameterIgnored(t *testing.T) {
	data := buildMinimalPDF("Contrato de teste")
	text, err := PDFExtractor{}.ExtractText(context.Background(), data, "application/pdf; charset=binary")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "Contrato") {
		t.Fatalf("expected extracted text to contain Contrato, got %q", text)
	}
}

func TestExtractTextFromMinimalPDF(t *testing.T) {
	data := buildMinimalPDF("Multa de 50% por rescisao antecipada")
	text, err := PDFExtractor{}.ExtractText(context.Background(), data, "application/pdf")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "Multa") {
		t.Fatalf("expected extracted text to contain Multa, got %q", text)
	}
}

// buildMinimalPDF assembles a single-page PDF containing the given text,
// computing xref offsets as objects are appended.
func buildMinimalPDF(text string) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 0, 5)

	buf.WriteString("%PDF-1.4\n")

	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)

	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	addObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n")
	addObj("4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	addObj(fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))

	xrefStart := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefStart))

	return buf.Bytes()
}
