package analyses

import (
	"context"
	"fmt"
	"strings"

	"contract-backend/internal/extract"
)

// SubmissionKind tags the two accepted submission shapes.
type SubmissionKind string

const (
	KindText     SubmissionKind = "text"
	KindDocument SubmissionKind = "document"
)

// Submission is the tagged variant resolved once at the transport boundary:
// either inline text or an uploaded document with its declared media type.
type Submission struct {
	Kind         SubmissionKind
	Text         string
	FileBytes    []byte
	DeclaredType string
}

// Normalize converts a submission into canonical plain text.
//
// Text submissions fail with ErrMissingText when empty after trimming.
// Document submissions require a PDF declared type; the declared type is
// checked before any extraction is attempted. Extraction errors map to
// ErrExtractionFailed, and extraction that yields no usable text maps to
// ErrMissingText.
func (s *Service) Normalize(ctx context.Context, sub Submission) (string, error) {
	switch sub.Kind {
	case KindText:
		text := strings.TrimSpace(sub.Text)
		if text == "" {
			return "", ErrMissingText
		}
		return text, nil

	case KindDocument:
		if len(sub.FileBytes) == 0 {
			return "", ErrMissingFile
		}
		if mediaType(sub.DeclaredType) != extract.MimePDF {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, sub.DeclaredType)
		}
		text, err := s.Extractor.ExtractText(ctx, sub.FileBytes, sub.DeclaredType)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return "", ErrMissingText
		}
		return text, nil

	default:
		return "", ErrMissingText
	}
}

func mediaType(declared string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
}
