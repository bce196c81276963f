package analyses

import "errors"

var (
	// ErrMissingFile: a multipart submission arrived without a file field.
	ErrMissingFile = errors.New("no file submitted")
	// ErrUnsupportedMediaType: the uploaded file's declared type is not PDF.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrExtractionFailed: the PDF byte stream could not be converted to text.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrMissingText: no usable text from either submission path.
	ErrMissingText = errors.New("no text found")
	// ErrNotConfigured: the generation credential is absent.
	ErrNotConfigured = errors.New("service not configured")
	// ErrGeneration: the generation call itself failed (network, provider
	// quota, timeout).
	ErrGeneration = errors.New("generation failed")
	// ErrInvalidOutput: the generation output did not parse as JSON.
	ErrInvalidOutput = errors.New("invalid generation output")
)

const (
	errorCodeQuotaExceeded   = "quota_exceeded"
	errorCodeMissingFile     = "missing_file"
	errorCodeUnsupportedType = "unsupported_media_type"
	errorCodeExtraction      = "extraction_failed"
	errorCodeMissingText     = "missing_text"
	errorCodeNotConfigured   = "not_configured"
	errorCodeGeneration      = "generation_failed"
	errorCodeInvalidOutput   = "invalid_generation_output"
	errorCodeInternal        = "internal_error"
)
