package analyses

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contract-backend/internal/quota"
	"contract-backend/internal/shared/server/respond"
	"contract-backend/internal/shared/telemetry"
	"contract-backend/internal/usage"
)

const maxUploadSize = 10 << 20 // 10MB

// User-facing messages follow the product's pt-BR surface.
const (
	msgQuotaExceeded  = "Limite de análises atingido. Como este é um projeto de portfólio, o uso é limitado a 3 análises por pessoa."
	msgMissingFile    = "Nenhum arquivo enviado."
	msgOnlyPDF        = "Apenas arquivos PDF são permitidos."
	msgExtraction     = "Erro ao processar o arquivo PDF."
	msgMissingText    = "Texto não encontrado no arquivo ou na requisição."
	msgInvalidBody    = "Corpo da requisição inválido."
	msgNotConfigured  = "Serviço de análise não configurado."
	msgAnalysisFailed = "Falha ao analisar o contrato"
)

// Handler orchestrates the analysis request: quota admission, submission
// normalization, contract enforcement, and the quota cookie re-issue on
// success.
type Handler struct {
	Svc *Service

	// Usage is the optional advisory server-side counter; nil disables
	// recording. Never consulted for admission.
	Usage *usage.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, usageSvc *usage.Service) *Handler {
	return &Handler{Svc: svc, Usage: usageSvc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	analysisID := uuid.NewString()
	c.Set("analysisId", analysisID)

	state := quota.FromRequest(c)
	if !state.Admit() {
		// Rejection has no side effects: the cookie is not touched.
		respond.Error(c, http.StatusTooManyRequests, errorCodeQuotaExceeded, msgQuotaExceeded, "")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	sub, ok := h.submissionFrom(c)
	if !ok {
		return
	}
	c.Set("submissionKind", string(sub.Kind))

	text, err := h.Svc.Normalize(c.Request.Context(), sub)
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.Svc.Analyze(c.Request.Context(), text)
	if err != nil {
		h.fail(c, err)
		return
	}

	// The only mutation of client-held state happens here, on success.
	next := state.Next()
	quota.Write(c, next)
	h.recordUsage(c)

	telemetry.Info("analysis.complete", map[string]any{
		"analysis_id":      analysisID,
		"request_id":       c.GetString("requestId"),
		"submission_kind":  string(sub.Kind),
		"risk_level":       string(result.RiskLevel),
		"red_flags":        len(result.RedFlags),
		"good_points":      len(result.GoodPoints),
		"usage_count":      next.Count,
		"analysis_version": h.Svc.AnalysisVersion,
	})

	respond.JSON(c, http.StatusOK, result)
}

// submissionFrom resolves the transport shape into the tagged submission
// variant. It writes the error response itself when the request is malformed.
func (h *Handler) submissionFrom(c *gin.Context) (Submission, bool) {
	contentType := c.GetHeader("Content-Type")

	if strings.Contains(contentType, "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			respond.Error(c, http.StatusBadRequest, errorCodeMissingFile, msgMissingFile, "")
			return Submission{}, false
		}

		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, errorCodeMissingFile, msgMissingFile, "")
			return Submission{}, false
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, errorCodeInternal, msgAnalysisFailed, err.Error())
			return Submission{}, false
		}

		return Submission{
			Kind:         KindDocument,
			FileBytes:    data,
			DeclaredType: fileHeader.Header.Get("Content-Type"),
		}, true
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, errorCodeMissingText, msgInvalidBody, "")
		return Submission{}, false
	}

	return Submission{Kind: KindText, Text: body.Text}, true
}

// fail maps the error taxonomy to HTTP statuses. Quota is never consumed on
// any of these paths.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingFile):
		respond.Error(c, http.StatusBadRequest, errorCodeMissingFile, msgMissingFile, "")
	case errors.Is(err, ErrUnsupportedMediaType):
		respond.Error(c, http.StatusBadRequest, errorCodeUnsupportedType, msgOnlyPDF, "")
	case errors.Is(err, ErrExtractionFailed):
		respond.Error(c, http.StatusInternalServerError, errorCodeExtraction, msgExtraction, err.Error())
	case errors.Is(err, ErrMissingText):
		respond.Error(c, http.StatusBadRequest, errorCodeMissingText, msgMissingText, "")
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusInternalServerError, errorCodeNotConfigured, msgNotConfigured, "")
	case errors.Is(err, ErrInvalidOutput):
		respond.Error(c, http.StatusInternalServerError, errorCodeInvalidOutput, msgAnalysisFailed, err.Error())
	case errors.Is(err, ErrGeneration):
		respond.Error(c, http.StatusInternalServerError, errorCodeGeneration, msgAnalysisFailed, err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, errorCodeInternal, msgAnalysisFailed, err.Error())
	}
}

func (h *Handler) recordUsage(c *gin.Context) {
	if h.Usage == nil {
		return
	}
	if _, err := h.Usage.Record(c.Request.Context(), usage.ClientKey(c)); err != nil {
		telemetry.Warn("usage.record.failed", map[string]any{
			"err":        err.Error(),
			"request_id": c.GetString("requestId"),
		})
	}
}
