package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pptq-absensi/internal/service"
	"pptq-absensi/pkg/response"
)

// ImportHandler spreadsheet templates and bulk import.
type ImportHandler struct {
	importSvc service.ImportService
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// Template GET /api/v1/import/templates/:kind
func (h *ImportHandler) Template(c *gin.Context) {
	f, err := h.importSvc.Template(c.Param("kind"))
	if err != nil {
		h.handleImportError(c, err)
		return
	}
	sendFile(c, f)
}

// Import POST /api/v1/import/:kind (multipart form field "file")
func (h *ImportHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 14001, "file is required")
		return
	}
	name := strings.ToLower(fh.Filename)
	if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
		response.BadRequest(c, 14002, "only .xlsx files are accepted")
		return
	}

	file, err := fh.Open()
	if err != nil {
		response.BadRequest(c, 14001, "file cannot be read")
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(c.Request.Context(), c.Param("kind"), file)
	if err != nil {
		h.handleImportError(c, err)
		return
	}
	response.Created(c, result)
}

func (h *ImportHandler) handleImportError(c *gin.Context, err error) {
	var headerErr *service.ImportHeaderError
	switch {
	case errors.As(err, &headerErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, 14003, "missing required headers",
			strings.Join(headerErr.Missing, ", "))
	case errors.Is(err, service.ErrImportUnknownKind):
		response.NotFound(c, 14004, "unknown import kind")
	case errors.Is(err, service.ErrImportEmpty):
		response.BadRequest(c, 14005, "file has no data rows")
	case errors.Is(err, service.ErrImportTooManyRows):
		response.ErrorWithDetails(c, http.StatusBadRequest, 14006, "too many rows", err.Error())
	case errors.Is(err, service.ErrImportUnreadable):
		response.BadRequest(c, 14007, "file is not a readable workbook")
	case errors.Is(err, service.ErrImportFailed):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 14008, "import stopped", err.Error())
	default:
		if !handleValidation(c, err) {
			response.InternalError(c)
		}
	}
}
