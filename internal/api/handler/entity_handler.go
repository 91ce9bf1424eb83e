package handler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"pptq-absensi/internal/service"
	"pptq-absensi/pkg/response"
)

// EntityHandler CRUD endpoints for one entity kind.
type EntityHandler[T any] struct {
	svc  service.EntityService[T]
	kind string
}

// NewEntityHandler creates an EntityHandler; kind names the entity in messages.
func NewEntityHandler[T any](svc service.EntityService[T], kind string) *EntityHandler[T] {
	return &EntityHandler[T]{svc: svc, kind: kind}
}

// List GET /api/v1/<kind>
func (h *EntityHandler[T]) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.handleEntityError(c, err)
		return
	}
	response.OKList(c, items, len(items))
}

// Get GET /api/v1/<kind>/:id
func (h *EntityHandler[T]) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleEntityError(c, err)
		return
	}
	response.OK(c, item)
}

// Create POST /api/v1/<kind>
func (h *EntityHandler[T]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), &item)
	if err != nil {
		h.handleEntityError(c, err)
		return
	}
	response.Created(c, created)
}

// Update overlays the body on the stored row; omitted fields keep their values.
// PUT /api/v1/<kind>/:id
func (h *EntityHandler[T]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		response.BadRequest(c, 10001, "invalid parameters")
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, func(cur *T) error {
		if err := json.Unmarshal(body, cur); err != nil {
			return err
		}
		return binding.Validator.ValidateStruct(cur)
	})
	if err != nil {
		h.handleEntityError(c, err)
		return
	}
	response.OK(c, updated)
}

// Delete DELETE /api/v1/<kind>/:id
func (h *EntityHandler[T]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.handleEntityError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *EntityHandler[T]) handleEntityError(c *gin.Context, err error) {
	handleEntityError(c, h.kind, err)
}

func handleEntityError(c *gin.Context, kind string, err error) {
	switch {
	case errors.Is(err, service.ErrEntityNotFound):
		response.NotFound(c, 15001, kind+" not found")
	case errors.Is(err, service.ErrEntityConflict):
		response.Conflict(c, 15002, kind+" already exists")
	case errors.Is(err, service.ErrEntityIDChanged):
		response.BadRequest(c, 15003, "id cannot be changed")
	case errors.Is(err, service.ErrStudentNotFound):
		response.BadRequest(c, 15004, "santri does not exist")
	default:
		if !handleValidation(c, err) {
			response.InternalError(c)
		}
	}
}
