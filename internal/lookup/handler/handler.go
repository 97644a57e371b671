package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"halal_scanner_backend/internal/lookup/service"
	"halal_scanner_backend/internal/lookup/transport"
	"halal_scanner_backend/platform/apperr"
	"halal_scanner_backend/platform/httpkit"
	"halal_scanner_backend/platform/validator"
)

// Handler handles HTTP requests for lookups.
type Handler struct {
	svc     *service.Service
	val     *validator.Validator
	timeout time.Duration
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgNotFound         = "product not found"
)

// New creates a new lookup handler. timeout bounds a whole lookup.
func New(svc *service.Service, val *validator.Validator, timeout time.Duration) *Handler {
	return &Handler{svc: svc, val: val, timeout: timeout}
}

// Lookup resolves a barcode or product name.
// GET /api/v1/lookup/*key[?strict=true]
func (h *Handler) Lookup(c *gin.Context) {
	req := transport.LookupRequest{
		Key: strings.TrimSpace(strings.TrimPrefix(c.Param("key"), "/")),
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	strict, _ := strconv.ParseBool(c.Query("strict"))

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.svc.Run(ctx, req.Key)
	if httpkit.HandleError(c, err) {
		return
	}
	if strict && !result.Found() {
		httpkit.HandleError(c, apperr.NotFound(msgNotFound).WithDetails(result))
		return
	}
	httpkit.OK(c, result)
}

// Classify runs the classifier on a posted ingredient list.
// POST /api/v1/classify
func (h *Handler) Classify(c *gin.Context) {
	var req transport.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest))
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	httpkit.OK(c, h.svc.Classify(req.Ingredients))
}
