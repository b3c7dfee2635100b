// Package http provides HTTP handlers for product key generation and validation.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nandolawson/keyforge95/internal/httputil"
	"github.com/nandolawson/keyforge95/internal/productkey/domain"
	"github.com/nandolawson/keyforge95/internal/productkey/http/dto"
	productKeyUseCase "github.com/nandolawson/keyforge95/internal/productkey/usecase"
	customValidation "github.com/nandolawson/keyforge95/internal/validation"
)

// ProductKeyHandler handles HTTP requests for product key operations.
type ProductKeyHandler struct {
	productKeyUseCase productKeyUseCase.ProductKeyUseCase
	logger            *slog.Logger
}

// NewProductKeyHandler creates a new product key handler with required dependencies.
func NewProductKeyHandler(
	productKeyUseCase productKeyUseCase.ProductKeyUseCase,
	logger *slog.Logger,
) *ProductKeyHandler {
	return &ProductKeyHandler{
		productKeyUseCase: productKeyUseCase,
		logger:            logger,
	}
}

// GenerateHandler generates one or more product keys of the requested type.
// POST /v1/product-keys/generate
// Returns 201 Created with the keys, 422 for an invalid request and 403 when generation
// is disabled.
func (h *ProductKeyHandler) GenerateHandler(c *gin.Context) {
	var req dto.GenerateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	keyType, err := domain.ParseKeyType(req.KeyType)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	keys, err := h.productKeyUseCase.GenerateBatch(c.Request.Context(), keyType, req.GetCount())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProductKeysToGenerateResponse(keyType, keys))
}

// ValidateHandler validates a product key.
// POST /v1/product-keys/validate
// A rejected key is a regular answer: 200 OK with valid=false and the rejection reason.
func (h *ProductKeyHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	keyType, err := h.productKeyUseCase.Validate(c.Request.Context(), req.Key)
	if err != nil {
		response, ok := dto.MapRejectionToValidateResponse(err)
		if !ok {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusOK, response)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeyTypeToValidateResponse(keyType))
}
