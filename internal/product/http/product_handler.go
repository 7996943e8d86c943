// Package http provides HTTP handlers for product listing, search and owner-scoped changes.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	authHTTP "github.com/allisson/storefront/internal/auth/http"
	apperrors "github.com/allisson/storefront/internal/errors"
	"github.com/allisson/storefront/internal/httputil"
	"github.com/allisson/storefront/internal/product/domain"
	"github.com/allisson/storefront/internal/product/http/dto"
	"github.com/allisson/storefront/internal/product/usecase"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productUseCase usecase.UseCase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		logger:         logger,
	}
}

// ListHandler lists products newest first.
// GET /v1/products?limit= - Public. limit defaults to 50, max 100.
func (h *ProductHandler) ListHandler(c *gin.Context) {
	limit, err := httputil.ParseLimit(c, domain.DefaultListLimit, domain.MaxListLimit)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	products, err := h.productUseCase.ListProducts(c.Request.Context(), limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductsToListResponse(products))
}

// LatestHandler lists the most recent products for the landing page.
// GET /v1/products/latest?limit= - Public. limit defaults to 5.
func (h *ProductHandler) LatestHandler(c *gin.Context) {
	limit, err := httputil.ParseLimit(c, domain.DefaultLatestLimit, domain.MaxListLimit)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	products, err := h.productUseCase.LatestProducts(c.Request.Context(), limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductsToListResponse(products))
}

// SearchHandler filters products by name or description.
// GET /v1/products/search?q=&sort=&limit= - Public.
func (h *ProductHandler) SearchHandler(c *gin.Context) {
	limit, err := httputil.ParseLimit(c, domain.DefaultListLimit, domain.MaxListLimit)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	products, err := h.productUseCase.SearchProducts(c.Request.Context(), domain.SearchQuery{
		Term:  c.Query("q"),
		Sort:  domain.SortOrder(c.Query("sort")),
		Limit: limit,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductsToListResponse(products))
}

// GetHandler retrieves a product by ID.
// GET /v1/products/:id - Public.
func (h *ProductHandler) GetHandler(c *gin.Context) {
	productID, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.productUseCase.GetProduct(c.Request.Context(), productID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductToResponse(product))
}

// CreateHandler creates a product owned by the current session.
// POST /v1/products - Requires SessionMiddleware. Returns 201 Created.
func (h *ProductHandler) CreateHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	product, err := h.productUseCase.CreateProduct(c.Request.Context(), session.UserID, req.ToCreateProductInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProductToResponse(product))
}

// UpdateHandler partially updates a product.
// PUT /v1/products/:id - Requires SessionMiddleware; only the owner may update.
func (h *ProductHandler) UpdateHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	productID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	product, err := h.productUseCase.UpdateProduct(
		c.Request.Context(),
		session.UserID,
		productID,
		req.ToProductChanges(),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductToResponse(product))
}

// DeleteHandler deletes a product.
// DELETE /v1/products/:id - Requires SessionMiddleware; only the owner may delete.
func (h *ProductHandler) DeleteHandler(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	productID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.productUseCase.DeleteProduct(c.Request.Context(), session.UserID, productID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteProductResponse{Success: true})
}

func (h *ProductHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid product ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return productID, true
}

func (h *ProductHandler) session(c *gin.Context) (*authDomain.Session, bool) {
	session, ok := authHTTP.GetSession(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return nil, false
	}
	return session, true
}
