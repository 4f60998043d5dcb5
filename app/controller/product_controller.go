package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"tienda-admin/models"
	"tienda-admin/orderbuilder"
	"tienda-admin/repository"
	"tienda-admin/service"
	"tienda-admin/variants"
)

// ProductController handles HTTP requests for the product catalogue
type ProductController struct {
	repository repository.ProductRepositoryInterface
	images     *service.ProductImageService
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface, images *service.ProductImageService) *ProductController {
	return &ProductController{
		repository: repo,
		images:     images,
	}
}

// List handles GET /admin/products?search=buso
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	logRequest("ListProducts", r)

	products, err := c.repository.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, "ListProducts", err)
		return
	}
	writeJSON(w, http.StatusOK, models.ProductListResponse{Products: products})
}

// Create handles POST /admin/products
// The variant matrix is generated from attributeGroups; combinations only seed stock.
// Example response: the stored product with "totalStock" filled in.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	logRequest("CreateProduct", r)

	var req models.CreateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.BasePrice.IsNegative() {
		http.Error(w, "basePrice cannot be negative", http.StatusBadRequest)
		return
	}
	if req.Stock < 0 {
		http.Error(w, "stock cannot be negative", http.StatusBadRequest)
		return
	}
	if req.VariantType == "" {
		req.VariantType = orderbuilder.VariantNone
	}
	if req.VariantType != orderbuilder.VariantNone && req.VariantType != orderbuilder.VariantColorSize {
		http.Error(w, fmt.Sprintf("invalid variantType %q", req.VariantType), http.StatusBadRequest)
		return
	}

	matrix, err := variants.Build(req.AttributeGroups, req.Combinations)
	if err != nil {
		writeError(w, "CreateProduct", err)
		return
	}

	product := &models.Product{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Description:      strings.TrimSpace(req.Description),
		SKUPrefix:        strings.TrimSpace(req.SKUPrefix),
		BasePrice:        req.BasePrice,
		VariantType:      req.VariantType,
		ImageDriveFileID: strings.TrimSpace(req.ImageDriveFileID),
		Stock:            req.Stock,
	}
	if err := c.repository.Create(r.Context(), product, matrix); err != nil {
		writeError(w, "CreateProduct", err)
		return
	}

	zap.L().Info("✅ CreateProduct: created", zap.String("id", product.ID))
	writeJSON(w, http.StatusCreated, product)
}

// Get handles GET /admin/products/{id}
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	logRequest("GetProduct", r)

	product, err := c.repository.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "GetProduct", err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Image handles GET /admin/products/{id}/image?size=thumb|medium
func (c *ProductController) Image(w http.ResponseWriter, r *http.Request) {
	logRequest("ProductImage", r)

	data, err := c.images.GetImage(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("size"))
	if err != nil {
		writeError(w, "ProductImage", err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
