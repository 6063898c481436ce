package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/product-cache/internal/model"
	"github.com/deppfellow/product-cache/internal/server"
	"github.com/deppfellow/product-cache/internal/service"
)

const (
	// CreatedMessage is the body of a successful POST /product.
	CreatedMessage = "successfully cached values"

	// DeletedMessage is the body of a successful DELETE /product.
	DeletedMessage = "successfully deleted values"
)

// ProductHandler serves the /product resource.
type ProductHandler struct {
	Handler
	products *service.ProductService
}

func NewProductHandler(s *server.Server, products *service.ProductService) *ProductHandler {
	return &ProductHandler{
		Handler:  NewHandler(s),
		products: products,
	}
}

func NewProductRequest() *model.Product {
	return &model.Product{}
}

// FetchProduct echoes the product in the request body back to the caller.
func (h *ProductHandler) FetchProduct(c echo.Context, product *model.Product) (*model.Product, error) {
	return h.products.Fetch(c.Request().Context(), product)
}

// CreateProduct stores the product in the request body under its id.
func (h *ProductHandler) CreateProduct(c echo.Context, product *model.Product) error {
	return h.products.Create(c.Request().Context(), product)
}

// DeleteProduct removes the product whose id is in the request body.
func (h *ProductHandler) DeleteProduct(c echo.Context, product *model.Product) error {
	return h.products.Delete(c.Request().Context(), product)
}

// LookupProductRequest is the path-only payload of GET /product/:id.
type LookupProductRequest struct {
	ID int64 `param:"id" json:"-"`
}

func (r *LookupProductRequest) Validate() error {
	return nil
}

func NewLookupProductRequest() *LookupProductRequest {
	return &LookupProductRequest{}
}

// LookupProduct reads the stored product with the id from the path.
func (h *ProductHandler) LookupProduct(c echo.Context, req *LookupProductRequest) (*model.Product, error) {
	return h.products.Lookup(c.Request().Context(), req.ID)
}
