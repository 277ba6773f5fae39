package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/server/http/dto"
)

// CatalogHandler serves storefront browsing.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, toCategoryResponse(category))
	}
	c.JSON(http.StatusOK, out)
}

// Products handles GET /api/products.
func (h *CatalogHandler) Products(c *gin.Context) {
	var query dto.ProductQuery
	if !bindQuery(c, &query) {
		return
	}

	page, err := h.facade.Products(c.Request.Context(), productFilter(query))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductPageResponse(*page))
}

// Product handles GET /api/products/:slug.
func (h *CatalogHandler) Product(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

func productFilter(q dto.ProductQuery) model.ProductFilter {
	return model.ProductFilter{
		CategorySlug: q.Category,
		Search:       q.Search,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		Sort:         model.ProductSort(q.Sort),
		Page:         q.Page,
		PerPage:      q.PerPage,
	}
}
