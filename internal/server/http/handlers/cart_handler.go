package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gophershop/internal/server/http/dto"
)

// CartHandler manages the basket of the signed-in customer.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	h.respondCart(c, http.StatusOK)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.facade.AddToCart(c.Request.Context(), CurrentUserID(c), req.ProductID, req.VariantID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, http.StatusCreated)
}

// UpdateItem handles PUT /api/cart/items/:id.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.facade.UpdateCartItem(c.Request.Context(), CurrentUserID(c), itemID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, http.StatusOK)
}

// RemoveItem handles DELETE /api/cart/items/:id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.RemoveCartItem(c.Request.Context(), CurrentUserID(c), itemID); err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, http.StatusOK)
}

// ApplyDiscount handles POST /api/cart/discount.
func (h *CartHandler) ApplyDiscount(c *gin.Context) {
	var req dto.ApplyDiscountRequest
	if !bindJSON(c, &req) {
		return
	}
	summary, err := h.facade.ApplyDiscount(c.Request.Context(), CurrentUserID(c), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(*summary))
}

// RemoveDiscount handles DELETE /api/cart/discount.
func (h *CartHandler) RemoveDiscount(c *gin.Context) {
	if err := h.facade.RemoveDiscount(c.Request.Context(), CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, http.StatusOK)
}

func (h *CartHandler) respondCart(c *gin.Context, status int) {
	summary, err := h.facade.Cart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, toCartResponse(*summary))
}
