package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/server/http/dto"
)

// AdminHandler exposes back-office endpoints. Routes are guarded by
// middleware.AdminRequired.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.facade.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, count := range stats.ByStatus {
		byStatus[string(status)] = count
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		TotalOrders: stats.TotalOrders,
		ByStatus:    byStatus,
		Revenue:     stats.Revenue,
	})
}

// Products handles GET /api/admin/products.
func (h *AdminHandler) Products(c *gin.Context) {
	var query dto.ProductQuery
	if !bindQuery(c, &query) {
		return
	}
	page, err := h.facade.AdminProducts(c.Request.Context(), productFilter(query))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductPageResponse(*page))
}

// Product handles GET /api/admin/products/:id.
func (h *AdminHandler) Product(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.facade.AdminProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// CreateProduct handles POST /api/admin/products.
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.facade.CreateProduct(c.Request.Context(), productFromRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*product))
}

// UpdateProduct handles PUT /api/admin/products/:id.
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product := productFromRequest(req)
	product.ID = id
	updated, err := h.facade.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*updated))
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Produk berhasil dihapus")
}

// CreateVariant handles POST /api/admin/products/:id/variants.
func (h *AdminHandler) CreateVariant(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.VariantRequest
	if !bindJSON(c, &req) {
		return
	}
	variant, err := h.facade.CreateVariant(c.Request.Context(), variantFromRequest(productID, 0, req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVariantResponse(*variant))
}

// UpdateVariant handles PUT /api/admin/products/:id/variants/:variantID.
func (h *AdminHandler) UpdateVariant(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	variantID, ok := pathID(c, "variantID")
	if !ok {
		return
	}
	var req dto.VariantRequest
	if !bindJSON(c, &req) {
		return
	}
	variant, err := h.facade.UpdateVariant(c.Request.Context(), variantFromRequest(productID, variantID, req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVariantResponse(*variant))
}

// DeleteVariant handles DELETE /api/admin/products/:id/variants/:variantID.
func (h *AdminHandler) DeleteVariant(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	variantID, ok := pathID(c, "variantID")
	if !ok {
		return
	}
	if err := h.facade.DeleteVariant(c.Request.Context(), productID, variantID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Varian berhasil dihapus")
}

// CreateCategory handles POST /api/admin/categories.
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.facade.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(*category))
}

// UpdateCategory handles PUT /api/admin/categories/:id.
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.facade.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(*category))
}

// DeleteCategory handles DELETE /api/admin/categories/:id.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Kategori berhasil dihapus")
}

// Discounts handles GET /api/admin/discounts.
func (h *AdminHandler) Discounts(c *gin.Context) {
	discounts, err := h.facade.Discounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.DiscountResponse, 0, len(discounts))
	for _, d := range discounts {
		out = append(out, toDiscountResponse(d))
	}
	c.JSON(http.StatusOK, out)
}

// Discount handles GET /api/admin/discounts/:id.
func (h *AdminHandler) Discount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	discount, err := h.facade.Discount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDiscountResponse(*discount))
}

// CreateDiscount handles POST /api/admin/discounts.
func (h *AdminHandler) CreateDiscount(c *gin.Context) {
	var req dto.DiscountRequest
	if !bindJSON(c, &req) {
		return
	}
	discount, err := h.facade.CreateDiscount(c.Request.Context(), discountFromRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDiscountResponse(*discount))
}

// UpdateDiscount handles PUT /api/admin/discounts/:id.
func (h *AdminHandler) UpdateDiscount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DiscountRequest
	if !bindJSON(c, &req) {
		return
	}
	discount := discountFromRequest(req)
	discount.ID = id
	updated, err := h.facade.UpdateDiscount(c.Request.Context(), discount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDiscountResponse(*updated))
}

// DeleteDiscount handles DELETE /api/admin/discounts/:id.
func (h *AdminHandler) DeleteDiscount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteDiscount(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Diskon berhasil dihapus")
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.facade.Users(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

// SetUserRole handles PUT /api/admin/users/:id/role.
func (h *AdminHandler) SetUserRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RoleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.facade.SetUserRole(c.Request.Context(), CurrentUserID(c), id, model.Role(req.Role)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Peran pengguna berhasil diubah")
}

// Orders handles GET /api/admin/orders?status=.
func (h *AdminHandler) Orders(c *gin.Context) {
	var status *model.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := model.OrderStatus(raw)
		if !s.Valid() {
			respondMessage(c, http.StatusBadRequest, msgInvalidRequest)
			return
		}
		status = &s
	}
	orders, err := h.facade.AdminOrders(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Order handles GET /api/admin/orders/:number.
func (h *AdminHandler) Order(c *gin.Context) {
	order, err := h.facade.AdminOrder(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UpdateOrderStatus handles PUT /api/admin/orders/:number/status.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req dto.OrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("number"), model.OrderStatus(req.Status), req.TrackingNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Status pesanan berhasil diperbarui")
}

// CancelOrder handles POST /api/admin/orders/:number/cancel.
func (h *AdminHandler) CancelOrder(c *gin.Context) {
	if err := h.facade.AdminCancelOrder(c.Request.Context(), c.Param("number")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Pesanan berhasil dibatalkan")
}

// Refunds handles GET /api/admin/refunds?status=.
func (h *AdminHandler) Refunds(c *gin.Context) {
	var status *model.RefundStatus
	if raw := c.Query("status"); raw != "" {
		s := model.RefundStatus(raw)
		if !validRefundStatus(s) {
			respondMessage(c, http.StatusBadRequest, msgInvalidRequest)
			return
		}
		status = &s
	}
	refunds, err := h.facade.Refunds(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.RefundResponse, 0, len(refunds))
	for _, r := range refunds {
		out = append(out, toRefundResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

// ApproveRefund handles POST /api/admin/refunds/:id/approve.
func (h *AdminHandler) ApproveRefund(c *gin.Context) {
	h.decideRefund(c, h.facade.ApproveRefund)
}

// RejectRefund handles POST /api/admin/refunds/:id/reject.
func (h *AdminHandler) RejectRefund(c *gin.Context) {
	h.decideRefund(c, h.facade.RejectRefund)
}

func (h *AdminHandler) decideRefund(c *gin.Context, decide func(ctx context.Context, id int64, note string) (*model.Refund, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RefundDecisionRequest
	if !bindJSON(c, &req) {
		return
	}
	refund, err := decide(c.Request.Context(), id, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRefundResponse(*refund))
}

func validRefundStatus(s model.RefundStatus) bool {
	switch s {
	case model.RefundStatusPending, model.RefundStatusApproved, model.RefundStatusSucceeded,
		model.RefundStatusFailed, model.RefundStatusRejected:
		return true
	}
	return false
}

func productFromRequest(req dto.ProductRequest) model.Product {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return model.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Weight:      req.Weight,
		Stock:       req.Stock,
		IsActive:    active,
	}
}

func variantFromRequest(productID, variantID int64, req dto.VariantRequest) model.ProductVariant {
	return model.ProductVariant{
		ID:        variantID,
		ProductID: productID,
		Name:      req.Name,
		Price:     req.Price,
		Weight:    req.Weight,
		Stock:     req.Stock,
	}
}

func discountFromRequest(req dto.DiscountRequest) model.Discount {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return model.Discount{
		Code:              req.Code,
		Type:              model.DiscountType(req.Type),
		Value:             req.Value,
		MaxDiscountAmount: req.MaxDiscountAmount,
		MinimumPurchase:   req.MinimumPurchase,
		UsageLimit:        req.UsageLimit,
		StartsAt:          req.StartsAt,
		EndsAt:            req.EndsAt,
		IsActive:          active,
	}
}
