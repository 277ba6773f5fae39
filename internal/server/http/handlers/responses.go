package handlers

import (
	"github.com/polkiloo/gophershop/internal/domain/model"
	"github.com/polkiloo/gophershop/internal/server/http/dto"
)

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toCategoryResponse(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func toVariantResponse(v model.ProductVariant) dto.VariantResponse {
	return dto.VariantResponse{ID: v.ID, Name: v.Name, Price: v.Price, Weight: v.Weight, Stock: v.Stock}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Category:    p.Category,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Weight:      p.Weight,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
	for _, v := range p.Variants {
		resp.Variants = append(resp.Variants, toVariantResponse(v))
	}
	return resp
}

func toProductPageResponse(page model.ProductPage) dto.ProductPageResponse {
	items := make([]dto.ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toProductResponse(p))
	}
	return dto.ProductPageResponse{Items: items, Total: page.Total, Page: page.Page, PerPage: page.PerPage}
}

func toCartResponse(s model.CartSummary) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(s.Items))
	for _, i := range s.Items {
		items = append(items, dto.CartItemResponse{
			ID:          i.ID,
			ProductID:   i.ProductID,
			VariantID:   i.VariantID,
			ProductName: i.ProductName,
			ProductSlug: i.ProductSlug,
			VariantName: i.VariantName,
			Price:       i.Price,
			Quantity:    i.Quantity,
			Weight:      i.Weight,
			Subtotal:    i.Subtotal(),
		})
	}
	resp := dto.CartResponse{
		Items:          items,
		Subtotal:       s.Subtotal,
		TotalWeight:    s.TotalWeight,
		DiscountAmount: s.DiscountAmount,
		Total:          s.Total,
	}
	if s.Discount != nil {
		resp.DiscountCode = s.Discount.Code
	}
	return resp
}

func toQuoteResponse(q model.CheckoutQuote) dto.QuoteResponse {
	return dto.QuoteResponse{
		Cart:         toCartResponse(q.Summary),
		Courier:      q.Courier,
		ShippingCost: q.ShippingCost,
		GrandTotal:   q.GrandTotal,
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		Number:         o.Number,
		Status:         string(o.Status),
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		ShippingCost:   o.ShippingCost,
		Total:          o.Total,
		TotalWeight:    o.TotalWeight,
		Courier:        o.Courier,
		TrackingNumber: o.TrackingNumber,
		Address: dto.AddressResponse{
			RecipientName: o.Address.RecipientName,
			Phone:         o.Address.Phone,
			Address:       o.Address.Address,
			City:          o.Address.City,
			PostalCode:    o.Address.PostalCode,
		},
		Note:      o.Note,
		CreatedAt: o.CreatedAt,
	}
	for _, d := range o.Details {
		resp.Details = append(resp.Details, dto.OrderDetailResponse{
			ProductID:   d.ProductID,
			VariantID:   d.VariantID,
			ProductName: d.ProductName,
			VariantName: d.VariantName,
			Price:       d.Price,
			Quantity:    d.Quantity,
			Subtotal:    d.Subtotal,
		})
	}
	if p := o.Payment; p != nil {
		resp.Payment = &dto.PaymentResponse{
			Status:    string(p.Status),
			Amount:    p.Amount,
			Method:    p.Method,
			Reference: p.Reference,
			PaidAt:    p.PaidAt,
			ExpiresAt: p.ExpiresAt,
		}
		if p.Status == model.PaymentStatusUnpaid {
			resp.Payment.InvoiceURL = p.InvoiceURL
		}
	}
	return resp
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toRefundResponse(r model.Refund) dto.RefundResponse {
	return dto.RefundResponse{
		ID:            r.ID,
		OrderNumber:   r.OrderNumber,
		Amount:        r.Amount,
		Reason:        r.Reason,
		Status:        string(r.Status),
		FailureReason: r.FailureReason,
		AdminNote:     r.AdminNote,
		CreatedAt:     r.CreatedAt,
	}
}

func toDiscountResponse(d model.Discount) dto.DiscountResponse {
	return dto.DiscountResponse{
		ID:                d.ID,
		Code:              d.Code,
		Type:              string(d.Type),
		Value:             d.Value.InexactFloat64(),
		MaxDiscountAmount: d.MaxDiscountAmount,
		MinimumPurchase:   d.MinimumPurchase,
		UsageLimit:        d.UsageLimit,
		UsageCount:        d.UsageCount,
		StartsAt:          d.StartsAt,
		EndsAt:            d.EndsAt,
		IsActive:          d.IsActive,
	}
}
