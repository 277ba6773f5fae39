package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/server/http/dto"
	"github.com/polkiloo/gophershop/internal/server/http/middleware"
)

var validate = dto.NewValidator()

const (
	msgInvalidRequest = "Data yang dikirim tidak valid"
	msgInternal       = "Terjadi kesalahan pada server"
)

type failure struct {
	status  int
	message string
}

// failures maps domain errors to the reply shown to the user.
var failures = []struct {
	err error
	failure
}{
	{domainErrors.ErrNotFound, failure{http.StatusNotFound, "Data tidak ditemukan"}},
	{domainErrors.ErrAlreadyExists, failure{http.StatusConflict, "Data sudah terdaftar"}},
	{domainErrors.ErrInUse, failure{http.StatusConflict, "Data masih digunakan dan tidak dapat dihapus"}},
	{domainErrors.ErrInvalidCredentials, failure{http.StatusUnauthorized, "Email atau kata sandi salah"}},
	{domainErrors.ErrForbidden, failure{http.StatusForbidden, "Akses ditolak"}},
	{domainErrors.ErrInvalidOrderNumber, failure{http.StatusUnprocessableEntity, "Nomor pesanan tidak valid"}},
	{domainErrors.ErrInvalidAmount, failure{http.StatusBadRequest, "Nominal tidak valid"}},
	{domainErrors.ErrInvalidQuantity, failure{http.StatusBadRequest, "Jumlah barang tidak valid"}},
	{domainErrors.ErrInsufficientStock, failure{http.StatusConflict, "Stok produk tidak mencukupi"}},
	{domainErrors.ErrInactiveProduct, failure{http.StatusBadRequest, "Produk tidak tersedia"}},
	{domainErrors.ErrInvalidDiscount, failure{http.StatusBadRequest, "Data diskon tidak valid"}},
	{domainErrors.ErrInvalidRole, failure{http.StatusBadRequest, "Peran pengguna tidak valid"}},
	{domainErrors.ErrInvalidInput, failure{http.StatusBadRequest, msgInvalidRequest}},
	{domainErrors.ErrCartEmpty, failure{http.StatusBadRequest, "Keranjang belanja masih kosong"}},
	{domainErrors.ErrCartTooHeavy, failure{http.StatusBadRequest, "Berat total belanja melebihi batas maksimum"}},
	{domainErrors.ErrDiscountMinimumNotMet, failure{http.StatusBadRequest, "Total belanja belum memenuhi minimum pembelian diskon"}},
	{domainErrors.ErrDiscountUnavailable, failure{http.StatusBadRequest, "Kode diskon tidak berlaku"}},
	{domainErrors.ErrDiscountAlreadyUsed, failure{http.StatusBadRequest, "Kode diskon sudah pernah digunakan"}},
	{domainErrors.ErrUnknownCourier, failure{http.StatusBadRequest, "Kurir tidak tersedia"}},
	{domainErrors.ErrInvalidStatusTransition, failure{http.StatusConflict, "Status pesanan tidak dapat diubah"}},
	{domainErrors.ErrTrackingNumberRequired, failure{http.StatusBadRequest, "Nomor resi wajib diisi"}},
	{domainErrors.ErrOrderNotCancelable, failure{http.StatusConflict, "Pesanan tidak dapat dibatalkan"}},
	{domainErrors.ErrPaymentAlreadyProcessed, failure{http.StatusBadRequest, "Pembayaran sudah diproses"}},
	{domainErrors.ErrUnsupportedPaymentStatus, failure{http.StatusBadRequest, "Status pembayaran tidak dikenali"}},
	{domainErrors.ErrRefundNotAllowed, failure{http.StatusConflict, "Pesanan tidak dapat direfund"}},
	{domainErrors.ErrRefundInProgress, failure{http.StatusConflict, "Refund untuk pesanan ini sedang diproses"}},
	{domainErrors.ErrRefundNotApproved, failure{http.StatusBadRequest, "Refund belum disetujui"}},
}

func lookupFailure(err error) (failure, bool) {
	for _, f := range failures {
		if errors.Is(err, f.err) {
			return f.failure, true
		}
	}
	return failure{http.StatusInternalServerError, msgInternal}, false
}

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// respondError writes the JSON failure reply for err.
func respondError(c *gin.Context, err error) {
	f, known := lookupFailure(err)
	if !known {
		_ = c.Error(err)
	}
	c.JSON(f.status, dto.MessageResponse{Success: false, Message: f.message})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, dto.MessageResponse{Success: status < http.StatusBadRequest, Message: message})
}

// bindJSON decodes and validates the request body. It writes the 400 reply
// itself and reports false when the handler must stop.
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		respondMessage(c, http.StatusBadRequest, msgInvalidRequest)
		return false
	}
	return validateRequest(c, out)
}

func bindQuery(c *gin.Context, out any) bool {
	if err := c.ShouldBindQuery(out); err != nil {
		respondMessage(c, http.StatusBadRequest, msgInvalidRequest)
		return false
	}
	return validateRequest(c, out)
}

func validateRequest(c *gin.Context, out any) bool {
	if err := validate.Struct(out); err != nil {
		var ve validatorv10.ValidationErrors
		if !errors.As(err, &ve) {
			respondMessage(c, http.StatusBadRequest, msgInvalidRequest)
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": msgInvalidRequest,
			"fields":  dto.FieldErrors(ve),
		})
		return false
	}
	return true
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondMessage(c, http.StatusBadRequest, msgInvalidRequest)
		return 0, false
	}
	return id, true
}
