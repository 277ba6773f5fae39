package dto

import (
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator with cross-field rules of request payloads registered.
func NewValidator() *validatorv10.Validate {
	v := validatorv10.New(validatorv10.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterStructValidation(discountStructValidation, DiscountRequest{})
	return v
}

// jsonFieldName reports fields under the name clients send them with.
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		if form := f.Tag.Get("form"); form != "" {
			return form
		}
		return f.Name
	}
	return name
}

var maxPercentage = decimal.NewFromInt(100)

// discountStructValidation checks the decimal value and rejects inverted validity windows.
func discountStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(DiscountRequest)

	switch {
	case !req.Value.IsPositive():
		sl.ReportError(req.Value, "value", "Value", "gt", "0")
	case req.Type == "percentage" && req.Value.GreaterThan(maxPercentage):
		sl.ReportError(req.Value, "value", "Value", "max_percentage", "100")
	case req.Type == "fixed" && !req.Value.IsInteger():
		sl.ReportError(req.Value, "value", "Value", "whole_rupiah", "")
	}
	if req.StartsAt != nil && req.EndsAt != nil && !req.EndsAt.After(*req.StartsAt) {
		sl.ReportError(req.EndsAt, "ends_at", "EndsAt", "after_starts_at", "")
	}
}

// FieldErrors maps failed fields to the tag that rejected them.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}
