// File: internal/api/validation.go
package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError 單一欄位的驗證錯誤
// swagger:model api.FieldError
type FieldError struct {
	Field   string `json:"field" example:"password"`
	Message string `json:"message" example:"must contain upper, lower, digit and symbol (min 8 chars)"`
}

// ValidationErrorResponse 422 回應，一次列出所有違規欄位
// swagger:model api.ValidationErrorResponse
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// NewValidator 建立服務共用的 validator，並註冊 strongpwd 別名
// (最短 8 碼且含大小寫字母、數字、符號)
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterAlias("strongpwd",
		"min=8,containsany=!@#$%^&*(),containsany=0123456789,containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ,containsany=abcdefghijklmnopqrstuvwxyz")
	return v
}

// NewValidationErrors 將 validator 錯誤展開為欄位清單
func NewValidationErrors(err error) ValidationErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrorResponse{Errors: []FieldError{{Message: err.Error()}}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return ValidationErrorResponse{Errors: out}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "strongpwd", "containsany":
		return "must contain upper, lower, digit and symbol (min 8 chars)"
	case "min":
		return fmt.Sprintf("must have at least %s elements or characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be > %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
