// File: internal/api/update_user_request.go
package api

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name     string `form:"name" validate:"required" example:"Ann"`
	Email    string `form:"email" validate:"required,email" example:"ann@x.com"`
	Password string `form:"password" validate:"required,strongpwd" example:"Str0ng!Pass"`
	Role     string `form:"role" validate:"required,oneof=USER ADMIN" example:"USER"`
}
