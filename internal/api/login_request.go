package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email" example:"ann@x.com"`
	Password string `form:"password" validate:"required,min=6" example:"Str0ng!Pass"`
}
