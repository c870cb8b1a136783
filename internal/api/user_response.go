package api

import (
	"time"

	"moviehub/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"Ann"`
	Email     string    `json:"email" example:"ann@x.com"`
	Avatar    string    `json:"avatar" example:"default.png"`
	Role      string    `json:"role" example:"USER"`
	IsActive  bool      `json:"is_active" example:"true"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse 由 model.User 組出回應，密碼哈希永不外流
func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
