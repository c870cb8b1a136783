package api

import (
	"time"

	"moviehub/internal/model"
)

// swagger:model api.CommentResponse
type CommentResponse struct {
	ID        int       `json:"id" example:"1"`
	MovieID   int       `json:"movie_id" example:"1"`
	UserID    int       `json:"user_id" example:"42"`
	Text      string    `json:"text" example:"Great pacing."`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse 由 model.Comment 組出回應
func NewCommentResponse(cm model.Comment) CommentResponse {
	return CommentResponse{
		ID:        cm.ID,
		MovieID:   cm.MovieID,
		UserID:    cm.UserID,
		Text:      cm.Text,
		CreatedAt: cm.CreatedAt,
	}
}
