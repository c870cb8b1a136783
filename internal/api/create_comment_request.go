package api

// swagger:model api.CreateCommentRequest
type CreateCommentRequest struct {
	MovieID int    `form:"movie_id" validate:"required,gt=0" example:"1"`
	Text    string `form:"text" validate:"required" example:"Great pacing."`
}
