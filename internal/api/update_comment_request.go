package api

// swagger:model api.UpdateCommentRequest
type UpdateCommentRequest struct {
	Text string `form:"text" validate:"required" example:"Great pacing."`
}
