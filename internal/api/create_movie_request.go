package api

// swagger:model api.CreateMovieRequest
type CreateMovieRequest struct {
	Title        string   `form:"title" validate:"required" example:"Heat"`
	Year         int      `form:"year" validate:"required,gte=1888" example:"1995"`
	Description  string   `form:"description" example:"A heist crew and a detective collide."`
	Genre        []string `form:"genre" validate:"required,min=1,dive,required" example:"crime,thriller"`
	Trailer      string   `form:"trailer" validate:"required,url" example:"https://youtu.be/2GfZl4kuVNI"`
	RatingIMDB   *float64 `form:"rating_imdb" validate:"omitempty,gte=0,lte=10" example:"8.3"`
	RatingRotten *float64 `form:"rating_rotten" validate:"omitempty,gte=0,lte=100" example:"88"`
}
