package api

import (
	"time"

	"moviehub/internal/model"
)

// swagger:model api.RatingResponse
type RatingResponse struct {
	IMDB           *float64 `json:"imdb,omitempty" example:"8.3"`
	RottenTomatoes *float64 `json:"rotten_tomatoes,omitempty" example:"88"`
}

// swagger:model api.MovieResponse
type MovieResponse struct {
	ID          int            `json:"id" example:"1"`
	Title       string         `json:"title" example:"Heat"`
	Year        int            `json:"year" example:"1995"`
	Description string         `json:"description,omitempty"`
	Genre       []string       `json:"genre" example:"crime,thriller"`
	Trailer     string         `json:"trailer" example:"https://youtu.be/2GfZl4kuVNI"`
	Image       string         `json:"image" example:"default.png"`
	Rating      RatingResponse `json:"rating"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewMovieResponse 由 model.Movie 組出回應
func NewMovieResponse(m model.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Year:        m.Year,
		Description: m.Description,
		Genre:       m.Genre,
		Trailer:     m.Trailer,
		Image:       m.Image,
		Rating: RatingResponse{
			IMDB:           m.Rating.IMDB,
			RottenTomatoes: m.Rating.RottenTomatoes,
		},
		CreatedAt: m.CreatedAt,
	}
}
