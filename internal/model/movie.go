// File: internal/model/movie.go
package model

import "time"

// DefaultImage 未上傳海報時的共用預設檔名，永不刪除
const DefaultImage = "default.png"

// Rating 外部評分，來源缺資料時為 nil
type Rating struct {
	IMDB           *float64 `db:"rating_imdb" json:"imdb,omitempty"`
	RottenTomatoes *float64 `db:"rating_rotten" json:"rotten_tomatoes,omitempty"`
}

type Movie struct {
	ID          int       `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Year        int       `db:"year" json:"year"`
	Description string    `db:"description" json:"description,omitempty"`
	Genre       []string  `db:"genre" json:"genre"`
	Trailer     string    `db:"trailer" json:"trailer"`
	Image       string    `db:"image" json:"image"`
	Rating      Rating    `json:"rating"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
