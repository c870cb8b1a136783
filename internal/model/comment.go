// File: internal/model/comment.go
package model

import "time"

type Comment struct {
	ID        int       `db:"id" json:"id"`
	MovieID   int       `db:"movie_id" json:"movie_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
