package store

import (
	"context"
	"fmt"

	"moviehub/internal/database"
	"moviehub/internal/model"
)

func CreateComment(ctx context.Context, db database.DB, cm *model.Comment) (*model.Comment, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO comments (movie_id, user_id, text)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		cm.MovieID,
		cm.UserID,
		cm.Text,
	)
	if err := row.Scan(&cm.ID, &cm.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateComment: %w", err)
	}
	return cm, nil
}

func ListCommentsByMovie(ctx context.Context, db database.DB, movieID int) ([]model.Comment, error) {
	rows, err := db.Query(ctx,
		`SELECT id, movie_id, user_id, text, created_at
		 FROM comments WHERE movie_id = $1 ORDER BY id`,
		movieID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCommentsByMovie: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var cm model.Comment
		if err := rows.Scan(
			&cm.ID,
			&cm.MovieID,
			&cm.UserID,
			&cm.Text,
			&cm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListCommentsByMovie: %w", err)
		}
		comments = append(comments, cm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCommentsByMovie: %w", err)
	}
	return comments, nil
}

// UpdateComment 僅取代留言文字，查無資料時回傳 pgx.ErrNoRows
func UpdateComment(ctx context.Context, db database.DB, commentID int, text string) (*model.Comment, error) {
	row := db.QueryRow(ctx,
		`UPDATE comments SET text = $1 WHERE id = $2
		 RETURNING id, movie_id, user_id, text, created_at`,
		text,
		commentID,
	)
	cm := &model.Comment{}
	if err := row.Scan(
		&cm.ID,
		&cm.MovieID,
		&cm.UserID,
		&cm.Text,
		&cm.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("UpdateComment: %w", err)
	}
	return cm, nil
}

// DeleteComment 查無資料時回傳 pgx.ErrNoRows
func DeleteComment(ctx context.Context, db database.DB, commentID int) error {
	row := db.QueryRow(ctx,
		`DELETE FROM comments WHERE id = $1 RETURNING id`,
		commentID,
	)
	var id int
	if err := row.Scan(&id); err != nil {
		return fmt.Errorf("DeleteComment: %w", err)
	}
	return nil
}
