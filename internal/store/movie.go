package store

import (
	"context"
	"fmt"

	"moviehub/internal/database"
	"moviehub/internal/model"
)

func ListMovies(ctx context.Context, db database.DB) ([]model.Movie, error) {
	rows, err := db.Query(ctx,
		`SELECT id, title, year, description, genre, trailer, image,
		        rating_imdb, rating_rotten, created_at
		 FROM movies ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListMovies: %w", err)
	}
	defer rows.Close()

	var movies []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.Year,
			&m.Description,
			&m.Genre,
			&m.Trailer,
			&m.Image,
			&m.Rating.IMDB,
			&m.Rating.RottenTomatoes,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListMovies: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListMovies: %w", err)
	}
	return movies, nil
}

func GetMovieByID(ctx context.Context, db database.DB, movieID int) (*model.Movie, error) {
	row := db.QueryRow(ctx,
		`SELECT id, title, year, description, genre, trailer, image,
		        rating_imdb, rating_rotten, created_at
		 FROM movies WHERE id = $1`,
		movieID,
	)
	m := &model.Movie{}
	if err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Year,
		&m.Description,
		&m.Genre,
		&m.Trailer,
		&m.Image,
		&m.Rating.IMDB,
		&m.Rating.RottenTomatoes,
		&m.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetMovieByID: %w", err)
	}
	return m, nil
}

func CreateMovie(ctx context.Context, db database.DB, m *model.Movie) (*model.Movie, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO movies (title, year, description, genre, trailer, image, rating_imdb, rating_rotten)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		m.Title,
		m.Year,
		m.Description,
		m.Genre,
		m.Trailer,
		m.Image,
		m.Rating.IMDB,
		m.Rating.RottenTomatoes,
	)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateMovie: %w", err)
	}
	return m, nil
}

// UpdateMovie 全量取代電影欄位
func UpdateMovie(ctx context.Context, db database.DB, m *model.Movie) error {
	_, err := db.Exec(ctx,
		`UPDATE movies
		 SET title = $1, year = $2, description = $3, genre = $4,
		     trailer = $5, image = $6, rating_imdb = $7, rating_rotten = $8
		 WHERE id = $9`,
		m.Title,
		m.Year,
		m.Description,
		m.Genre,
		m.Trailer,
		m.Image,
		m.Rating.IMDB,
		m.Rating.RottenTomatoes,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateMovie: %w", err)
	}
	return nil
}

// DeleteMovie 刪除並回傳被刪除的電影，供呼叫端釋放海報檔
// 查無資料時回傳 pgx.ErrNoRows
func DeleteMovie(ctx context.Context, db database.DB, movieID int) (*model.Movie, error) {
	row := db.QueryRow(ctx,
		`DELETE FROM movies WHERE id = $1
		 RETURNING id, title, year, description, genre, trailer, image,
		           rating_imdb, rating_rotten, created_at`,
		movieID,
	)
	m := &model.Movie{}
	if err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Year,
		&m.Description,
		&m.Genre,
		&m.Trailer,
		&m.Image,
		&m.Rating.IMDB,
		&m.Rating.RottenTomatoes,
		&m.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("DeleteMovie: %w", err)
	}
	return m, nil
}
