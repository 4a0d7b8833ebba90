package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"careerquest/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrResumeNotFound = errors.New("resume not found")

type Resume struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ResumeRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Resume, error)
	FindOwned(ctx context.Context, id uuid.UUID, userID uuid.UUID) (Resume, error)
	Create(ctx context.Context, rs Resume) (Resume, error)
	Update(ctx context.Context, rs Resume) (Resume, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM resumes
		 WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		var rs Resume
		if err := rows.Scan(&rs.ID, &rs.UserID, &rs.Title, &rs.Content, &rs.CreatedAt, &rs.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) FindOwned(ctx context.Context, id uuid.UUID, userID uuid.UUID) (Resume, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM resumes
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	var rs Resume
	if err := row.Scan(&rs.ID, &rs.UserID, &rs.Title, &rs.Content, &rs.CreatedAt, &rs.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Resume{}, ErrResumeNotFound
		}
		return Resume{}, err
	}
	return rs, nil
}

func (r *PostgresResumeRepository) Create(ctx context.Context, rs Resume) (Resume, error) {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO resumes (id, user_id, title, content) VALUES ($1, $2, $3, $4)`,
		rs.ID, rs.UserID, rs.Title, rs.Content,
	)
	if err != nil {
		return Resume{}, err
	}
	return r.FindOwned(ctx, rs.ID, rs.UserID)
}

func (r *PostgresResumeRepository) Update(ctx context.Context, rs Resume) (Resume, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE resumes SET title = $1, content = $2, updated_at = now() WHERE id = $3 AND user_id = $4`,
		rs.Title, rs.Content, rs.ID, rs.UserID,
	)
	if err != nil {
		return Resume{}, err
	}
	if rowsAffected == 0 {
		return Resume{}, ErrResumeNotFound
	}
	return r.FindOwned(ctx, rs.ID, rs.UserID)
}

func (r *PostgresResumeRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}
