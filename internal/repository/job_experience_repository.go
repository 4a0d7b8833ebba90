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

var ErrJobExperienceNotFound = errors.New("job experience not found")

type JobExperience struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Company      string
	Position     string
	Description  string
	StartDate    *time.Time
	EndDate      *time.Time
	SkillsGained string
	CreatedAt    time.Time
}

type SkillUnlock struct {
	ID                uuid.UUID
	JobExperienceID   uuid.UUID
	SkillID           uuid.UUID
	SkillName         string
	LevelGranted      int
	ExperienceGranted int
	CreatedAt         time.Time
}

type JobExperienceRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]JobExperience, error)
	// FindOwned conflates "missing" and "not yours" into ErrJobExperienceNotFound.
	FindOwned(ctx context.Context, id uuid.UUID, userID uuid.UUID) (JobExperience, error)
	Create(ctx context.Context, je JobExperience) (JobExperience, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	ListUnlocks(ctx context.Context, jobExperienceID uuid.UUID) ([]SkillUnlock, error)
}

const jobExperienceSelect = `SELECT id, user_id, company, position, COALESCE(description, ''),
	start_date, end_date, COALESCE(skills_gained, ''), created_at
	FROM job_experiences`

type PostgresJobExperienceRepository struct {
	db database.DB
}

func NewPostgresJobExperienceRepository(db database.DB) *PostgresJobExperienceRepository {
	return &PostgresJobExperienceRepository{db: db}
}

func (r *PostgresJobExperienceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]JobExperience, error) {
	rows, err := r.db.Query(ctx,
		jobExperienceSelect+` WHERE user_id = $1 ORDER BY start_date DESC NULLS LAST, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobExperience, 0)
	for rows.Next() {
		je, err := scanJobExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, je)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobExperienceRepository) FindOwned(ctx context.Context, id uuid.UUID, userID uuid.UUID) (JobExperience, error) {
	row := r.db.QueryRow(ctx,
		jobExperienceSelect+` WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	je, err := scanJobExperience(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return JobExperience{}, ErrJobExperienceNotFound
		}
		return JobExperience{}, err
	}
	return je, nil
}

func (r *PostgresJobExperienceRepository) Create(ctx context.Context, je JobExperience) (JobExperience, error) {
	if je.ID == uuid.Nil {
		je.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_experiences (id, user_id, company, position, description, start_date, end_date, skills_gained)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		je.ID, je.UserID, je.Company, je.Position, nullIfEmpty(je.Description), je.StartDate, je.EndDate, nullIfEmpty(je.SkillsGained),
	)
	if err != nil {
		return JobExperience{}, err
	}
	return r.FindOwned(ctx, je.ID, je.UserID)
}

func (r *PostgresJobExperienceRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM job_experiences WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrJobExperienceNotFound
	}
	return nil
}

func (r *PostgresJobExperienceRepository) ListUnlocks(ctx context.Context, jobExperienceID uuid.UUID) ([]SkillUnlock, error) {
	rows, err := r.db.Query(ctx,
		`SELECT su.id, su.job_experience_id, su.skill_id, s.name, su.level_granted, su.experience_points_granted, su.created_at
		 FROM skill_unlocks su
		 JOIN skills s ON s.id = su.skill_id
		 WHERE su.job_experience_id = $1
		 ORDER BY su.created_at ASC`,
		jobExperienceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillUnlock, 0)
	for rows.Next() {
		var su SkillUnlock
		if err := rows.Scan(&su.ID, &su.JobExperienceID, &su.SkillID, &su.SkillName, &su.LevelGranted, &su.ExperienceGranted, &su.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, su)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJobExperience(row database.Row) (JobExperience, error) {
	var je JobExperience
	err := row.Scan(
		&je.ID, &je.UserID, &je.Company, &je.Position, &je.Description,
		&je.StartDate, &je.EndDate, &je.SkillsGained, &je.CreatedAt,
	)
	return je, err
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
