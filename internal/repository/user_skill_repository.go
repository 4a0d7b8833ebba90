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

var ErrUserSkillNotFound = errors.New("user skill not found")

type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	Level            int
	ExperiencePoints int
	UnlockedAt       *time.Time
	LastUpdated      time.Time

	SkillName     string
	Description   string
	SkillType     string
	MaxLevel      int
	Icon          string
	CategoryName  string
	CategoryColor string
}

// GrantRecord carries the pre-computed result of one unlock grant: the final
// ledger values plus the exact level/XP granted by this call for provenance.
type GrantRecord struct {
	UserID            uuid.UUID
	SkillID           uuid.UUID
	JobExperienceID   uuid.UUID
	Level             int
	ExperiencePoints  int
	LevelGranted      int
	ExperienceGranted int
}

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	FindByUserAndSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (UserSkill, error)
	// ApplyGrant upserts the ledger row and appends the provenance row in a
	// single transaction. One call per grant; earlier grants are never
	// rolled back by a later failure.
	ApplyGrant(ctx context.Context, rec GrantRecord) error
	// Upsert is the direct set-level path: no provenance. A fresh row gets
	// unlocked_at = now; an existing row keeps its original unlock time.
	Upsert(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, level int, experiencePoints int) error
	Delete(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error
}

const userSkillSelect = `SELECT us.id, us.user_id, us.skill_id, us.level, us.experience_points, us.unlocked_at, us.last_updated,
		s.name, COALESCE(s.description, ''), s.skill_type, s.max_level, COALESCE(s.icon, ''),
		COALESCE(c.name, ''), COALESCE(c.color, '')
	FROM user_skills us
	JOIN skills s ON s.id = us.skill_id
	LEFT JOIN skill_categories c ON c.id = s.category_id`

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	rows, err := r.db.Query(ctx,
		userSkillSelect+` WHERE us.user_id = $1 ORDER BY us.last_updated DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSkill, 0)
	for rows.Next() {
		us, err := scanUserSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) FindByUserAndSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (UserSkill, error) {
	row := r.db.QueryRow(ctx,
		userSkillSelect+` WHERE us.user_id = $1 AND us.skill_id = $2`,
		userID, skillID,
	)

	us, err := scanUserSkill(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return UserSkill{}, ErrUserSkillNotFound
		}
		return UserSkill{}, err
	}
	return us, nil
}

func (r *PostgresUserSkillRepository) ApplyGrant(ctx context.Context, rec GrantRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, level, experience_points, unlocked_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (user_id, skill_id) DO UPDATE
		 SET level = EXCLUDED.level,
		     experience_points = EXCLUDED.experience_points,
		     last_updated = now()`,
		uuid.New(), rec.UserID, rec.SkillID, rec.Level, rec.ExperiencePoints,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO skill_unlocks (id, job_experience_id, skill_id, level_granted, experience_points_granted)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), rec.JobExperienceID, rec.SkillID, rec.LevelGranted, rec.ExperienceGranted,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresUserSkillRepository) Upsert(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, level int, experiencePoints int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, level, experience_points, unlocked_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (user_id, skill_id) DO UPDATE
		 SET level = EXCLUDED.level,
		     experience_points = EXCLUDED.experience_points,
		     last_updated = now()`,
		uuid.New(), userID, skillID, level, experiencePoints,
	)
	return err
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}

func scanUserSkill(row database.Row) (UserSkill, error) {
	var us UserSkill
	err := row.Scan(
		&us.ID, &us.UserID, &us.SkillID, &us.Level, &us.ExperiencePoints, &us.UnlockedAt, &us.LastUpdated,
		&us.SkillName, &us.Description, &us.SkillType, &us.MaxLevel, &us.Icon,
		&us.CategoryName, &us.CategoryColor,
	)
	return us, err
}
