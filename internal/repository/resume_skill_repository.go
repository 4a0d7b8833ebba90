package repository

import (
	"context"
	"errors"

	"careerquest/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrResumeSkillNotFound = errors.New("skill not in resume")
	ErrResumeSkillExists   = errors.New("skill already in resume")
)

// ResumeSkill is the live joined view of an association: level and XP come
// from the owner's ledger at read time, never from a snapshot.
type ResumeSkill struct {
	SkillID        uuid.UUID
	UserLevel      int
	UserExperience int
	SkillName      string
	Description    string
	SkillType      string
	MaxLevel       int
	Icon           string
	CategoryName   string
	CategoryColor  string
}

type ResumeSkillRepository interface {
	// ListByResume joins through the owner's ledger; associations whose
	// ledger row was deleted are silently absent from the result.
	ListByResume(ctx context.Context, resumeID uuid.UUID, userID uuid.UUID) ([]ResumeSkill, error)
	Add(ctx context.Context, resumeID uuid.UUID, skillID uuid.UUID) error
	Remove(ctx context.Context, resumeID uuid.UUID, skillID uuid.UUID) error
}

type PostgresResumeSkillRepository struct {
	db database.DB
}

func NewPostgresResumeSkillRepository(db database.DB) *PostgresResumeSkillRepository {
	return &PostgresResumeSkillRepository{db: db}
}

func (r *PostgresResumeSkillRepository) ListByResume(ctx context.Context, resumeID uuid.UUID, userID uuid.UUID) ([]ResumeSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rs.skill_id, us.level, us.experience_points,
			s.name, COALESCE(s.description, ''), s.skill_type, s.max_level, COALESCE(s.icon, ''),
			COALESCE(c.name, ''), COALESCE(c.color, '')
		 FROM resume_skills rs
		 JOIN user_skills us ON us.skill_id = rs.skill_id AND us.user_id = $1
		 JOIN skills s ON s.id = rs.skill_id
		 LEFT JOIN skill_categories c ON c.id = s.category_id
		 WHERE rs.resume_id = $2
		 ORDER BY s.name ASC`,
		userID, resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ResumeSkill, 0)
	for rows.Next() {
		var rs ResumeSkill
		if err := rows.Scan(
			&rs.SkillID, &rs.UserLevel, &rs.UserExperience,
			&rs.SkillName, &rs.Description, &rs.SkillType, &rs.MaxLevel, &rs.Icon,
			&rs.CategoryName, &rs.CategoryColor,
		); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeSkillRepository) Add(ctx context.Context, resumeID uuid.UUID, skillID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO resume_skills (resume_id, skill_id) VALUES ($1, $2)`,
		resumeID, skillID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrResumeSkillExists
		}
		return err
	}
	return nil
}

func (r *PostgresResumeSkillRepository) Remove(ctx context.Context, resumeID uuid.UUID, skillID uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM resume_skills WHERE resume_id = $1 AND skill_id = $2`,
		resumeID, skillID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrResumeSkillNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
