package repository

import (
	"context"
	"database/sql"
	"errors"

	"careerquest/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillMissing = errors.New("skill not in catalog")

type SkillCategory struct {
	ID          uuid.UUID
	Name        string
	Description string
	Icon        string
	Color       string
}

type Skill struct {
	ID            uuid.UUID
	CategoryID    *uuid.UUID
	Name          string
	Description   string
	SkillType     string
	MaxLevel      int
	Icon          string
	CategoryName  string
	CategoryColor string
}

type SkillFilter struct {
	CategoryID *uuid.UUID
	SkillType  string
}

type SkillRepository interface {
	ListCategories(ctx context.Context) ([]SkillCategory, error)
	ListSkills(ctx context.Context, f SkillFilter) ([]Skill, error)
	GetSkillByID(ctx context.Context, id uuid.UUID) (Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListCategories(ctx context.Context) ([]SkillCategory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, COALESCE(description, ''), COALESCE(icon, ''), COALESCE(color, '')
		 FROM skill_categories
		 ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillCategory, 0)
	for rows.Next() {
		var c SkillCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.Color); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context, f SkillFilter) ([]Skill, error) {
	query := `SELECT s.id, s.category_id, s.name, COALESCE(s.description, ''), s.skill_type, s.max_level,
			COALESCE(s.icon, ''), COALESCE(c.name, ''), COALESCE(c.color, '')
		FROM skills s
		LEFT JOIN skill_categories c ON c.id = s.category_id
		WHERE 1=1`
	args := make([]any, 0, 2)

	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		query += ` AND s.category_id = $1`
	}
	if f.SkillType != "" {
		args = append(args, f.SkillType)
		if len(args) == 1 {
			query += ` AND s.skill_type = $1`
		} else {
			query += ` AND s.skill_type = $2`
		}
	}
	query += ` ORDER BY s.name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.SkillType, &s.MaxLevel, &s.Icon, &s.CategoryName, &s.CategoryColor); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) GetSkillByID(ctx context.Context, id uuid.UUID) (Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT s.id, s.category_id, s.name, COALESCE(s.description, ''), s.skill_type, s.max_level,
			COALESCE(s.icon, ''), COALESCE(c.name, ''), COALESCE(c.color, '')
		 FROM skills s
		 LEFT JOIN skill_categories c ON c.id = s.category_id
		 WHERE s.id = $1`,
		id,
	)

	var s Skill
	if err := row.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.SkillType, &s.MaxLevel, &s.Icon, &s.CategoryName, &s.CategoryColor); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Skill{}, ErrSkillMissing
		}
		return Skill{}, err
	}
	return s, nil
}
