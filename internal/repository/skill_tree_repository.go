package repository

import (
	"context"

	"careerquest/internal/database"

	"github.com/google/uuid"
)

type SkillTreeNode struct {
	NodeID        uuid.UUID
	SkillID       uuid.UUID
	ParentSkillID *uuid.UUID
	PositionX     int
	PositionY     int
	Tier          int
	SkillName     string
	Description   string
	SkillType     string
	MaxLevel      int
	Icon          string
	CategoryName  string
	CategoryColor string
}

type UserSkillTreeNode struct {
	SkillTreeNode
	UserLevel      int
	UserExperience int
	Unlocked       bool
}

type SkillTreeRepository interface {
	ListNodes(ctx context.Context) ([]SkillTreeNode, error)
	ListNodesForUser(ctx context.Context, userID uuid.UUID) ([]UserSkillTreeNode, error)
}

type PostgresSkillTreeRepository struct {
	db database.DB
}

func NewPostgresSkillTreeRepository(db database.DB) *PostgresSkillTreeRepository {
	return &PostgresSkillTreeRepository{db: db}
}

func (r *PostgresSkillTreeRepository) ListNodes(ctx context.Context) ([]SkillTreeNode, error) {
	rows, err := r.db.Query(ctx,
		`SELECT stn.id, stn.skill_id, stn.parent_skill_id, stn.position_x, stn.position_y, stn.tier,
			s.name, COALESCE(s.description, ''), s.skill_type, s.max_level, COALESCE(s.icon, ''),
			COALESCE(c.name, ''), COALESCE(c.color, '')
		 FROM skill_tree_nodes stn
		 JOIN skills s ON s.id = stn.skill_id
		 LEFT JOIN skill_categories c ON c.id = s.category_id
		 ORDER BY stn.tier ASC, stn.position_y ASC, stn.position_x ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillTreeNode, 0)
	for rows.Next() {
		var n SkillTreeNode
		if err := rows.Scan(
			&n.NodeID, &n.SkillID, &n.ParentSkillID, &n.PositionX, &n.PositionY, &n.Tier,
			&n.SkillName, &n.Description, &n.SkillType, &n.MaxLevel, &n.Icon,
			&n.CategoryName, &n.CategoryColor,
		); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListNodesForUser overlays the caller's ledger onto the full topology.
// Nodes without a ledger row come back level 0, xp 0, locked.
func (r *PostgresSkillTreeRepository) ListNodesForUser(ctx context.Context, userID uuid.UUID) ([]UserSkillTreeNode, error) {
	rows, err := r.db.Query(ctx,
		`SELECT stn.id, stn.skill_id, stn.parent_skill_id, stn.position_x, stn.position_y, stn.tier,
			s.name, COALESCE(s.description, ''), s.skill_type, s.max_level, COALESCE(s.icon, ''),
			COALESCE(c.name, ''), COALESCE(c.color, ''),
			COALESCE(us.level, 0), COALESCE(us.experience_points, 0),
			(us.unlocked_at IS NOT NULL)
		 FROM skill_tree_nodes stn
		 JOIN skills s ON s.id = stn.skill_id
		 LEFT JOIN skill_categories c ON c.id = s.category_id
		 LEFT JOIN user_skills us ON us.skill_id = s.id AND us.user_id = $1
		 ORDER BY stn.tier ASC, stn.position_y ASC, stn.position_x ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSkillTreeNode, 0)
	for rows.Next() {
		var n UserSkillTreeNode
		if err := rows.Scan(
			&n.NodeID, &n.SkillID, &n.ParentSkillID, &n.PositionX, &n.PositionY, &n.Tier,
			&n.SkillName, &n.Description, &n.SkillType, &n.MaxLevel, &n.Icon,
			&n.CategoryName, &n.CategoryColor,
			&n.UserLevel, &n.UserExperience, &n.Unlocked,
		); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
