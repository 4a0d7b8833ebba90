package seeder

import (
	"context"
	"fmt"

	"careerquest/internal/database"
)

// TreeSeed places one skill in the unlock topology. An empty Parent means a
// root node.
type TreeSeed struct {
	Skill  string
	Parent string
	Tier   int
}

func defaultTopology() []TreeSeed {
	return []TreeSeed{
		{Skill: "JavaScript", Tier: 1},
		{Skill: "Python", Tier: 1},
		{Skill: "SQL", Tier: 1},
		{Skill: "Team Communication", Tier: 1},
		{Skill: "Critical Thinking", Tier: 1},

		{Skill: "React", Parent: "JavaScript", Tier: 2},
		{Skill: "Node.js", Parent: "JavaScript", Tier: 2},
		{Skill: "TypeScript", Parent: "JavaScript", Tier: 2},
		{Skill: "Express", Parent: "Node.js", Tier: 2},
		{Skill: "MongoDB", Parent: "SQL", Tier: 2},
		{Skill: "PostgreSQL", Parent: "SQL", Tier: 2},
		{Skill: "Public Speaking", Parent: "Team Communication", Tier: 2},
		{Skill: "Written Communication", Parent: "Team Communication", Tier: 2},
		{Skill: "Debugging", Parent: "Critical Thinking", Tier: 2},

		{Skill: "Vue.js", Parent: "React", Tier: 3},
		{Skill: "Angular", Parent: "TypeScript", Tier: 3},
		{Skill: "Docker", Parent: "Node.js", Tier: 3},
		{Skill: "Git", Parent: "Node.js", Tier: 3},
		{Skill: "Team Leadership", Parent: "Public Speaking", Tier: 3},
		{Skill: "Project Management", Parent: "Written Communication", Tier: 3},
		{Skill: "Mentoring", Parent: "Team Leadership", Tier: 3},

		{Skill: "Kubernetes", Parent: "Docker", Tier: 4},
		{Skill: "AWS", Parent: "Docker", Tier: 4},
		{Skill: "Redis", Parent: "PostgreSQL", Tier: 4},
	}
}

// ValidateTopology rejects a parent graph containing a cycle. Each skill is
// walked up its parent chain with a visited set; revisiting a node on the
// same walk means the chain loops.
func ValidateTopology(seeds []TreeSeed) error {
	parents := make(map[string]string, len(seeds))
	for _, s := range seeds {
		if s.Skill == "" {
			return fmt.Errorf("topology entry with empty skill")
		}
		if _, dup := parents[s.Skill]; dup {
			return fmt.Errorf("skill %q appears twice in topology", s.Skill)
		}
		parents[s.Skill] = s.Parent
	}

	for _, s := range seeds {
		visited := map[string]struct{}{}
		cur := s.Skill
		for cur != "" {
			if _, seen := visited[cur]; seen {
				return fmt.Errorf("cycle detected through skill %q", cur)
			}
			visited[cur] = struct{}{}
			cur = parents[cur]
		}
	}
	return nil
}

type TreeSeeder struct{}

func (TreeSeeder) Name() string { return "skill_tree_nodes" }

func (TreeSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skill_tree_nodes", "id", "skill_id", "parent_skill_id", "position_x", "position_y", "tier"); err != nil {
		return err
	}

	seeds := defaultTopology()
	if err := ValidateTopology(seeds); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	xByTier := map[int]int{}
	for _, s := range seeds {
		x := xByTier[s.Tier]
		xByTier[s.Tier] += 200
		y := (s.Tier - 1) * 200

		var parent any
		if s.Parent != "" {
			parent = s.Parent
		}

		if _, err := tx.Exec(
			ctx,
			`INSERT INTO skill_tree_nodes (id, skill_id, parent_skill_id, position_x, position_y, tier)
			 SELECT gen_random_uuid(), s.id, p.id, $3, $4, $5
			 FROM skills s
			 LEFT JOIN skills p ON p.name = $2
			 WHERE s.name = $1
			 ON CONFLICT (skill_id) DO NOTHING`,
			s.Skill, parent, x, y, s.Tier,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
