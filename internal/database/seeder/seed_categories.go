package seeder

import (
	"context"
	"fmt"

	"careerquest/internal/database"
)

type CategoriesSeeder struct{}

func (CategoriesSeeder) Name() string { return "skill_categories" }

func (CategoriesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skill_categories", "id", "name", "description", "icon", "color"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name        string
		Description string
		Icon        string
		Color       string
	}{
		{Name: "Programming Languages", Description: "Technical programming skills", Icon: "💻", Color: "#4A90E2"},
		{Name: "Frameworks & Libraries", Description: "Development frameworks and tools", Icon: "⚙️", Color: "#50C878"},
		{Name: "Databases", Description: "Database technologies", Icon: "🗄️", Color: "#FF6B6B"},
		{Name: "DevOps & Cloud", Description: "Infrastructure and deployment", Icon: "☁️", Color: "#FFA500"},
		{Name: "Communication", Description: "Interpersonal and communication skills", Icon: "💬", Color: "#9B59B6"},
		{Name: "Leadership", Description: "Management and leadership abilities", Icon: "👥", Color: "#E74C3C"},
		{Name: "Problem Solving", Description: "Analytical and problem-solving skills", Icon: "🧩", Color: "#3498DB"},
		{Name: "Design", Description: "UI/UX and design skills", Icon: "🎨", Color: "#E91E63"},
	}

	for _, it := range items {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO skill_categories (id, name, description, icon, color)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4)
			 ON CONFLICT (name) DO NOTHING`,
			it.Name, it.Description, it.Icon, it.Color,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
