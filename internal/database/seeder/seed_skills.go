package seeder

import (
	"context"
	"fmt"

	"careerquest/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "category_id", "name", "description", "skill_type", "max_level", "icon"); err != nil {
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
		SkillType   string
		Category    string
		MaxLevel    int
		Icon        string
	}{
		{Name: "JavaScript", Description: "JavaScript programming language", SkillType: "hard", Category: "Programming Languages", MaxLevel: 10, Icon: "🟨"},
		{Name: "Python", Description: "Python programming language", SkillType: "hard", Category: "Programming Languages", MaxLevel: 10, Icon: "🐍"},
		{Name: "Java", Description: "Java programming language", SkillType: "hard", Category: "Programming Languages", MaxLevel: 10, Icon: "☕"},
		{Name: "C++", Description: "C++ programming language", SkillType: "hard", Category: "Programming Languages", MaxLevel: 10, Icon: "⚡"},
		{Name: "TypeScript", Description: "TypeScript programming language", SkillType: "hard", Category: "Programming Languages", MaxLevel: 10, Icon: "🔷"},

		{Name: "React", Description: "React framework", SkillType: "hard", Category: "Frameworks & Libraries", MaxLevel: 10, Icon: "⚛️"},
		{Name: "Node.js", Description: "Node.js runtime", SkillType: "hard", Category: "Frameworks & Libraries", MaxLevel: 10, Icon: "🟢"},
		{Name: "Express", Description: "Express.js framework", SkillType: "hard", Category: "Frameworks & Libraries", MaxLevel: 10, Icon: "🚂"},
		{Name: "Vue.js", Description: "Vue.js framework", SkillType: "hard", Category: "Frameworks & Libraries", MaxLevel: 10, Icon: "💚"},
		{Name: "Angular", Description: "Angular framework", SkillType: "hard", Category: "Frameworks & Libraries", MaxLevel: 10, Icon: "🅰️"},

		{Name: "SQL", Description: "SQL database language", SkillType: "hard", Category: "Databases", MaxLevel: 10, Icon: "🗃️"},
		{Name: "MongoDB", Description: "MongoDB NoSQL database", SkillType: "hard", Category: "Databases", MaxLevel: 10, Icon: "🍃"},
		{Name: "PostgreSQL", Description: "PostgreSQL database", SkillType: "hard", Category: "Databases", MaxLevel: 10, Icon: "🐘"},
		{Name: "Redis", Description: "Redis in-memory database", SkillType: "hard", Category: "Databases", MaxLevel: 10, Icon: "🔴"},

		{Name: "Docker", Description: "Docker containerization", SkillType: "hard", Category: "DevOps & Cloud", MaxLevel: 10, Icon: "🐳"},
		{Name: "Kubernetes", Description: "Kubernetes orchestration", SkillType: "hard", Category: "DevOps & Cloud", MaxLevel: 10, Icon: "⚓"},
		{Name: "AWS", Description: "Amazon Web Services", SkillType: "hard", Category: "DevOps & Cloud", MaxLevel: 10, Icon: "☁️"},
		{Name: "Git", Description: "Version control with Git", SkillType: "hard", Category: "DevOps & Cloud", MaxLevel: 10, Icon: "📦"},

		{Name: "Team Communication", Description: "Effective team communication", SkillType: "soft", Category: "Communication", MaxLevel: 10, Icon: "💬"},
		{Name: "Public Speaking", Description: "Public speaking and presentations", SkillType: "soft", Category: "Communication", MaxLevel: 10, Icon: "🎤"},
		{Name: "Written Communication", Description: "Clear written communication", SkillType: "soft", Category: "Communication", MaxLevel: 10, Icon: "✍️"},
		{Name: "Team Leadership", Description: "Leading teams effectively", SkillType: "soft", Category: "Leadership", MaxLevel: 10, Icon: "👑"},
		{Name: "Project Management", Description: "Managing projects and timelines", SkillType: "soft", Category: "Leadership", MaxLevel: 10, Icon: "📊"},
		{Name: "Mentoring", Description: "Mentoring and coaching others", SkillType: "soft", Category: "Leadership", MaxLevel: 10, Icon: "🎓"},
		{Name: "Critical Thinking", Description: "Analytical and critical thinking", SkillType: "soft", Category: "Problem Solving", MaxLevel: 10, Icon: "🧠"},
		{Name: "Debugging", Description: "Systematic problem debugging", SkillType: "soft", Category: "Problem Solving", MaxLevel: 10, Icon: "🔍"},
		{Name: "UI Design", Description: "User interface design", SkillType: "hard", Category: "Design", MaxLevel: 10, Icon: "🎨"},
		{Name: "UX Design", Description: "User experience design", SkillType: "hard", Category: "Design", MaxLevel: 10, Icon: "✨"},
	}

	for _, it := range items {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, category_id, name, description, skill_type, max_level, icon)
			 VALUES (gen_random_uuid(), (SELECT id FROM skill_categories WHERE name = $1), $2, $3, $4, $5, $6)
			 ON CONFLICT (name) DO NOTHING`,
			it.Category, it.Name, it.Description, it.SkillType, it.MaxLevel, it.Icon,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
