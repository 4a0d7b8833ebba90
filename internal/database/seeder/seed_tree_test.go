package seeder

import (
	"strings"
	"testing"
)

func TestValidateTopology_DefaultIsAcyclic(t *testing.T) {
	if err := ValidateTopology(defaultTopology()); err != nil {
		t.Fatalf("default topology should validate: %v", err)
	}
}

func TestValidateTopology_DetectsCycle(t *testing.T) {
	seeds := []TreeSeed{
		{Skill: "A", Parent: "C", Tier: 1},
		{Skill: "B", Parent: "A", Tier: 2},
		{Skill: "C", Parent: "B", Tier: 3},
	}
	err := ValidateTopology(seeds)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateTopology_RejectsDuplicates(t *testing.T) {
	seeds := []TreeSeed{
		{Skill: "A", Tier: 1},
		{Skill: "A", Parent: "B", Tier: 2},
	}
	if err := ValidateTopology(seeds); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestValidateTopology_SelfParent(t *testing.T) {
	seeds := []TreeSeed{{Skill: "A", Parent: "A", Tier: 1}}
	if err := ValidateTopology(seeds); err == nil {
		t.Fatalf("self-parent is a cycle")
	}
}
