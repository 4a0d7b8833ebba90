package compare

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestParseFallback(t *testing.T) {
	id := uuid.New()

	p, err := ParseFallback("skill:" + id.String() + ":left")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ItemID != id || p.ItemType != ItemSkill || p.OriginSide != SideLeft {
		t.Fatalf("unexpected payload: %+v", p)
	}
}

func TestParseFallback_Rejects(t *testing.T) {
	id := uuid.New().String()

	cases := []string{
		"",
		"skill:" + id,
		"widget:" + id + ":left",
		"skill:" + id + ":middle",
		"skill:not-a-uuid:left",
		"job:" + uuid.Nil.String() + ":right",
	}
	for _, raw := range cases {
		if _, err := ParseFallback(raw); !errors.Is(err, ErrUnusablePayload) {
			t.Fatalf("raw %q: expected ErrUnusablePayload, got %v", raw, err)
		}
	}
}

func TestSideOpposite(t *testing.T) {
	if SideLeft.Opposite() != SideRight || SideRight.Opposite() != SideLeft {
		t.Fatalf("opposite sides wrong")
	}
}
