package compare

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrUnusablePayload = errors.New("unusable drag payload")

type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}

func (s Side) Opposite() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

type ItemType string

const (
	ItemSkill ItemType = "skill"
	ItemJob   ItemType = "job"
)

func (t ItemType) Valid() bool {
	return t == ItemSkill || t == ItemJob
}

// DragPayload identifies the item a drag release refers to and the side it
// was picked up from.
type DragPayload struct {
	ItemID     uuid.UUID
	ItemType   ItemType
	OriginSide Side
}

func (p DragPayload) Complete() bool {
	return p.ItemID != uuid.Nil && p.ItemType.Valid() && p.OriginSide.Valid()
}

// ParseFallback reconstructs a payload from its serialized "type:id:side"
// form, the shape clients put on the drag's plain-text channel.
func ParseFallback(raw string) (DragPayload, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return DragPayload{}, ErrUnusablePayload
	}

	itemType := ItemType(parts[0])
	side := Side(parts[2])
	if !itemType.Valid() || !side.Valid() {
		return DragPayload{}, ErrUnusablePayload
	}

	id, err := uuid.Parse(parts[1])
	if err != nil || id == uuid.Nil {
		return DragPayload{}, ErrUnusablePayload
	}

	return DragPayload{ItemID: id, ItemType: itemType, OriginSide: side}, nil
}
