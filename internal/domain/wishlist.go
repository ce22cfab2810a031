package domain

import (
	"encoding/json"
	"time"
)

type ItemKind string

const (
	ItemKindFlight ItemKind = "flight"
	ItemKindPlace  ItemKind = "place"
	ItemKindNote   ItemKind = "note"
)

type WishlistItem struct {
	ID        string
	UserID    string
	Kind      ItemKind
	RefID     string
	Title     string
	Payload   json.RawMessage
	CreatedAt time.Time
}
