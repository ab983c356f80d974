package models

// Tile categories.
const (
	CategoryCity    = "city"
	CategoryChance  = "chance"
	CategorySpecial = "special"
)

// Special-tile actions.
const (
	ActionStart    = "start"
	ActionJail     = "jail"
	ActionFree     = "free"
	ActionTeleport = "teleport"
	ActionTax      = "tax"
)

// Tile is the static configuration of one board position. It never mutates;
// ownership and building level live in the game session.
type Tile struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
	BaseRent int    `json:"baseRent"`
	Action   string `json:"action,omitempty"`  // special tiles only
	Payload  int    `json:"payload,omitempty"` // teleport target or tax amount
}

// TileState is the dynamic half of a tile within a running session.
type TileState struct {
	TileId int    `json:"tileId"`
	Owner  string `json:"owner,omitempty"`
	Level  int    `json:"level"`
}
