package models

// Player is one seat in a room. Mutated only by the owning room while its
// lock is held.
type Player struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	Position   int    `json:"position"`
	Money      int    `json:"money"`
	Properties []int  `json:"properties"`
	InJail     bool   `json:"inJail"`
	JailTurns  int    `json:"jailTurns"`
	Doubles    int    `json:"-"` // consecutive doubles, 0-2
}

// Owns reports whether the player holds the given tile.
func (p *Player) Owns(tileId int) bool {
	for _, id := range p.Properties {
		if id == tileId {
			return true
		}
	}
	return false
}
