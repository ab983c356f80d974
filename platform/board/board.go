package board

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"tycoon-backend/app/models"
)

// Size is the number of positions on the board.
const Size = 40

//go:embed tiles.json
var tilesJSON []byte

// Load parses the embedded board. The data is part of the binary, so a
// failure here is a build defect, not a runtime condition.
func Load() []models.Tile {
	var tiles []models.Tile
	if err := json.Unmarshal(tilesJSON, &tiles); err != nil {
		panic(fmt.Sprintf("board: bad tiles.json: %v", err))
	}
	if len(tiles) != Size {
		panic(fmt.Sprintf("board: expected %d tiles, got %d", Size, len(tiles)))
	}
	for i, tile := range tiles {
		if tile.Id != i {
			panic(fmt.Sprintf("board: tile %d has id %d", i, tile.Id))
		}
	}
	return tiles
}

// Get returns the static tile at the given position.
func Get(tiles []models.Tile, id int) (models.Tile, error) {
	if id < 0 || id >= len(tiles) {
		return models.Tile{}, errors.New("not found")
	}
	return tiles[id], nil
}
