package game

import (
	"tycoon-backend/app/models"
	"tycoon-backend/platform/board"
)

// Turn phases.
const (
	PhaseWaitingForRoll = "WAITING_FOR_ROLL"
	PhaseResolvingMove  = "RESOLVING_MOVE"
	PhaseAwaitingAction = "AWAITING_ACTION"
	PhaseTurnComplete   = "TURN_COMPLETE"
)

const (
	StartingBalance  = 1_500_000
	Salary           = 200_000
	BuildCostStep    = 100_000
	MaxBuildingLevel = 5
	JailSentence     = 3
	PenaltyTile      = 10

	tripleDouble = 3
)

// Session is the authoritative game state of a started room. It exists only
// between start and game over and is guarded by the owning room's lock.
type Session struct {
	Current    string
	Phase      string
	LastDice   models.DiceResult
	LandedTile int
	Tiles      []models.TileState
}

func newSession(first string) *Session {
	tiles := make([]models.TileState, board.Size)
	for i := range tiles {
		tiles[i].TileId = i
	}
	return &Session{
		Current:    first,
		Phase:      PhaseWaitingForRoll,
		LandedTile: -1,
		Tiles:      tiles,
	}
}
