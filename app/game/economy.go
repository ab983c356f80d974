package game

import (
	"tycoon-backend/app/models"
	"tycoon-backend/platform/board"
)

// Buy purchases the tile the current player just landed on. Checks run in
// order: turn/phase, landed tile, category, ownership, funds; nothing
// mutates until all pass.
func (r *Room) Buy(playerId string, tileId int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireTurn(playerId); err != nil {
		return err
	}
	if r.session.Phase != PhaseAwaitingAction {
		return authErr("No purchase is possible right now")
	}
	if tileId != r.session.LandedTile {
		return authErr("You can only buy the tile you landed on")
	}

	tile, err := board.Get(r.tiles, tileId)
	if err != nil {
		return validationErr("Unknown tile")
	}
	if tile.Category != models.CategoryCity {
		return econErr("This tile cannot be purchased")
	}
	state := &r.session.Tiles[tileId]
	if state.Owner != "" {
		return econErr("Tile already owned")
	}
	player := r.players[playerId]
	if player.Money < tile.Price {
		return econErr("Insufficient funds")
	}

	player.Money -= tile.Price
	state.Owner = playerId
	player.Properties = append(player.Properties, tileId)
	r.broadcast(models.Event{
		Type:    models.EventPropertyBought,
		Payload: models.PropertyBoughtPayload{PlayerId: playerId, TileId: tileId},
	})
	r.broadcast(models.Event{
		Type:    models.EventBalanceChanged,
		Payload: models.BalanceChangedPayload{PlayerId: playerId, Money: player.Money, Reason: "purchase"},
	})
	return nil
}

// Build raises the building level on a tile the current player owns.
func (r *Room) Build(playerId string, tileId int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireTurn(playerId); err != nil {
		return err
	}
	if r.session.Phase != PhaseAwaitingAction {
		return authErr("No building is possible right now")
	}

	tile, err := board.Get(r.tiles, tileId)
	if err != nil {
		return validationErr("Unknown tile")
	}
	state := &r.session.Tiles[tileId]
	if tile.Category != models.CategoryCity || state.Owner != playerId {
		return authErr("It must be your property to build on")
	}
	if state.Level >= MaxBuildingLevel {
		return econErr("Maximum building level reached")
	}
	cost := BuildCostStep * (state.Level + 1)
	player := r.players[playerId]
	if player.Money < cost {
		return econErr("Insufficient funds")
	}

	player.Money -= cost
	state.Level++
	r.broadcast(models.Event{
		Type:    models.EventBuildingBuilt,
		Payload: models.BuildingBuiltPayload{PlayerId: playerId, TileId: tileId, Level: state.Level},
	})
	r.broadcast(models.Event{
		Type:    models.EventBalanceChanged,
		Payload: models.BalanceChangedPayload{PlayerId: playerId, Money: player.Money, Reason: "build"},
	})
	return nil
}

// Rent scales with building level: baseRent * (1 + level/2).
func rentFor(tile models.Tile, level int) int {
	return tile.BaseRent * (2 + level) / 2
}

// chargeRent moves rent from the lander to the tile owner. The payer may be
// driven to zero but never below; the owner is credited the full amount.
// Caller holds the room lock.
func (r *Room) chargeRent(payer *models.Player, tile models.Tile) {
	state := r.session.Tiles[tile.Id]
	owner := r.players[state.Owner]
	rent := rentFor(tile, state.Level)

	payer.Money -= rent
	if payer.Money < 0 {
		payer.Money = 0
	}
	owner.Money += rent

	r.broadcast(models.Event{
		Type:    models.EventRentPaid,
		Payload: models.RentPaidPayload{PayerId: payer.Id, OwnerId: owner.Id, TileId: tile.Id, Amount: rent},
	})
	r.broadcast(models.Event{
		Type:    models.EventBalanceChanged,
		Payload: models.BalanceChangedPayload{PlayerId: payer.Id, Money: payer.Money, Reason: "rent"},
	})
	r.broadcast(models.Event{
		Type:    models.EventBalanceChanged,
		Payload: models.BalanceChangedPayload{PlayerId: owner.Id, Money: owner.Money, Reason: "rent"},
	})
}

// chargeTax debits a flat amount, clamped at zero like rent.
func (r *Room) chargeTax(player *models.Player, amount int) {
	player.Money -= amount
	if player.Money < 0 {
		player.Money = 0
	}
	r.broadcast(models.Event{
		Type:    models.EventBalanceChanged,
		Payload: models.BalanceChangedPayload{PlayerId: player.Id, Money: player.Money, Reason: "tax"},
	})
}
