package game

import (
	"tycoon-backend/app/models"
	"tycoon-backend/platform/board"
)

// Roll handles a roll_dice request from playerId: jail bookkeeping, doubles
// tracking, movement and automatic landing effects, in that order.
func (r *Room) Roll(playerId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireTurn(playerId); err != nil {
		return err
	}
	if r.session.Phase != PhaseWaitingForRoll {
		return authErr("You have already rolled the dice")
	}

	player := r.players[playerId]
	dice := r.roll()
	r.session.LastDice = dice
	r.broadcast(models.Event{
		Type:    models.EventDiceRolled,
		Payload: models.DiceRolledPayload{PlayerId: playerId, DiceResult: dice},
	})

	if player.InJail {
		r.rollFromJail(player, dice)
		return nil
	}

	if dice.IsDouble {
		player.Doubles++
		if player.Doubles >= tripleDouble {
			player.Doubles = 0
			r.moveTo(player, PenaltyTile)
			r.jailPlayer(player)
			r.session.Phase = PhaseTurnComplete
			r.advanceTurn()
			return nil
		}
	} else {
		player.Doubles = 0
	}

	r.resolveMove(player, dice.Total)
	return nil
}

// rollFromJail applies the jailed-player rules: a double frees immediately
// and the roll still moves; otherwise one turn of the sentence is served,
// with release (and movement) once it runs out.
func (r *Room) rollFromJail(player *models.Player, dice models.DiceResult) {
	if dice.IsDouble {
		r.freePlayer(player)
		r.resolveMove(player, dice.Total)
		return
	}
	player.JailTurns--
	if player.JailTurns <= 0 {
		r.freePlayer(player)
		r.resolveMove(player, dice.Total)
		return
	}
	r.broadcast(models.Event{
		Type:    models.EventPlayerJailed,
		Payload: models.PlayerJailedPayload{PlayerId: player.Id, TurnsRemaining: player.JailTurns},
	})
	r.session.Phase = PhaseTurnComplete
	r.advanceTurn()
}

// resolveMove advances the token, credits salary on wrapping past start and
// applies the landed tile's automatic effects.
func (r *Room) resolveMove(player *models.Player, steps int) {
	r.session.Phase = PhaseResolvingMove

	old := player.Position
	pos := (old + steps) % board.Size
	passedStart := pos < old
	player.Position = pos
	if passedStart {
		player.Money += Salary
		r.broadcast(models.Event{
			Type:    models.EventBalanceChanged,
			Payload: models.BalanceChangedPayload{PlayerId: player.Id, Money: player.Money, Reason: "salary"},
		})
	}
	r.broadcast(models.Event{
		Type:    models.EventPlayerMoved,
		Payload: models.PlayerMovedPayload{PlayerId: player.Id, Position: pos, PassedStart: passedStart},
	})
	r.session.LandedTile = pos

	if r.resolveLanding(player, r.tiles[pos]) {
		r.session.Phase = PhaseTurnComplete
		r.advanceTurn()
		return
	}
	r.session.Phase = PhaseAwaitingAction
}

// resolveLanding applies effects that need no player decision. It reports
// true when the landing consumed the rest of the turn.
func (r *Room) resolveLanding(player *models.Player, tile models.Tile) (turnOver bool) {
	switch tile.Category {
	case models.CategoryCity:
		owner := r.session.Tiles[tile.Id].Owner
		if owner != "" && owner != player.Id {
			r.chargeRent(player, tile)
		}
	case models.CategorySpecial:
		switch tile.Action {
		case models.ActionTeleport:
			r.moveTo(player, tile.Payload)
			if tile.Payload == PenaltyTile {
				r.jailPlayer(player)
				return true
			}
		case models.ActionTax:
			r.chargeTax(player, tile.Payload)
		}
		// start, free and the penalty tile itself are harmless to land on
	case models.CategoryChance:
		// chance effects are deliberately inert
	}
	return false
}

// moveTo relocates a token without counting as a move: no salary, no
// landing resolution.
func (r *Room) moveTo(player *models.Player, pos int) {
	player.Position = pos
	r.broadcast(models.Event{
		Type:    models.EventPlayerMoved,
		Payload: models.PlayerMovedPayload{PlayerId: player.Id, Position: pos},
	})
}

func (r *Room) jailPlayer(player *models.Player) {
	player.InJail = true
	player.JailTurns = JailSentence
	player.Doubles = 0
	r.broadcast(models.Event{
		Type:    models.EventPlayerJailed,
		Payload: models.PlayerJailedPayload{PlayerId: player.Id, TurnsRemaining: player.JailTurns},
	})
}

func (r *Room) freePlayer(player *models.Player) {
	player.InJail = false
	player.JailTurns = 0
	player.Doubles = 0
	r.broadcast(models.Event{
		Type:    models.EventPlayerFreed,
		Payload: models.PlayerFreedPayload{PlayerId: player.Id},
	})
}

// EndTurn passes play to the next seat in roster order.
func (r *Room) EndTurn(playerId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireTurn(playerId); err != nil {
		return err
	}
	if r.session.Phase != PhaseAwaitingAction && r.session.Phase != PhaseTurnComplete {
		return authErr("You must roll the dice first")
	}
	r.advanceTurn()
	return nil
}

func (r *Room) advanceTurn() {
	for i, id := range r.order {
		if id == r.session.Current {
			r.advanceFrom(i + 1)
			return
		}
	}
	// current player no longer seated; caller passes the removal index instead
}

// advanceFrom hands the turn to the seat at idx (mod roster size), used both
// for normal rotation and when the current player's seat was just removed.
func (r *Room) advanceFrom(idx int) {
	next := r.order[idx%len(r.order)]
	r.session.Current = next
	r.session.Phase = PhaseWaitingForRoll
	r.session.LandedTile = -1
	r.broadcast(models.Event{
		Type:    models.EventTurnChanged,
		Payload: models.TurnChangedPayload{CurrentPlayerId: next},
	})
}
