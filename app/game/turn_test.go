package game

import (
	"math/rand"
	"reflect"
	"testing"

	"tycoon-backend/app/models"
)

func TestDiceRollerBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10_000; i++ {
		d := rollDice(rng)
		if d.Dice[0] < 1 || d.Dice[0] > 6 || d.Dice[1] < 1 || d.Dice[1] > 6 {
			t.Fatalf("die out of range: %+v", d)
		}
		if d.Total != d.Dice[0]+d.Dice[1] {
			t.Fatalf("total mismatch: %+v", d)
		}
		if d.IsDouble != (d.Dice[0] == d.Dice[1]) {
			t.Fatalf("double flag mismatch: %+v", d)
		}
	}
}

func TestRollRejectedForNonCurrentPlayer(t *testing.T) {
	room, ids, _ := startedRoom(t, "Alice", "Bob")

	before, _ := room.Snapshot()
	err := room.Roll(ids[1])
	wantKind(t, err, KindAuthorization)
	if err.Error() != "Not your turn" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	after, _ := room.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("rejected roll mutated state:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestRollRejectedBeforeStart(t *testing.T) {
	_, room, ids, _ := newTestRoom(t, 4, "Alice", "Bob")
	wantKind(t, room.Roll(ids[0]), KindState)
}

func TestRollTwiceRejected(t *testing.T) {
	room, ids, _ := startedRoom(t, "Alice", "Bob")
	queueDice(room, [2]int{1, 2})
	if err := room.Roll(ids[0]); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}
	wantKind(t, room.Roll(ids[0]), KindAuthorization)
}

func TestMovementWrapsAndPaysSalaryOnce(t *testing.T) {
	room, ids, subs := startedRoom(t, "Alice", "Bob")

	room.mu.Lock()
	room.players[ids[0]].Position = 35
	before := room.players[ids[0]].Money
	room.mu.Unlock()

	queueDice(room, [2]int{3, 5}) // total 8: 35 -> 3, past start
	if err := room.Roll(ids[0]); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}

	room.mu.Lock()
	pos := room.players[ids[0]].Position
	money := room.players[ids[0]].Money
	room.mu.Unlock()
	if pos != 3 {
		t.Fatalf("expected position 3, got %d", pos)
	}
	if money != before+Salary {
		t.Fatalf("expected exactly one salary credit: before=%d after=%d", before, money)
	}

	moves := subs[0].ofType(models.EventPlayerMoved)
	if len(moves) != 1 {
		t.Fatalf("expected one player_moved, got %d", len(moves))
	}
	if payload := moves[0].Payload.(models.PlayerMovedPayload); !payload.PassedStart || payload.Position != 3 {
		t.Fatalf("bad move payload %+v", payload)
	}
}

func TestNoSalaryWithoutWrap(t *testing.T) {
	room, ids, _ := startedRoom(t, "Alice", "Bob")

	room.mu.Lock()
	before := room.players[ids[0]].Money
	room.mu.Unlock()

	queueDice(room, [2]int{1, 2})
	if err := room.Roll(ids[0]); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}

	room.mu.Lock()
	money := room.players[ids[0]].Money
	room.mu.Unlock()
	if money != before {
		t.Fatalf("salary credited without passing start: %d -> %d", before, money)
	}
}

func TestTurnRotationWraps(t *testing.T) {
	room, ids, _ := startedRoom(t, "Alice", "Bob", "Carol")

	for round := 0; round < 2; round++ {
		for i, id := range ids {
			room.mu.Lock()
			current := room.session.Current
			room.mu.Unlock()
			if current != id {
				t.Fatalf("round %d seat %d: expected %s, got %s", round, i, id, current)
			}
			queueDice(room, [2]int{1, 2})
			if err := room.Roll(id); err != nil {
				t.Fatalf("Roll failed: %v", err)
			}
			if err := room.EndTurn(id); err != nil {
				t.Fatalf("EndTurn failed: %v", err)
			}
		}
	}
}

func TestEndTurnBeforeRollRejected(t *testing.T) {
	room, ids, _ := startedRoom(t, "Alice", "Bob")
	wantKind(t, room.EndTurn(ids[0]), KindAuthorization)
}

func TestEndTurnByNonCurrentPlayerIsIdempotentlyRejected(t *testing.T) {
	room, ids, _ := startedRoom(t, "Alice", "Bob")
	for i := 0; i < 3; i++ {
		wantKind(t, room.EndTurn(ids[1]), KindAuthorization)
		room.mu.Lock()
		current := room.session.Current
		room.mu.Unlock()
		if current != ids[0] {
			t.Fatalf("currentPlayerId changed to %s", current)
		}
	}
}

// A first or second consecutive double has no effect; the third sends the
// player straight to the penalty tile and ends the turn.
func TestThirdConsecutiveDoubleJails(t *testing.T) {
	room, ids, subs := startedRoom(t, "Alice", "Bob")

	rollAndEnd := func(id string, dice [2]int, end bool) {
		t.Helper()
		queueDice(room, dice)
		if err := room.Roll(id); err != nil {
			t.Fatalf("Roll failed: %v", err)
		}
		if end {
			if err := room.EndTurn(id); err != nil {
				t.Fatalf("EndTurn failed: %v", err)
			}
		}
	}

	rollAndEnd(ids[0], [2]int{2, 2}, true)  // double #1, no extra effect
	rollAndEnd(ids[1], [2]int{1, 2}, true)
	rollAndEnd(ids[0], [2]int{3, 3}, true)  // double #2
	rollAndEnd(ids[1], [2]int{1, 2}, true)
	rollAndEnd(ids[0], [2]int{1, 1}, false) // double #3: straight to the penalty tile

	room.mu.Lock()
	p := room.players[ids[0]]
	pos, jailed, jailTurns, doubles := p.Position, p.InJail, p.JailTurns, p.Doubles
	current := room.session.Current
	room.mu.Unlock()

	if pos != PenaltyTile {
		t.Fatalf("expected position %d, got %d", PenaltyTile, pos)
	}
	if !jailed || jailTurns != JailSentence {
		t.Fatalf("expected %d-turn jail, got jailed=%v turns=%d", JailSentence, jailed, jailTurns)
	}
	if doubles != 0 {
		t.Fatalf("doubles counter not reset: %d", doubles)
	}
	if current != ids[1] {
		t.Fatalf("turn should have ended automatically, current=%s", current)
	}
	if got := subs[1].ofType(models.EventPlayerJailed); len(got) != 1 {
		t.Fatalf("expected one player_jailed, got %d", len(got))
	}
}

func TestNonDoubleResetsDoublesCounter(t *testing.T) {
	room, ids, _ := startedRoom(t, "Alice", "Bob")

	queueDice(room, [2]int{2, 2})
	if err := room.Roll(ids[0]); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}
	room.EndTurn(ids[0])
	queueDice(room, [2]int{1, 2})
	room.Roll(ids[1])
	room.EndTurn(ids[1])

	queueDice(room, [2]int{1, 4})
	if err := room.Roll(ids[0]); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}
	room.mu.Lock()
	doubles := room.players[ids[0]].Doubles
	room.mu.Unlock()
	if doubles != 0 {
		t.Fatalf("counter should reset on a non-double, got %d", doubles)
	}
}

func TestJailedDoubleFreesAndMoves(t *testing.T) {
	room, ids, subs := startedRoom(t, "Alice", "Bob")

	room.mu.Lock()
	p := room.players[ids[0]]
	p.Position = PenaltyTile
	p.InJail = true
	p.JailTurns = JailSentence
	room.mu.Unlock()

	queueDice(room, [2]int{2, 2})
	if err := room.Roll(ids[0]); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}

	room.mu.Lock()
	jailed, pos := p.InJail, p.Position
	phase := room.session.Phase
	room.mu.Unlock()
	if jailed {
		t.Fatalf("double should free the player")
	}
	if pos != PenaltyTile+4 {
		t.Fatalf("freed player should still move: expected %d, got %d", PenaltyTile+4, pos)
	}
	if phase != PhaseAwaitingAction {
		t.Fatalf("expected phase %s, got %s", PhaseAwaitingAction, phase)
	}
	if got := subs[0].ofType(models.EventPlayerFreed); len(got) != 1 {
		t.Fatalf("expected one player_freed, got %d", len(got))
	}
}

func TestJailSentenceServedTurnByTurn(t *testing.T) {
	room, ids, _ := startedRoom(t, "Alice", "Bob")

	room.mu.Lock()
	p := room.players[ids[0]]
	p.Position = PenaltyTile
	p.InJail = true
	p.JailTurns = JailSentence
	room.mu.Unlock()

	serveOne := func(want int) {
		t.Helper()
		queueDice(room, [2]int{1, 2})
		if err := room.Roll(ids[0]); err != nil {
			t.Fatalf("Roll failed: %v", err)
		}
		room.mu.Lock()
		jailed, turns, pos := p.InJail, p.JailTurns, p.Position
		current := room.session.Current
		room.mu.Unlock()
		if !jailed || turns != want {
			t.Fatalf("expected %d turns remaining, got jailed=%v turns=%d", want, jailed, turns)
		}
		if pos != PenaltyTile {
			t.Fatalf("jailed player moved to %d", pos)
		}
		if current != ids[1] {
			t.Fatalf("jail-skip turn should auto-advance")
		}
		// opponent plays through
		queueDice(room, [2]int{1, 2})
		if err := room.Roll(ids[1]); err != nil {
			t.Fatalf("Roll failed: %v", err)
		}
		if err := room.EndTurn(ids[1]); err != nil {
			t.Fatalf("EndTurn failed: %v", err)
		}
	}

	serveOne(2)
	serveOne(1)

	// third non-double releases and the player moves that same turn
	queueDice(room, [2]int{1, 2})
	if err := room.Roll(ids[0]); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}
	room.mu.Lock()
	jailed, pos := p.InJail, p.Position
	room.mu.Unlock()
	if jailed {
		t.Fatalf("sentence served but still jailed")
	}
	if pos != PenaltyTile+3 {
		t.Fatalf("released player should move: expected %d, got %d", PenaltyTile+3, pos)
	}
}

func TestTeleportTileSendsToPenalty(t *testing.T) {
	room, ids, _ := startedRoom(t, "Alice", "Bob")

	room.mu.Lock()
	p := room.players[ids[0]]
	p.Position = 27
	before := p.Money
	room.mu.Unlock()

	queueDice(room, [2]int{1, 2}) // 27 -> 30, the teleport tile
	if err := room.Roll(ids[0]); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}

	room.mu.Lock()
	pos, jailed, money := p.Position, p.InJail, p.Money
	current := room.session.Current
	room.mu.Unlock()
	if pos != PenaltyTile || !jailed {
		t.Fatalf("teleport should jail at %d: pos=%d jailed=%v", PenaltyTile, pos, jailed)
	}
	if money != before {
		t.Fatalf("teleport is not a move; no salary expected (%d -> %d)", before, money)
	}
	if current != ids[1] {
		t.Fatalf("landing in jail should end the turn")
	}
}

func TestChanceTileIsInert(t *testing.T) {
	room, ids, _ := startedRoom(t, "Alice", "Bob")

	before, _ := room.Snapshot()
	queueDice(room, [2]int{1, 1}) // 0 -> 2, a chance tile; also double #1
	if err := room.Roll(ids[0]); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}

	room.mu.Lock()
	p := room.players[ids[0]]
	pos, money := p.Position, p.Money
	room.mu.Unlock()
	if pos != 2 {
		t.Fatalf("expected position 2, got %d", pos)
	}
	if money != before.Players[0].Money {
		t.Fatalf("chance tile changed balance: %d -> %d", before.Players[0].Money, money)
	}
}

func TestTaxTileDebitsAndClamps(t *testing.T) {
	room, ids, _ := startedRoom(t, "Alice", "Bob")

	room.mu.Lock()
	p := room.players[ids[0]]
	p.Position = 35
	p.Money = 40_000 // below the tax amount
	room.mu.Unlock()

	queueDice(room, [2]int{1, 2}) // 35 -> 38, tax office
	if err := room.Roll(ids[0]); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}

	room.mu.Lock()
	money := p.Money
	room.mu.Unlock()
	if money != 0 {
		t.Fatalf("tax should clamp at zero, got %d", money)
	}
}
