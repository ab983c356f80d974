package game

import (
	"testing"

	"tycoon-backend/app/models"
	"tycoon-backend/platform/board"
)

// fakeSub records every event it receives; flipping dead simulates a closed
// connection.
type fakeSub struct {
	events []models.Event
	dead   bool
}

func (f *fakeSub) Send(event models.Event) bool {
	if f.dead {
		return false
	}
	f.events = append(f.events, event)
	return true
}

func (f *fakeSub) ofType(eventType string) []models.Event {
	var out []models.Event
	for _, e := range f.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// newTestRoom creates a room with the given players seated in order. The
// first name becomes host.
func newTestRoom(t *testing.T, maxPlayers int, names ...string) (*Directory, *Room, []string, []*fakeSub) {
	t.Helper()
	d := NewDirectory(board.Load())

	subs := make([]*fakeSub, len(names))
	ids := make([]string, len(names))

	subs[0] = &fakeSub{}
	room, host, err := d.CreateRoom(names[0], maxPlayers, subs[0])
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	ids[0] = host.Id

	for i := 1; i < len(names); i++ {
		subs[i] = &fakeSub{}
		_, p, err := d.JoinRoom(room.Code, names[i], subs[i])
		if err != nil {
			t.Fatalf("JoinRoom(%q) failed: %v", names[i], err)
		}
		ids[i] = p.Id
	}
	return d, room, ids, subs
}

// startedRoom seats the players and starts the game.
func startedRoom(t *testing.T, names ...string) (*Room, []string, []*fakeSub) {
	t.Helper()
	_, room, ids, subs := newTestRoom(t, 4, names...)
	if err := room.Start(ids[0]); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return room, ids, subs
}

// queueDice replaces the room's roller with a fixed sequence.
func queueDice(r *Room, rolls ...[2]int) {
	i := 0
	r.roll = func() models.DiceResult {
		d := rolls[i%len(rolls)]
		i++
		return models.DiceResult{Dice: d, Total: d[0] + d[1], IsDouble: d[0] == d[1]}
	}
}

// landAndBuy places the current player three steps short of a city tile,
// rolls a fixed (1,2) to land on it and buys it.
func landAndBuy(t *testing.T, room *Room, playerId string, tileId int) {
	t.Helper()
	room.mu.Lock()
	if room.session.Current != playerId {
		room.mu.Unlock()
		t.Fatalf("landAndBuy: %s does not hold the turn", playerId)
	}
	room.players[playerId].Position = tileId - 3
	room.mu.Unlock()

	queueDice(room, [2]int{1, 2})
	if err := room.Roll(playerId); err != nil {
		t.Fatalf("Roll failed: %v", err)
	}
	if err := room.Buy(playerId, tileId); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
}

func wantKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %s error, got nil", kind)
	}
	gameErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *game.Error, got %T: %v", err, err)
	}
	if gameErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%q)", kind, gameErr.Kind, gameErr.Message)
	}
}
