package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	uuid "github.com/satori/go.uuid"

	"tycoon-backend/app/models"
)

// Subscriber is one live connection registered to a room. Send must not
// block; it reports false once the connection is gone so the room can drop
// it lazily.
type Subscriber interface {
	Send(event models.Event) bool
}

// Room is a single multiplayer session: roster, live connections and, once
// started, the game session. All mutations run under its mutex, so events
// observe a room-scoped total order.
type Room struct {
	Code string

	mu         sync.Mutex
	closed     bool
	hostId     string
	maxPlayers int
	order      []string
	players    map[string]*models.Player
	subs       map[string]Subscriber
	started    bool
	session    *Session
	tiles      []models.Tile
	roll       func() models.DiceResult
	onEmpty    func(code string)
	log        *logrus.Entry
}

func newRoom(code string, maxPlayers int, tiles []models.Tile, onEmpty func(string)) *Room {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Room{
		Code:       code,
		maxPlayers: maxPlayers,
		players:    make(map[string]*models.Player),
		subs:       make(map[string]Subscriber),
		tiles:      tiles,
		roll:       func() models.DiceResult { return rollDice(rng) },
		onEmpty:    onEmpty,
		log:        logrus.WithField("room", code),
	}
}

// AddPlayer seats a new player and registers their connection. The first
// player to enter becomes host. Existing members are notified before the
// newcomer's subscription is registered, so nobody sees their own join.
func (r *Room) AddPlayer(name string, sub Subscriber) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, stateErr("Room not found")
	}
	if r.started {
		return nil, stateErr("Game already started")
	}
	if len(r.order) >= r.maxPlayers {
		return nil, stateErr("Room is full")
	}

	player := &models.Player{
		Id:         uuid.NewV4().String(),
		Name:       name,
		Money:      StartingBalance,
		Properties: []int{},
	}
	r.broadcast(models.Event{
		Type:    models.EventPlayerJoined,
		Payload: models.PlayerInfo{PlayerId: player.Id, PlayerName: name},
	})
	r.order = append(r.order, player.Id)
	r.players[player.Id] = player
	r.subs[player.Id] = sub
	if r.hostId == "" {
		r.hostId = player.Id
	}
	return player, nil
}

// RemovePlayer drops a player from the roster, transferring the host role
// and forcing an end-turn on their behalf where needed. Safe to call twice;
// the second call is a no-op. Used for both explicit leaves and disconnects.
func (r *Room) RemovePlayer(playerId string) {
	r.mu.Lock()
	empty := r.removeLocked(playerId)
	r.mu.Unlock()
	if empty && r.onEmpty != nil {
		r.onEmpty(r.Code)
	}
}

func (r *Room) removeLocked(playerId string) (empty bool) {
	player, ok := r.players[playerId]
	if !ok {
		return false
	}

	idx := -1
	for i, id := range r.order {
		if id == playerId {
			idx = i
			break
		}
	}
	r.order = append(r.order[:idx], r.order[idx+1:]...)
	delete(r.players, playerId)
	delete(r.subs, playerId)

	r.broadcast(models.Event{
		Type:    models.EventPlayerLeft,
		Payload: models.PlayerInfo{PlayerId: playerId, PlayerName: player.Name},
	})

	if len(r.order) == 0 {
		r.closed = true
		return true
	}

	if r.hostId == playerId {
		r.hostId = r.order[0]
		r.broadcast(models.Event{
			Type:    models.EventHostChanged,
			Payload: models.HostChangedPayload{HostId: r.hostId},
		})
	}

	if !r.started {
		return false
	}

	// Release the leaver's holdings so tiles never point at a ghost owner.
	for i := range r.session.Tiles {
		if r.session.Tiles[i].Owner == playerId {
			r.session.Tiles[i].Owner = ""
			r.session.Tiles[i].Level = 0
		}
	}

	if len(r.order) == 1 {
		r.endGameLocked(r.order[0])
		return false
	}

	if r.session.Current == playerId {
		r.log.WithField("player", playerId).Info("forcing end of turn for departed player")
		r.advanceFrom(idx)
	}
	return false
}

// endGameLocked finishes the session and returns the room to lobby state.
// The room itself lives on until the roster empties.
func (r *Room) endGameLocked(winnerId string) {
	r.broadcast(models.Event{
		Type:    models.EventGameOver,
		Payload: models.GameOverPayload{WinnerId: winnerId},
	})
	r.started = false
	r.session = nil
	for _, p := range r.players {
		p.Position = 0
		p.Money = StartingBalance
		p.Properties = []int{}
		p.InJail = false
		p.JailTurns = 0
		p.Doubles = 0
	}
	r.log.WithField("winner", winnerId).Info("game over")
}

// Start begins the game session. Host only, at least two players.
func (r *Room) Start(playerId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return stateErr("Game already started")
	}
	if playerId != r.hostId {
		return authErr("Only the host can start the game")
	}
	if len(r.order) < 2 {
		return stateErr("Need at least 2 players")
	}

	r.started = true
	r.session = newSession(r.order[0])
	r.broadcast(models.Event{
		Type:    models.EventGameStarted,
		Payload: r.snapshotLocked(),
	})
	r.log.WithField("players", len(r.order)).Info("game started")
	return nil
}

// Chat relays a chat line to the room and returns it for history storage.
func (r *Room) Chat(playerId, message string) (models.ChatMessagePayload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[playerId]
	if !ok {
		return models.ChatMessagePayload{}, stateErr("You are not in this room")
	}
	msg := models.ChatMessagePayload{
		PlayerId:   playerId,
		PlayerName: player.Name,
		Message:    message,
		Timestamp:  time.Now().UnixMilli(),
	}
	r.broadcast(models.Event{Type: models.EventChatMessage, Payload: msg})
	return msg, nil
}

// Snapshot returns a copy of the authoritative game state.
func (r *Room) Snapshot() (models.GameState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return models.GameState{}, stateErr("Game not started")
	}
	return r.snapshotLocked(), nil
}

func (r *Room) snapshotLocked() models.GameState {
	state := models.GameState{}
	if r.session != nil {
		state.CurrentPlayerId = r.session.Current
		state.Phase = r.session.Phase
		state.Tiles = append([]models.TileState(nil), r.session.Tiles...)
	}
	for _, id := range r.order {
		p := *r.players[id]
		p.Properties = append([]int(nil), r.players[id].Properties...)
		state.Players = append(state.Players, p)
	}
	return state
}

// Roster lists the seated players in turn order.
func (r *Room) Roster() []models.PlayerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rosterLocked()
}

func (r *Room) rosterLocked() []models.PlayerInfo {
	infos := make([]models.PlayerInfo, 0, len(r.order))
	for _, id := range r.order {
		infos = append(infos, models.PlayerInfo{PlayerId: id, PlayerName: r.players[id].Name})
	}
	return infos
}

// Info reports the lobby view of the room.
func (r *Room) Info() (players, maxPlayers int, started bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order), r.maxPlayers, r.started
}

// broadcast fans an event out to every live connection in turn order.
// Connections that are gone are skipped and dropped from the list; they
// never block delivery to the rest. Caller holds the room lock, so events
// are delivered in commit order.
func (r *Room) broadcast(event models.Event) {
	for _, id := range r.order {
		sub, ok := r.subs[id]
		if !ok {
			continue
		}
		if !sub.Send(event) {
			delete(r.subs, id)
		}
	}
}

func (r *Room) requireTurn(playerId string) *Error {
	if !r.started {
		return stateErr("Game not started")
	}
	if r.session.Current != playerId {
		return authErr("Not your turn")
	}
	return nil
}
