package game

import (
	"sync"

	"github.com/sirupsen/logrus"

	"tycoon-backend/app/models"
	"tycoon-backend/pkg/utils"
)

// RoomCodeLength is the length of the short join code.
const RoomCodeLength = 6

// RoomInfo is the lobby view of a joinable room.
type RoomInfo struct {
	RoomId     string `json:"roomId"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
}

// Directory owns the room-code -> room mapping. Its lock guards only the
// mapping; each room serializes its own state, and the two locks are never
// held together.
type Directory struct {
	mu        sync.RWMutex
	rooms     map[string]*Room
	tiles     []models.Tile
	onDestroy func(code string)
}

func NewDirectory(tiles []models.Tile) *Directory {
	return &Directory{
		rooms: make(map[string]*Room),
		tiles: tiles,
	}
}

// OnDestroy registers a hook run after a room is destroyed, e.g. to clear
// its chat history.
func (d *Directory) OnDestroy(fn func(code string)) {
	d.onDestroy = fn
}

// CreateRoom allocates a room under a fresh unique code and seats the host.
func (d *Directory) CreateRoom(hostName string, maxPlayers int, sub Subscriber) (*Room, *models.Player, error) {
	if maxPlayers < 2 || maxPlayers > 4 {
		return nil, nil, validationErr("maxPlayers must be between 2 and 4")
	}

	d.mu.Lock()
	var code string
	for {
		code = utils.RandString(RoomCodeLength)
		if _, taken := d.rooms[code]; !taken {
			break
		}
	}
	room := newRoom(code, maxPlayers, d.tiles, d.remove)
	d.rooms[code] = room
	d.mu.Unlock()

	host, err := room.AddPlayer(hostName, sub)
	if err != nil {
		// Cannot happen for a fresh room; treat as a defect but do not leak it.
		d.remove(code)
		return nil, nil, err
	}
	logrus.WithFields(logrus.Fields{"room": code, "host": host.Id}).Info("room created")
	return room, host, nil
}

// JoinRoom seats a player in an existing room.
func (d *Directory) JoinRoom(code, playerName string, sub Subscriber) (*Room, *models.Player, error) {
	room, ok := d.Get(code)
	if !ok {
		return nil, nil, stateErr("Room not found")
	}
	player, err := room.AddPlayer(playerName, sub)
	if err != nil {
		return nil, nil, err
	}
	return room, player, nil
}

// Get looks up a room by code.
func (d *Directory) Get(code string) (*Room, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.rooms[code]
	return room, ok
}

// OpenRooms lists rooms that can still be joined.
func (d *Directory) OpenRooms() []RoomInfo {
	d.mu.RLock()
	rooms := make([]*Room, 0, len(d.rooms))
	for _, room := range d.rooms {
		rooms = append(rooms, room)
	}
	d.mu.RUnlock()

	infos := []RoomInfo{}
	for _, room := range rooms {
		players, maxPlayers, started := room.Info()
		if started || players >= maxPlayers {
			continue
		}
		infos = append(infos, RoomInfo{RoomId: room.Code, Players: players, MaxPlayers: maxPlayers})
	}
	return infos
}

func (d *Directory) remove(code string) {
	d.mu.Lock()
	_, existed := d.rooms[code]
	delete(d.rooms, code)
	d.mu.Unlock()
	if existed {
		logrus.WithField("room", code).Info("room destroyed")
		if d.onDestroy != nil {
			d.onDestroy(code)
		}
	}
}
