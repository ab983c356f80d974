package models

import "encoding/json"

// Envelope is the wire frame in both directions: a type discriminator and a
// type-specific payload object.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Event is an outbound frame before marshalling.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Client -> server message types.
const (
	MsgCreateRoom  = "create_room"
	MsgJoinRoom    = "join_room"
	MsgLeaveRoom   = "leave_room"
	MsgStartGame   = "start_game"
	MsgRollDice    = "roll_dice"
	MsgBuyProperty = "buy_property"
	MsgBuild       = "build"
	MsgEndTurn     = "end_turn"
	MsgChat        = "chat"
)

// Server -> client event types.
const (
	EventConnected      = "connected"
	EventRoomCreated    = "room_created"
	EventRoomJoined     = "room_joined"
	EventPlayerJoined   = "player_joined"
	EventPlayerLeft     = "player_left"
	EventHostChanged    = "host_changed"
	EventGameStarted    = "game_started"
	EventDiceRolled     = "dice_rolled"
	EventPlayerMoved    = "player_moved"
	EventBalanceChanged = "balance_changed"
	EventRentPaid       = "rent_paid"
	EventPropertyBought = "property_bought"
	EventBuildingBuilt  = "building_built"
	EventPlayerJailed   = "player_jailed"
	EventPlayerFreed    = "player_freed"
	EventTurnChanged    = "turn_changed"
	EventGameOver       = "game_over"
	EventChatMessage    = "chat_message"
	EventError          = "error"
)

type CreateRoomDto struct {
	PlayerName string `json:"playerName"`
	MaxPlayers int    `json:"maxPlayers"`
}

type JoinRoomDto struct {
	RoomId     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type TileDto struct {
	TileId int `json:"tileId"`
}

type ChatDto struct {
	Message string `json:"message"`
}

type ConnectedPayload struct {
	Message string `json:"message"`
}

type RoomCreatedPayload struct {
	RoomId   string `json:"roomId"`
	PlayerId string `json:"playerId"`
	IsHost   bool   `json:"isHost"`
}

type PlayerInfo struct {
	PlayerId   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type RoomJoinedPayload struct {
	RoomId   string       `json:"roomId"`
	PlayerId string       `json:"playerId"`
	IsHost   bool         `json:"isHost"`
	Players  []PlayerInfo `json:"players"`
}

type HostChangedPayload struct {
	HostId string `json:"hostId"`
}

// GameState is the full authoritative snapshot sent on game start.
type GameState struct {
	CurrentPlayerId string      `json:"currentPlayerId"`
	Phase           string      `json:"phase"`
	Players         []Player    `json:"players"`
	Tiles           []TileState `json:"tiles"`
}

type DiceRolledPayload struct {
	PlayerId   string     `json:"playerId"`
	DiceResult DiceResult `json:"diceResult"`
}

type PlayerMovedPayload struct {
	PlayerId    string `json:"playerId"`
	Position    int    `json:"position"`
	PassedStart bool   `json:"passedStart"`
}

type BalanceChangedPayload struct {
	PlayerId string `json:"playerId"`
	Money    int    `json:"money"`
	Reason   string `json:"reason"`
}

type RentPaidPayload struct {
	PayerId string `json:"payerId"`
	OwnerId string `json:"ownerId"`
	TileId  int    `json:"tileId"`
	Amount  int    `json:"amount"`
}

type PropertyBoughtPayload struct {
	PlayerId string `json:"playerId"`
	TileId   int    `json:"tileId"`
}

type BuildingBuiltPayload struct {
	PlayerId string `json:"playerId"`
	TileId   int    `json:"tileId"`
	Level    int    `json:"level"`
}

type PlayerJailedPayload struct {
	PlayerId       string `json:"playerId"`
	TurnsRemaining int    `json:"turnsRemaining"`
}

type PlayerFreedPayload struct {
	PlayerId string `json:"playerId"`
}

type TurnChangedPayload struct {
	CurrentPlayerId string `json:"currentPlayerId"`
}

type GameOverPayload struct {
	WinnerId string `json:"winnerId"`
}

type ChatMessagePayload struct {
	PlayerId   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
