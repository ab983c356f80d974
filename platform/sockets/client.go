package sockets

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"tycoon-backend/app/game"
	"tycoon-backend/app/models"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

// Client is one live connection and its identity: which player it speaks
// for and which room it sits in. playerId and room are only touched from
// the connection's read loop.
type Client struct {
	conn *websocket.Conn
	send chan models.Event
	done chan struct{}
	once sync.Once

	playerId string
	room     *game.Room
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan models.Event, sendBufferSize),
		done: make(chan struct{}),
	}
}

// Send queues an event for delivery. It never blocks: a closed connection
// or a full buffer (a consumer that stopped reading) reports false so the
// room drops the subscription. Implements game.Subscriber.
func (c *Client) Send(event models.Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- event:
		return true
	default:
		c.shutdown()
		return false
	}
}

// writePump is the single writer for the connection; it serializes queued
// events onto the wire in the order they were committed.
func (c *Client) writePump() {
	for {
		select {
		case event := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				c.shutdown()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) shutdown() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}
