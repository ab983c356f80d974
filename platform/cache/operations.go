package cache

import (
	"fmt"

	"github.com/gomodule/redigo/redis"
)

// chat history retention per room
const chatHistoryLimit = 100

func chatKey(roomCode string) string {
	return fmt.Sprintf("chat:%s", roomCode)
}

// PushChat appends a serialized chat message to a room's history, trimmed to
// the most recent entries.
func PushChat(pool *redis.Pool, roomCode string, message []byte) error {
	if pool == nil {
		return nil
	}
	conn := pool.Get()
	defer conn.Close()

	key := chatKey(roomCode)
	if _, err := conn.Do("RPUSH", key, message); err != nil {
		return err
	}
	_, err := conn.Do("LTRIM", key, -chatHistoryLimit, -1)
	return err
}

// ChatHistory returns a room's stored chat messages, oldest first.
func ChatHistory(pool *redis.Pool, roomCode string) ([][]byte, error) {
	if pool == nil {
		return nil, nil
	}
	conn := pool.Get()
	defer conn.Close()

	return redis.ByteSlices(conn.Do("LRANGE", chatKey(roomCode), 0, -1))
}

// DropChat deletes a room's history, called when the room is destroyed.
func DropChat(pool *redis.Pool, roomCode string) error {
	if pool == nil {
		return nil
	}
	conn := pool.Get()
	defer conn.Close()

	_, err := conn.Do("DEL", chatKey(roomCode))
	return err
}
