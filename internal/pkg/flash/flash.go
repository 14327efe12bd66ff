package flash

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Message categories
const (
	Success = "success"
	Info    = "info"
	Warning = "warning"
	Danger  = "danger"
)

const sessionKey = "_flashes"

// Message is a one-shot notice shown on the next page view
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Store keeps flash messages in the fiber session
type Store struct {
	sessions *session.Store
}

// NewStore creates a flash store on top of a session store
func NewStore(sessions *session.Store) *Store {
	return &Store{sessions: sessions}
}

// Add queues a message for the next page view
func (s *Store) Add(c *fiber.Ctx, category, text string) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}

	messages := decode(sess.Get(sessionKey))
	messages = append(messages, Message{Category: category, Text: text})

	raw, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	sess.Set(sessionKey, string(raw))
	return sess.Save()
}

// Pop returns and clears queued messages
func (s *Store) Pop(c *fiber.Ctx) []Message {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil
	}

	messages := decode(sess.Get(sessionKey))
	if len(messages) == 0 {
		return nil
	}
	sess.Delete(sessionKey)
	_ = sess.Save()
	return messages
}

// session values are stored as JSON strings so the default gob storage needs no type registration
func decode(v interface{}) []Message {
	raw, ok := v.(string)
	if !ok || raw == "" {
		return nil
	}
	var messages []Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil
	}
	return messages
}
