package coordination

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Author tags which side of the conversation produced a message.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Message is a single chat turn. ID, Author, and SentAt are immutable once
// the message is appended to a log; Text is preserved verbatim, embedded
// newlines included.
type Message struct {
	ID     string
	Author Author
	Text   string
	SentAt time.Time
}

// NewUserMessage creates a user turn with a fresh id and the current instant.
func NewUserMessage(text string) Message {
	return Message{ID: uuid.NewString(), Author: AuthorUser, Text: text, SentAt: time.Now()}
}

// NewAssistantMessage creates an assistant turn with a fresh id and the
// current instant.
func NewAssistantMessage(text string) Message {
	return Message{ID: uuid.NewString(), Author: AuthorAssistant, Text: text, SentAt: time.Now()}
}

// MessageLog is the append-only ordered sequence of chat turns. The host
// application owns appends; the coordinator only reads it. Messages are
// never removed or reordered.
type MessageLog struct {
	mu       sync.RWMutex
	messages []Message
}

// Append adds a turn to the end of the log, filling in the id and timestamp
// when the host left them zero. It returns the stored message.
func (l *MessageLog) Append(message Message) Message {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.SentAt.IsZero() {
		message.SentAt = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, message)
	return message
}

// Len reports the number of stored turns.
func (l *MessageLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.messages)
}

// Contains reports whether a message with the given id is in the log.
func (l *MessageLog) Contains(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, message := range l.messages {
		if message.ID == id {
			return true
		}
	}
	return false
}

// Values is an iterator that goes over all the stored turns starting from
// the earliest towards the latest.
func (l *MessageLog) Values(yield func(Message) bool) {
	for _, message := range l.copyOfMessages() {
		if !yield(message) {
			return
		}
	}
}

// RValues is an iterator that goes over all the stored turns starting from
// the latest towards the earliest.
func (l *MessageLog) RValues(yield func(Message) bool) {
	for _, message := range slices.Backward(l.copyOfMessages()) {
		if !yield(message) {
			return
		}
	}
}

// Snapshot returns a deep point-in-time copy of the log, detached from any
// later appends.
func (l *MessageLog) Snapshot() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var messages []Message
	if err := copier.CopyWithOption(&messages, l.messages, copier.Option{DeepCopy: true}); err != nil {
		messages = make([]Message, len(l.messages))
		copy(messages, l.messages)
	}
	return messages
}

func (l *MessageLog) copyOfMessages() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	messages := make([]Message, len(l.messages))
	copy(messages, l.messages)
	return messages
}
