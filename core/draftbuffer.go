package coordination

import (
	"strings"
	"sync"
)

// draftBuffer holds the in-progress text the user is composing. It is owned
// exclusively by the coordinator and cleared exactly once per successful
// submission.
type draftBuffer struct {
	mu   sync.Mutex
	text string
}

func (b *draftBuffer) Set(text string) {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
}

func (b *draftBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.text
}

// Trimmed returns the draft with leading and trailing whitespace removed.
func (b *draftBuffer) Trimmed() string {
	return strings.TrimSpace(b.String())
}

func (b *draftBuffer) Clear() {
	b.mu.Lock()
	b.text = ""
	b.mu.Unlock()
}
