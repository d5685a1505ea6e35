package main

import (
	"fmt"
	"strings"
	"time"

	coordination "github.com/lenavoss/converse-core/core"
)

// responder is a scripted stand-in for a response pipeline. It drives the
// processing signal around a canned reply so the full signal round-trip can
// be exercised without a language model behind it.
type responder struct {
	coordinator *coordination.Coordinator
	delay       time.Duration
	replied     int

	// onReply runs after the assistant turn is appended, outside the
	// processing window.
	onReply func(message coordination.Message)
}

var cannedReplies = []string{
	"I heard you. Tell me more.",
	"That makes sense.\nWhat would you like to do next?",
	"Got it. I noted that down.",
	"Interesting. I had not considered that angle.",
}

func (r *responder) Respond(userText string) {
	go func() {
		r.coordinator.SetProcessing(true)
		time.Sleep(r.delay)

		reply := cannedReplies[r.replied%len(cannedReplies)]
		r.replied++
		if strings.Contains(strings.ToLower(userText), "hello") {
			reply = fmt.Sprintf("Hello! You said: %q", userText)
		}

		message := r.coordinator.AppendMessage(coordination.NewAssistantMessage(reply))
		r.coordinator.SetProcessing(false)

		if r.onReply != nil {
			r.onReply(message)
		}
	}()
}
