package events

// KindMessageAppended identifies a host append to the message log.
const KindMessageAppended Kind = "conversation.message_appended"

// MessageAppended notifies the coordinator that the host appended a turn to
// the message log. The coordinator never appends messages itself.
type MessageAppended struct {
	Base
	MessageID string
}

// NewMessageAppended creates a message appended event.
func NewMessageAppended(messageID string) MessageAppended {
	return MessageAppended{Base: NewBase(KindMessageAppended), MessageID: messageID}
}
