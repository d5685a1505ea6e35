package coordination

// speechTarget is the single playback-selection slot: either no target or
// exactly one selected message id. Message ids are uuids and never empty,
// so the zero value doubles as the no-target state. Keeping the slot a
// single field makes the at-most-one invariant structural instead of a
// per-message flag that can drift.
type speechTarget struct {
	id string
}

func (t *speechTarget) IsNone() bool {
	return t == nil || t.id == ""
}

// Is reports whether the slot currently selects the given message.
func (t *speechTarget) Is(messageID string) bool {
	return t != nil && messageID != "" && t.id == messageID
}

// ID returns the selected message id, or false when the slot is empty.
func (t *speechTarget) ID() (string, bool) {
	if t.IsNone() {
		return "", false
	}
	return t.id, true
}

// Select retargets the slot. Selecting while another message is selected is
// a switch, not a queue: the previous selection is simply superseded.
func (t *speechTarget) Select(messageID string) {
	if t == nil {
		return
	}
	t.id = messageID
}

// Clear empties the slot. Safe to call when already empty; reports whether
// anything was cleared.
func (t *speechTarget) Clear() bool {
	if t.IsNone() {
		return false
	}
	t.id = ""
	return true
}
