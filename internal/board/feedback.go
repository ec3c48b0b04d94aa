package board

// Kind styles a feedback message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is the single feedback slot of a page.
type Message struct {
	Text    string `json:"text"`
	Kind    Kind   `json:"kind,omitempty"`
	Visible bool   `json:"visible"`
}

// Message returns the current feedback state.
func (b *Board) Message() Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.feedback
}

// showLocked overwrites the feedback slot and restarts the hide countdown.
// Only one countdown is live per board: a newer message cancels the older
// timer, and a timer that already fired only hides the message it was
// started for.
func (b *Board) showLocked(text string, kind Kind) {
	b.feedback = Message{Text: text, Kind: kind, Visible: true}
	b.message.SetText(text)
	b.message.SetClass(string(kind))

	if b.hideTimer != nil {
		b.hideTimer.Stop()
	}
	b.showSeq++
	seq := b.showSeq
	b.hideTimer = b.afterFunc(b.messageTimeout, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.showSeq != seq {
			return
		}
		b.hideLocked()
	})
}

func (b *Board) hideLocked() {
	b.feedback.Visible = false
	b.hideTimer = nil
	if b.feedback.Kind != "" {
		b.message.SetClass(string(b.feedback.Kind), "hidden")
		return
	}
	b.message.SetClass("hidden")
}
