package domain

const titlePrefix = "Pomo"

const (
	MessageFocusCompleted = "Focus completed, let's take a break!"
	MessageBreakOver      = "Break is over, back to work!"
	MessageFocusStarted   = "Your focus session has started!"
	MessageBreakStarted   = "Your break has started!"
	MessageStopped        = "Your session has stopped!"
)

// Alert is a one-way message for the notification sink. An empty Sound
// means the sink's default sound.
type Alert struct {
	Title    string
	Subtitle string
	Sound    string
}

func NewAlert(emoji, message, sound string) Alert {
	title := titlePrefix
	if emoji != "" {
		title += " " + emoji
	}
	return Alert{Title: title, Subtitle: message, Sound: sound}
}

// CompletionAlert is the alert for a record that reached its end. ok is false
// for Idle, which never alerts.
func CompletionAlert(r Record, prefs Preferences) (Alert, bool) {
	switch r.Type {
	case TypeFocus:
		return NewAlert(prefs.BreakEmoji, MessageFocusCompleted, prefs.EndSound), true
	case TypeBreak:
		return NewAlert(prefs.FocusEmoji, MessageBreakOver, prefs.EndSound), true
	default:
		return Alert{}, false
	}
}
