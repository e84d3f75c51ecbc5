package model

// StatusMessage is the single transient message a page shows. It is overwritten, never queued.
type StatusMessage struct {
	Text    string
	IsError bool
}

// InfoStatus returns a non-error message
func InfoStatus(text string) StatusMessage {
	return StatusMessage{Text: text}
}

// ErrorStatus returns a message carrying the error marker
func ErrorStatus(text string) StatusMessage {
	return StatusMessage{Text: text, IsError: true}
}

// IsEmpty reports whether the message is cleared
func (s StatusMessage) IsEmpty() bool {
	return s.Text == "" && !s.IsError
}
