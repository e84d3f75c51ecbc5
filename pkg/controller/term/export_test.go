package term

import "io"

// NewPlainViews builds views without colours for testing
func NewPlainViews(out io.Writer) (*NoteListView, *StatusView, *AuthView) {
	colors := newPalette(false)
	return NewNoteListView(out, colors), NewStatusView(out, colors), NewAuthView(out, colors)
}
