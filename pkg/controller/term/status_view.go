package term

import (
	"fmt"
	"io"
	"sync"

	"github.com/secmon-lab/notepad/pkg/domain/model"
	"github.com/secmon-lab/notepad/pkg/page"
)

// StatusView prints the status area of the current page whenever it changes
type StatusView struct {
	out     io.Writer
	colors  *palette
	mu      sync.Mutex
	current model.StatusMessage
	unwatch func()
}

func NewStatusView(out io.Writer, colors *palette) *StatusView {
	return &StatusView{out: out, colors: colors}
}

// Attach follows the status of p
func (v *StatusView) Attach(p page.Page) {
	v.Detach()

	unwatch := p.OnStatus(v.show)

	v.mu.Lock()
	v.current = p.Status()
	v.unwatch = unwatch
	v.mu.Unlock()
}

func (v *StatusView) Detach() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.unwatch != nil {
		v.unwatch()
		v.unwatch = nil
	}
	v.current = model.StatusMessage{}
}

func (v *StatusView) show(msg model.StatusMessage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = msg
	if msg.IsEmpty() {
		return
	}
	if msg.IsError {
		fmt.Fprintln(v.out, v.colors.err.Sprint("! "+msg.Text))
		return
	}
	fmt.Fprintln(v.out, v.colors.info.Sprint("* "+msg.Text))
}

// Current returns the status being displayed
func (v *StatusView) Current() model.StatusMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}
