package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/secmon-lab/notepad/pkg/domain/types"
)

// AuthView renders the tab bar of the auth page
type AuthView struct {
	out    io.Writer
	colors *palette
}

func NewAuthView(out io.Writer, colors *palette) *AuthView {
	return &AuthView{out: out, colors: colors}
}

// Render prints the tabs with active highlighted, plus the matching command hint
func (v *AuthView) Render(active types.AuthTab) {
	tabs := make([]string, 0, len(types.AllAuthTabs()))
	for _, tab := range types.AllAuthTabs() {
		if tab == active {
			tabs = append(tabs, v.colors.title.Sprintf("[%s]", tab))
		} else {
			tabs = append(tabs, v.colors.dim.Sprintf(" %s ", tab))
		}
	}
	fmt.Fprintln(v.out, strings.Join(tabs, " "))
	fmt.Fprintln(v.out, v.colors.dim.Sprintf("  %s <username> <password>", active))
}
