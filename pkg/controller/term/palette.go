package term

import "github.com/fatih/color"

type palette struct {
	title *color.Color
	info  *color.Color
	err   *color.Color
	dim   *color.Color
	added *color.Color
	gone  *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		title: color.New(color.FgCyan, color.Bold),
		info:  color.New(color.FgGreen),
		err:   color.New(color.FgRed),
		dim:   color.New(color.FgHiBlack),
		added: color.New(color.FgGreen),
		gone:  color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.title, p.info, p.err, p.dim, p.added, p.gone} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
