package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var symbols = map[Kind]string{
	KindSuccess: "✔",
	KindInfo:    "ℹ",
	KindWarning: "!",
	KindError:   "✖",
}

// Console writes one styled line per notification. Colours are dropped
// automatically when w is not a terminal.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[Kind]lipgloss.Style
}

func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	base := r.NewStyle().Bold(true)
	return &Console{
		w: w,
		styles: map[Kind]lipgloss.Style{
			KindSuccess: base.Foreground(lipgloss.Color("10")),
			KindInfo:    base.Foreground(lipgloss.Color("12")),
			KindWarning: base.Foreground(lipgloss.Color("11")),
			KindError:   base.Foreground(lipgloss.Color("9")),
		},
	}
}

func (c *Console) Notify(_ context.Context, n Notification) {
	style, ok := c.styles[n.Kind]
	if !ok {
		style = c.styles[KindInfo]
	}
	sym := symbols[n.Kind]
	if sym == "" {
		sym = symbols[KindInfo]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, style.Render(sym+" "+n.Message))
}
