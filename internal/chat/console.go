package chat

import (
	"context"
	"fmt"
	"io"

	"github.com/kireev-dev/personabot/internal/textfilter"
)

// ConsoleGateway writes messages to a terminal. Used for local runs and
// smoke testing without a messenger account.
type ConsoleGateway struct {
	w io.Writer
}

// NewConsoleGateway wraps the given writer.
func NewConsoleGateway(w io.Writer) *ConsoleGateway {
	return &ConsoleGateway{w: w}
}

func (g *ConsoleGateway) SendPlain(_ context.Context, _ int64, text string) error {
	_, err := fmt.Fprintln(g.w, text)
	return err
}

// SendMarkdown prints the styled text with escapes stripped, since a
// terminal has no rich-text dialect.
func (g *ConsoleGateway) SendMarkdown(_ context.Context, _ int64, text string) error {
	_, err := fmt.Fprintln(g.w, textfilter.Unescape(text))
	return err
}
