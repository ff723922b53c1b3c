package chat

import "context"

// Gateway delivers outbound messages to a user over the messaging
// transport. SendMarkdown sends rich text in the transport's dialect;
// SendPlain sends raw text.
type Gateway interface {
	SendPlain(ctx context.Context, userID int64, text string) error
	SendMarkdown(ctx context.Context, userID int64, text string) error
}
