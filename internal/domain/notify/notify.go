package notify

import "context"

// Message is the rendered roster payload: a header plus one line per
// member. Transport renders it into whatever block format it speaks.
type Message struct {
	Header string
	Lines  []string
}

func NewRosterMessage(members []string) Message {
	return Message{
		Header: "Roster",
		Lines:  append([]string(nil), members...),
	}
}

type Sink interface {
	PostMessage(ctx context.Context, channelID string, msg Message) error
}
