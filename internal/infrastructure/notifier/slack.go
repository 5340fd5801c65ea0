package notifier

import (
	"context"

	"github.com/slack-go/slack"

	"rosterservice/internal/domain/notify"
)

// SlackSink posts roster messages to a Slack channel, rendering the
// header and each member line as plain-text section blocks.
type SlackSink struct {
	client *slack.Client
}

func NewSlackSink(botToken string) *SlackSink {
	return &SlackSink{client: slack.New(botToken)}
}

func (s *SlackSink) PostMessage(ctx context.Context, channelID string, msg notify.Message) error {
	blocks := make([]slack.Block, 0, len(msg.Lines)+1)
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.PlainTextType, msg.Header, true, false),
		nil, nil,
	))
	for _, line := range msg.Lines {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.PlainTextType, line, true, false),
			nil, nil,
		))
	}

	_, _, err := s.client.PostMessageContext(ctx, channelID, slack.MsgOptionBlocks(blocks...))
	return err
}
