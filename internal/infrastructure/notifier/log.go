package notifier

import (
	"context"

	"go.uber.org/zap"

	"rosterservice/internal/domain/notify"
)

// LogSink writes roster messages to the service log. Used when no Slack
// bot token is configured.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) PostMessage(ctx context.Context, channelID string, msg notify.Message) error {
	s.log.Info("roster_message",
		zap.String("channel_id", channelID),
		zap.String("header", msg.Header),
		zap.Strings("lines", msg.Lines),
	)
	return nil
}
