package notifier

import "context"

// LogSink пишет сообщения в лог вместо реальной доставки
type LogSink struct {
	logger Logger
}

func NewLogSink(logger Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, msg *Message) error {
	s.logger.Info("Notification %s [%s] to=%s subject=%q", msg.ID, msg.Type, msg.To, msg.Subject)
	return nil
}
