package notification

import "github.com/ttnguyen-dev/bankcore/internal/logger"

// LogSink mirrors every notification into the service log. It is always
// registered so notifications are observable even without a real channel.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Name() string {
	return "log"
}

func (s *LogSink) Send(message string) error {
	logger.Info("notification", logger.Fields{"message": message})
	return nil
}
