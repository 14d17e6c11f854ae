package monitor

import (
	"context"
	"log/slog"

	"UXTester/internal/domain"
	"UXTester/internal/ports"
)

// LogSink emits regression alerts to the log. It is the always-on sink; alerts
// are advisory and this is their minimum delivery guarantee.
type LogSink struct {
	logger *slog.Logger
}

var _ ports.AlertSink = (*LogSink)(nil)

// NewLogSink wires the logger used for alert lines.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Notify logs the score regression.
func (s *LogSink) Notify(_ context.Context, site domain.MonitoredSite, oldScore int) error {
	if s.logger != nil {
		s.logger.Warn("score dropped",
			"url", site.URL,
			"old_score", oldScore,
			"new_score", site.Score,
			"status", site.Status)
	}
	return nil
}

// MultiSink fans one alert out to several sinks. Individual sink failures do
// not stop delivery to the others; the first error is reported.
type MultiSink []ports.AlertSink

var _ ports.AlertSink = (MultiSink)(nil)

// Notify delivers the alert to every sink.
func (m MultiSink) Notify(ctx context.Context, site domain.MonitoredSite, oldScore int) error {
	var first error
	for _, sink := range m {
		if err := sink.Notify(ctx, site, oldScore); err != nil && first == nil {
			first = err
		}
	}
	return first
}
