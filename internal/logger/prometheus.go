package logger

import (
	"github.com/maxaizer/job-copilot/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// errorsHook counts logged problems per error type. Warnings are counted too:
// failed store refetches and partially delivered digests log at that level.
type errorsHook struct{}

func (h *errorsHook) Fire(entry *log.Entry) error {
	errorType, ok := entry.Data[ErrorTypeField].(string)
	if !ok {
		if entry.Level == log.WarnLevel {
			return nil
		}
		errorType = "unknown"
	}

	metrics.ErrorsCounter.WithLabelValues(errorType, entry.Level.String()).Inc()
	return nil
}

func (h *errorsHook) Levels() []log.Level {
	return []log.Level{
		log.WarnLevel,
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

func addErrorsHook() {
	log.AddHook(&errorsHook{})
}
