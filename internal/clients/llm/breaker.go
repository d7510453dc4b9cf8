package llm

import (
	"github.com/sony/gobreaker/v2"
	log "github.com/sirupsen/logrus"
	"time"
)

type BreakerSettings struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

type breaker struct {
	cb *gobreaker.CircuitBreaker[string]
}

func newBreaker(name string, settings BreakerSettings) *breaker {
	if !settings.Enabled {
		return nil
	}

	return &breaker{cb: gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= settings.MinRequests && failureRatio >= settings.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("circuit breaker %s changed state from %s to %s", name, from, to)
		},
	})}
}

func (b *breaker) execute(fn func() (string, error)) (string, error) {
	if b == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

func (b *breaker) state() string {
	if b == nil {
		return "disabled"
	}
	return b.cb.State().String()
}
