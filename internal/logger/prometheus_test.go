package logger

import (
	"github.com/maxaizer/job-copilot/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_ErrorsHook_CountsByTypeAndLevel(t *testing.T) {
	hook := &errorsHook{}

	dbErrors := metrics.ErrorsCounter.WithLabelValues(ErrorTypeDb, "error")
	dbWarnings := metrics.ErrorsCounter.WithLabelValues(ErrorTypeDb, "warning")
	unknown := metrics.ErrorsCounter.WithLabelValues("unknown", "error")

	before := []float64{testutil.ToFloat64(dbErrors), testutil.ToFloat64(dbWarnings), testutil.ToFloat64(unknown)}

	fire := func(level log.Level, fields log.Fields) {
		assert.NoError(t, hook.Fire(&log.Entry{Level: level, Data: fields}))
	}
	fire(log.ErrorLevel, log.Fields{ErrorTypeField: ErrorTypeDb})
	fire(log.WarnLevel, log.Fields{ErrorTypeField: ErrorTypeDb})
	fire(log.ErrorLevel, log.Fields{})
	fire(log.WarnLevel, log.Fields{})

	assert.Equal(t, before[0]+1, testutil.ToFloat64(dbErrors))
	assert.Equal(t, before[1]+1, testutil.ToFloat64(dbWarnings))
	assert.Equal(t, before[2]+1, testutil.ToFloat64(unknown))
}
