package pipeline

import (
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

var t0 = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func Test_Transition_SameStatusIsNoop(t *testing.T) {
	applied := t0
	job := models.SavedJob{Status: models.StatusApplied, AppliedDate: &applied}

	changed, err := Transition(&job, models.StatusApplied, t0.Add(time.Hour))
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, t0, *job.AppliedDate)
	assert.Nil(t, job.InterviewDate)
}

func Test_Transition_HistoryIsCumulative(t *testing.T) {
	job := models.SavedJob{Status: models.StatusSaved}

	_, err := Transition(&job, models.StatusApplied, t0)
	require.NoError(t, err)
	_, err = Transition(&job, models.StatusInterviewing, t0.Add(48*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, models.StatusInterviewing, job.Status)
	require.NotNil(t, job.AppliedDate)
	assert.Equal(t, t0, *job.AppliedDate)
	require.NotNil(t, job.InterviewDate)
	assert.Equal(t, t0.Add(48*time.Hour), *job.InterviewDate)

	_, err = Transition(&job, models.StatusRejected, t0.Add(96*time.Hour))
	require.NoError(t, err)
	assert.NotNil(t, job.AppliedDate)
	assert.NotNil(t, job.InterviewDate)
	assert.NotNil(t, job.RejectedDate)
}

func Test_Transition_BackwardsMoveKeepsDates(t *testing.T) {
	job := models.SavedJob{Status: models.StatusSaved}
	_, _ = Transition(&job, models.StatusApplied, t0)
	_, _ = Transition(&job, models.StatusSaved, t0.Add(time.Hour))
	_, _ = Transition(&job, models.StatusApplied, t0.Add(2*time.Hour))

	assert.Equal(t, t0, *job.AppliedDate)
}

func Test_Transition_RejectsUnknownStatus(t *testing.T) {
	job := models.SavedJob{Status: models.StatusSaved}
	_, err := Transition(&job, "ghosted", t0)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.StatusSaved, job.Status)
}

func Test_Table_CoversEveryPair(t *testing.T) {
	tests := []struct {
		to       models.ApplicationStatus
		expected DateField
	}{
		{models.StatusSaved, NoDate},
		{models.StatusApplied, AppliedDate},
		{models.StatusInterviewing, InterviewDate},
		{models.StatusOffer, OfferDate},
		{models.StatusRejected, RejectedDate},
	}

	for _, from := range models.ApplicationStatuses {
		for _, tt := range tests {
			if from == tt.to {
				continue
			}
			field, err := FieldFor(from, tt.to)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, field, "%s -> %s", from, tt.to)
		}
	}
}
