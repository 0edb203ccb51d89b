package verification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentStep(t *testing.T) {
	cases := []struct {
		stage Stage
		step  int
	}{
		{StageTNCPending, 0},
		{StageTNCAccepted, 1},
		{StageAadharDocSubmitted, 2},
		{StagePhotoUploaded, 2},
		{StagePoliceDocSubmitted, 2},
		{StageUnderReview, 3},
		{StageRejected, 3},
		{StageApproved, 4},
		{Stage("SOMETHING_ELSE"), 0},
		{Stage(""), 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.step, CurrentStep(tc.stage), string(tc.stage))
	}
}

func TestCurrentStepIsTotal(t *testing.T) {
	for _, s := range Stages {
		step := CurrentStep(s)
		assert.GreaterOrEqual(t, step, 0)
		assert.LessOrEqual(t, step, 4)
	}
}

func TestHappyPath(t *testing.T) {
	stage := StageTNCPending
	for _, trig := range []Trigger{TriggerAcceptTerms, TriggerUploadPhoto, TriggerUploadPolice, TriggerUploadAadhar, TriggerApprove} {
		next, err := Next(stage, trig)
		require.NoError(t, err, "%s from %s", trig, stage)
		stage = next
	}
	assert.Equal(t, StageApproved, stage)
}

func TestSubmissionOrderIsFree(t *testing.T) {
	for _, from := range []Stage{StageTNCAccepted, StageAadharDocSubmitted, StagePhotoUploaded, StagePoliceDocSubmitted} {
		for trig, want := range map[Trigger]Stage{
			TriggerUploadAadhar: StageAadharDocSubmitted,
			TriggerUploadPolice: StagePoliceDocSubmitted,
			TriggerUploadPhoto:  StagePhotoUploaded,
		} {
			got, err := Next(from, trig)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}

func TestAcceptTermsIsIdempotent(t *testing.T) {
	got, err := Next(StageTNCAccepted, TriggerAcceptTerms)
	require.NoError(t, err)
	assert.Equal(t, StageTNCAccepted, got)
}

func TestUndefinedTransitions(t *testing.T) {
	cases := []struct {
		from Stage
		trig Trigger
	}{
		{StageTNCPending, TriggerUploadAadhar},
		{StageTNCPending, TriggerUploadPhoto},
		{StageTNCPending, TriggerApprove},
		{StageTNCAccepted, TriggerApprove},
		{StageTNCAccepted, TriggerStartReview},
		{StageAadharDocSubmitted, TriggerAcceptTerms},
		{StageUnderReview, TriggerUploadPolice},
		{StageUnderReview, TriggerStartReview},
		{StageApproved, TriggerReject},
		{StageApproved, TriggerUploadAadhar},
		{StageRejected, TriggerUploadAadhar},
		{StageRejected, TriggerApprove},
		{StageRejected, TriggerAcceptTerms},
		{StageTNCAccepted, Trigger("teleport")},
	}
	for _, tc := range cases {
		got, err := Next(tc.from, tc.trig)
		require.Error(t, err, "%s from %s", tc.trig, tc.from)
		assert.True(t, errors.Is(err, ErrUndefinedTransition))
		assert.Equal(t, tc.from, got)
		assert.False(t, Allowed(tc.from, tc.trig))

		var te *TransitionError
		require.ErrorAs(t, err, &te)
		assert.Contains(t, err.Error(), string(tc.from))
	}
}

func TestReviewFromEverySubmissionStage(t *testing.T) {
	for _, from := range []Stage{StageAadharDocSubmitted, StagePhotoUploaded, StagePoliceDocSubmitted, StageUnderReview} {
		got, err := Next(from, TriggerReject)
		require.NoError(t, err)
		assert.Equal(t, StageRejected, got)

		got, err = Next(from, TriggerApprove)
		require.NoError(t, err)
		assert.Equal(t, StageApproved, got)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, StageUnderReview.Valid())
	assert.False(t, Stage("under_review").Valid())
}
