// Package verification holds the worker onboarding state machine.
package verification

import (
	"errors"
	"fmt"
)

// Stage is the worker's position in the onboarding pipeline.
type Stage string

const (
	StageTNCPending         Stage = "TNC_PENDING"
	StageTNCAccepted        Stage = "TNC_ACCEPTED"
	StageAadharDocSubmitted Stage = "AADHAR_DOC_SUBMITTED"
	StagePhotoUploaded      Stage = "PHOTO_UPLOADED"
	StagePoliceDocSubmitted Stage = "POLICE_DOC_SUBMITTED"
	StageUnderReview        Stage = "UNDER_REVIEW"
	StageApproved           Stage = "APPROVED"
	StageRejected           Stage = "REJECTED"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{
	StageTNCPending,
	StageTNCAccepted,
	StageAadharDocSubmitted,
	StagePhotoUploaded,
	StagePoliceDocSubmitted,
	StageUnderReview,
	StageApproved,
	StageRejected,
}

func (s Stage) Valid() bool {
	for _, st := range Stages {
		if st == s {
			return true
		}
	}
	return false
}

// Submitted reports whether s is one of the document/photo submission stages.
func (s Stage) Submitted() bool {
	return s == StageAadharDocSubmitted || s == StagePhotoUploaded || s == StagePoliceDocSubmitted
}

// CurrentStep maps a stage to the client's step indicator. Unknown values map to 0.
func CurrentStep(s Stage) int {
	switch s {
	case StageTNCAccepted:
		return 1
	case StageAadharDocSubmitted, StagePhotoUploaded, StagePoliceDocSubmitted:
		return 2
	case StageUnderReview, StageRejected:
		return 3
	case StageApproved:
		return 4
	default:
		return 0
	}
}

// Trigger is an action that moves a worker between stages.
type Trigger string

const (
	TriggerAcceptTerms  Trigger = "accept_terms"
	TriggerUploadAadhar Trigger = "upload_aadhar"
	TriggerUploadPolice Trigger = "upload_police"
	TriggerUploadPhoto  Trigger = "upload_photo"
	TriggerStartReview  Trigger = "start_review"
	TriggerApprove      Trigger = "approve"
	TriggerReject       Trigger = "reject"
)

var ErrUndefinedTransition = errors.New("undefined verification transition")

// TransitionError names the stage and trigger of a refused transition.
type TransitionError struct {
	From    Stage
	Trigger Trigger
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while verification stage is %s", e.Trigger.describe(), e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrUndefinedTransition
}

func (t Trigger) describe() string {
	switch t {
	case TriggerAcceptTerms:
		return "accept terms"
	case TriggerUploadAadhar:
		return "upload Aadhar document"
	case TriggerUploadPolice:
		return "upload police verification"
	case TriggerUploadPhoto:
		return "upload profile photo"
	case TriggerStartReview:
		return "start review"
	case TriggerApprove:
		return "approve"
	case TriggerReject:
		return "reject"
	default:
		return string(t)
	}
}

type transition struct {
	to    Stage
	allow func(Stage) bool
}

func fromTermsOrSubmitted(s Stage) bool { return s == StageTNCAccepted || s.Submitted() }
func fromSubmittedOrReview(s Stage) bool { return s.Submitted() || s == StageUnderReview }

var transitions = map[Trigger]transition{
	TriggerAcceptTerms: {
		to:    StageTNCAccepted,
		allow: func(s Stage) bool { return s == StageTNCPending || s == StageTNCAccepted },
	},
	TriggerUploadAadhar: {to: StageAadharDocSubmitted, allow: fromTermsOrSubmitted},
	TriggerUploadPolice: {to: StagePoliceDocSubmitted, allow: fromTermsOrSubmitted},
	TriggerUploadPhoto:  {to: StagePhotoUploaded, allow: fromTermsOrSubmitted},
	TriggerStartReview:  {to: StageUnderReview, allow: Stage.Submitted},
	TriggerApprove:      {to: StageApproved, allow: fromSubmittedOrReview},
	TriggerReject:       {to: StageRejected, allow: fromSubmittedOrReview},
}

// Next returns the stage reached by applying t to from, or a *TransitionError
// when the pair is not in the transition table. REJECTED and APPROVED have no
// outgoing transitions.
func Next(from Stage, t Trigger) (Stage, error) {
	tr, ok := transitions[t]
	if !ok || !tr.allow(from) {
		return from, &TransitionError{From: from, Trigger: t}
	}
	return tr.to, nil
}

// Allowed reports whether t may fire from the given stage.
func Allowed(from Stage, t Trigger) bool {
	_, err := Next(from, t)
	return err == nil
}
