package workflow

import "errors"

var (
	// ErrConfirmationRequired marks an action that must not be sent until
	// the user has explicitly acknowledged it.
	ErrConfirmationRequired = errors.New("explicit confirmation required")

	// ErrSubmitInFlight guards against duplicate submissions from rapid
	// repeated clicks.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrWrongStep signals an action that is not valid for the wizard's
	// current step.
	ErrWrongStep = errors.New("action not valid at this step")

	ErrMissingTimeRange = errors.New("start and end times are required")

	// ErrNoAvailability is the step-1 gate: no rooms and no instructors
	// match the window. Equipment alone never opens step 2.
	ErrNoAvailability = errors.New("no available rooms or instructors for this time slot")

	// ErrUnknownResource rejects selections outside the candidate sets.
	ErrUnknownResource = errors.New("resource is not in the availability results")

	ErrQueueUnavailable = errors.New("approval queue is unavailable")
)
