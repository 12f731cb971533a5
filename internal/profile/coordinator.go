package profile

import (
	"context"
	"errors"

	"github.com/kotoed/denizen/pkg/slogx"
)

// ActionKind selects which form a submission sends.
type ActionKind int

const (
	ActionProfile ActionKind = iota
	ActionPassword
)

func (k ActionKind) String() string {
	switch k {
	case ActionProfile:
		return "save_profile"
	case ActionPassword:
		return "change_password"
	default:
		return "unknown"
	}
}

// State is how a submission ended.
type State int

const (
	// Ignored: another submission was in flight.
	Ignored State = iota
	// Blocked: committed local errors prevented the remote call.
	Blocked
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Ignored:
		return "ignored"
	case Blocked:
		return "blocked"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type Outcome struct {
	Kind  ActionKind
	State State
	Err   error // set when State is Failed
}

// action is what differs between the two submissions.
type action struct {
	// clear is unset in the shadow buffer before the commit.
	clear []Flag
	call  func(ctx context.Context, svc Service, snap Snapshot) error
	// flagFor maps a remote error to a form flag.
	flagFor func(err error) (Flag, bool)
}

var actions = map[ActionKind]action{
	ActionProfile: {
		call: func(ctx context.Context, svc Service, snap Snapshot) error {
			return svc.UpdateProfile(ctx, snap.Profile)
		},
		flagFor: func(error) (Flag, bool) { return 0, false },
	},
	ActionPassword: {
		clear: []Flag{IncorrectPassword},
		call: func(ctx context.Context, svc Service, snap Snapshot) error {
			return svc.ChangePassword(ctx, snap.Password)
		},
		flagFor: func(err error) (Flag, bool) {
			if errors.Is(err, ErrIncorrectOldPassword) {
				return IncorrectPassword, true
			}
			return 0, false
		},
	},
}

// Coordinator runs save and change-password submissions against a Service.
type Coordinator struct {
	form     *Controller
	svc      Service
	reporter ErrorReporter
}

// NewCoordinator wires a form to a service. A nil reporter logs failures.
func NewCoordinator(form *Controller, svc Service, reporter ErrorReporter) *Coordinator {
	if reporter == nil {
		reporter = LogReporter{}
	}
	return &Coordinator{form: form, svc: svc, reporter: reporter}
}

// Form returns the controller the coordinator submits.
func (c *Coordinator) Form() *Controller { return c.form }

func (c *Coordinator) Save(ctx context.Context) Outcome { return c.Submit(ctx, ActionProfile) }

func (c *Coordinator) SavePassword(ctx context.Context) Outcome {
	return c.Submit(ctx, ActionPassword)
}

// Submit commits pending errors and, when none are set, calls the remote
// service with the form disabled. At most one submission runs at a time.
// The form is re-enabled however the call ends, including a panic.
func (c *Coordinator) Submit(ctx context.Context, kind ActionKind) Outcome {
	act, ok := actions[kind]
	if !ok {
		return Outcome{Kind: kind, State: Ignored}
	}

	snap, started, blocked := c.form.beginSubmit(act.clear)
	switch {
	case blocked:
		return Outcome{Kind: kind, State: Blocked}
	case !started:
		return Outcome{Kind: kind, State: Ignored}
	}

	ctx = slogx.With(ctx, "denizen_id", snap.Profile.ID)

	succeeded := false
	var fail *Flag
	defer func() { c.form.endSubmit(succeeded, fail) }()

	err := act.call(ctx, c.svc, snap)
	if err == nil {
		succeeded = true
		return Outcome{Kind: kind, State: Succeeded}
	}

	if f, ok := act.flagFor(err); ok {
		fail = &f
	} else {
		c.reporter.Report(ctx, kind, err)
	}
	return Outcome{Kind: kind, State: Failed, Err: err}
}
