package profile

import (
	"sync"

	"github.com/kotoed/denizen/pkg/profilesdk"
)

// Field identifies an editable profile field.
type Field int

const (
	FieldEmail Field = iota
	FieldFirstName
	FieldLastName
	FieldGroup
)

// PasswordField identifies a field of the password form.
type PasswordField int

const (
	FieldOldPassword PasswordField = iota
	FieldNewPassword
	FieldNewPasswordConfirm
)

// Snapshot is a consistent copy of everything a view renders.
type Snapshot struct {
	Profile  ProfileRecord
	Password PasswordChangeRecord
	Errors   ErrorSet // committed
	Disabled bool
	Success  bool
}

// Messages returns the messages of the committed errors.
func (s Snapshot) Messages() []string { return s.Errors.Messages() }

// Option configures a Controller.
type Option func(*Controller)

// WithOnChange registers fn to receive a snapshot after every applied mutation.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.listeners = append(c.listeners, fn) }
}

// Controller owns the profile and password forms and their error buffers.
//
// Field setters write to the shadow buffer only. CommitErrors is the single
// place the committed set changes, and HasErrors reads only the committed set.
type Controller struct {
	mu sync.Mutex

	profile  ProfileRecord
	password PasswordChangeRecord

	shadow    ErrorSet
	committed ErrorSet

	disabled bool
	success  bool

	listeners []func(Snapshot)
}

// NewController builds a controller for a loaded profile. The password form
// starts empty and carries the same id.
func NewController(p ProfileRecord, opts ...Option) *Controller {
	c := &Controller{
		profile:  p.clone(),
		password: PasswordChangeRecord{ID: p.ID},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers an additional listener.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// update applies fn under the lock, then notifies listeners with the state
// fn produced. Listeners run outside the lock and may call back in.
func (c *Controller) update(fn func()) {
	c.mu.Lock()
	fn()
	snap := c.snapshotLocked()
	listeners := append([]func(Snapshot){}, c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Profile:  c.profile.clone(),
		Password: c.password,
		Errors:   c.committed,
		Disabled: c.disabled,
		Success:  c.success,
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetProfileField edits one profile field and clears success. Email edits
// are validated, see SetEmail.
func (c *Controller) SetProfileField(f Field, value string) {
	if f == FieldEmail {
		c.SetEmail(value)
		return
	}

	c.update(func() {
		c.success = false
		v := value
		switch f {
		case FieldFirstName:
			c.profile.FirstName = &v
		case FieldLastName:
			c.profile.LastName = &v
		case FieldGroup:
			c.profile.Group = &v
		}
	})
}

// SetPowerMode edits the feature flag and clears success.
func (c *Controller) SetPowerMode(on bool) {
	c.update(func() {
		c.success = false
		c.profile.PowerMode = on
	})
}

// SetEmail edits the email, clears success and re-validates it into the
// shadow buffer. The empty string is a valid (absent) email.
func (c *Controller) SetEmail(value string) {
	c.update(func() {
		c.success = false
		c.profile.Email = &value

		c.shadow[BadEmail] = false
		if !profilesdk.ValidEmail(value) {
			c.shadow[BadEmail] = true
		}
	})
}

// SetPasswordField edits one password field, clears success and
// re-evaluates emptiness and then mismatch. Both may end up set.
func (c *Controller) SetPasswordField(f PasswordField, value string) {
	c.update(func() {
		c.success = false
		switch f {
		case FieldOldPassword:
			c.password.OldPassword = value
			// A new old password may be the right one.
			c.shadow[IncorrectPassword] = false
		case FieldNewPassword:
			c.password.NewPassword = value
		case FieldNewPasswordConfirm:
			c.password.NewPasswordConfirm = value
		}

		p := c.password
		c.shadow[EmptyPassword] = false
		c.shadow[PasswordsDontMatch] = false
		if p.OldPassword == "" || p.NewPassword == "" || p.NewPasswordConfirm == "" {
			c.shadow[EmptyPassword] = true
		}
		if p.NewPassword != p.NewPasswordConfirm {
			c.shadow[PasswordsDontMatch] = true
		}
	})
}

// HasErrors reports whether any committed flag is set.
func (c *Controller) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed.Any()
}

// CommitErrors publishes the shadow buffer as the committed set. The shadow
// buffer keeps its flags so that a later commit without edits yields the
// same set.
func (c *Controller) CommitErrors() {
	c.update(c.commitLocked)
}

func (c *Controller) commitLocked() {
	c.committed = c.shadow
}

// beginSubmit is the locked Committing step of a submission. It returns
// false, false when another submission is in flight, and started=false with
// blocked=true when committed errors block it. On start the form is disabled.
func (c *Controller) beginSubmit(clear []Flag) (snap Snapshot, started, blocked bool) {
	ignored := false
	c.update(func() {
		if c.disabled {
			ignored = true
			return
		}

		c.success = false
		for _, f := range clear {
			c.shadow[f] = false
		}
		c.commitLocked()

		if c.committed.Any() {
			blocked = true
			return
		}

		c.disabled = true
		snap = c.snapshotLocked()
	})
	if ignored {
		return Snapshot{}, false, false
	}
	return snap, !blocked, blocked
}

// endSubmit re-enables the form. A mapped failure flag is set and committed.
func (c *Controller) endSubmit(succeeded bool, fail *Flag) {
	c.update(func() {
		if fail != nil {
			c.shadow[*fail] = true
			c.commitLocked()
		}
		c.disabled = false
		c.success = succeeded
	})
}
