package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kotoed/denizen/internal/profile"
)

// input is one text row of the editor and the controller setter behind it.
type input struct {
	label string
	set   func(c *profile.Controller, v string)
	get   func(s profile.Snapshot) string
	model textinput.Model
}

// firstPasswordInput is the index of the old password row; rows from here
// on belong to the password form.
const firstPasswordInput = 4

func newInputs() []input {
	profileField := func(f profile.Field, label string, get func(profile.ProfileRecord) *string) input {
		return input{
			label: label,
			set:   func(c *profile.Controller, v string) { c.SetProfileField(f, v) },
			get:   func(s profile.Snapshot) string { return profile.Deref(get(s.Profile)) },
		}
	}
	passwordField := func(f profile.PasswordField, label string) input {
		return input{
			label: label,
			set:   func(c *profile.Controller, v string) { c.SetPasswordField(f, v) },
			get:   func(profile.Snapshot) string { return "" },
		}
	}

	ins := []input{
		profileField(profile.FieldEmail, "Email", func(p profile.ProfileRecord) *string { return p.Email }),
		profileField(profile.FieldFirstName, "First name", func(p profile.ProfileRecord) *string { return p.FirstName }),
		profileField(profile.FieldLastName, "Last name", func(p profile.ProfileRecord) *string { return p.LastName }),
		profileField(profile.FieldGroup, "Group #", func(p profile.ProfileRecord) *string { return p.Group }),
		passwordField(profile.FieldOldPassword, "Old password"),
		passwordField(profile.FieldNewPassword, "New password"),
		passwordField(profile.FieldNewPasswordConfirm, "Repeat password"),
	}

	for i := range ins {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 40
		if i < firstPasswordInput {
			ti.Placeholder = "not specified"
		} else {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ins[i].model = ti
	}
	return ins
}

type loadedMsg struct{ form *profile.Controller }

type loadFailedMsg struct{ err error }

type submittedMsg struct{ outcome profile.Outcome }

// Model is the bubbletea model of the profile editor.
type Model struct {
	ctx      context.Context
	svc      profile.Service
	id       string
	reporter profile.ErrorReporter

	spinner spinner.Model
	styles  Styles

	form        *profile.Controller
	coordinator *profile.Coordinator

	inputs []input
	focus  int

	loadErr   error
	remoteErr error
	quitting  bool
}

// New creates an editor for denizen id. Nothing is fetched until Init runs.
func New(ctx context.Context, svc profile.Service, id string, reporter profile.ErrorReporter) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		svc:      svc,
		id:       id,
		reporter: reporter,
		spinner:  sp,
		styles:   DefaultStyles(),
		inputs:   newInputs(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadProfile)
}

func (m Model) loadProfile() tea.Msg {
	form, err := profile.Load(m.ctx, m.svc, m.id)
	if err != nil {
		return loadFailedMsg{err: err}
	}
	return loadedMsg{form: form}
}

func (m Model) submit(kind profile.ActionKind) tea.Cmd {
	co := m.coordinator
	ctx := m.ctx
	return func() tea.Msg {
		return submittedMsg{outcome: co.Submit(ctx, kind)}
	}
}

// Loaded reports whether the profile has been fetched.
func (m Model) Loaded() bool { return m.form != nil }

// Form returns the controller, nil until loaded.
func (m Model) Form() *profile.Controller { return m.form }

func (m *Model) setFocus(i int) {
	n := len(m.inputs)
	m.focus = (i%n + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].model.Focus()
		} else {
			m.inputs[j].model.Blur()
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.form = msg.form
		m.coordinator = profile.NewCoordinator(msg.form, m.svc, m.reporter)
		snap := msg.form.Snapshot()
		for i := range m.inputs {
			m.inputs[i].model.SetValue(m.inputs[i].get(snap))
		}
		m.setFocus(0)
		return m, textinput.Blink

	case loadFailedMsg:
		m.loadErr = msg.err
		return m, nil

	case submittedMsg:
		m.remoteErr = nil
		if msg.outcome.State == profile.Failed && !errors.Is(msg.outcome.Err, profile.ErrIncorrectOldPassword) {
			m.remoteErr = msg.outcome.Err
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		if m.form == nil {
			return m, nil
		}

		switch msg.String() {
		case "tab", "down", "enter":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "ctrl+s":
			m.remoteErr = nil
			return m, m.submit(profile.ActionProfile)
		case "ctrl+p":
			m.remoteErr = nil
			return m, m.submit(profile.ActionPassword)
		case "ctrl+t":
			m.form.SetPowerMode(!m.form.Snapshot().Profile.PowerMode)
			return m, nil
		}

		if m.form.Snapshot().Disabled {
			return m, nil
		}

		in := &m.inputs[m.focus]
		before := in.model.Value()
		var cmd tea.Cmd
		in.model, cmd = in.model.Update(msg)
		if after := in.model.Value(); after != before {
			in.set(m.form, after)
		}
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.loadErr != nil {
		return m.styles.Error.Render(fmt.Sprintf("Failed to load profile: %v", m.loadErr)) + "\n"
	}
	if m.form == nil {
		return fmt.Sprintf("%s Loading profile…\n", m.spinner.View())
	}

	snap := m.form.Snapshot()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(snap.Profile.Username))
	b.WriteString("\n")

	if snap.Success {
		b.WriteString(m.styles.Success.Render("The profile updated successfully"))
		b.WriteString("\n")
	}
	for _, msg := range snap.Messages() {
		b.WriteString(m.styles.Error.Render("✗ " + msg))
		b.WriteString("\n")
	}
	if m.remoteErr != nil {
		b.WriteString(m.styles.Error.Render("Request failed: " + m.remoteErr.Error()))
		b.WriteString("\n")
	}
	if snap.Disabled {
		b.WriteString(m.spinner.View() + " Saving…\n")
	}
	b.WriteString("\n")

	for i, in := range m.inputs {
		if i == firstPasswordInput {
			b.WriteString("\n")
		}
		label := m.styles.Label.Render(in.label)
		if i == m.focus {
			label = m.styles.Focused.Render(in.label)
		}
		b.WriteString(label + in.model.View() + "\n")
	}

	power := "off"
	if snap.Profile.PowerMode {
		power = "on"
	}
	b.WriteString(m.styles.Label.Render("Power mode") + power + "\n")

	for _, l := range snap.Profile.OAuth {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("linked: %s %s", l.Provider, profile.Deref(l.UserID))) + "\n")
	}

	b.WriteString(m.styles.Help.Render("tab/↑↓ move • ctrl+s save • ctrl+p change password • ctrl+t power mode • esc quit"))
	b.WriteString("\n")
	return b.String()
}
