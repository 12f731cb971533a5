package profile

// Flag names one local error. Flags are the only input to "can this form be
// submitted"; an empty set means submittable.
type Flag int

const (
	BadEmail Flag = iota
	PasswordsDontMatch
	EmptyPassword
	IncorrectPassword

	numFlags
)

var flagNames = [numFlags]string{
	BadEmail:           "badEmail",
	PasswordsDontMatch: "passwordsDontMatch",
	EmptyPassword:      "emptyPassword",
	IncorrectPassword:  "incorrectPassword",
}

var flagMessages = [numFlags]string{
	BadEmail:           "Incorrect email",
	PasswordsDontMatch: "Passwords don't match",
	EmptyPassword:      "One of your password fields is empty",
	IncorrectPassword:  "Your old password is incorrect",
}

func (f Flag) String() string {
	if f < 0 || f >= numFlags {
		return "unknown"
	}
	return flagNames[f]
}

// Message is the text shown to the user while the flag is active.
func (f Flag) Message() string {
	if f < 0 || f >= numFlags {
		return ""
	}
	return flagMessages[f]
}

// ErrorSet is a fixed set of local error flags. The zero value has no errors.
type ErrorSet [numFlags]bool

func (s ErrorSet) Has(f Flag) bool { return s[f] }

// Any reports whether at least one flag is set.
func (s ErrorSet) Any() bool {
	for _, v := range s {
		if v {
			return true
		}
	}
	return false
}

// Active returns the set flags in declaration order.
func (s ErrorSet) Active() []Flag {
	var out []Flag
	for f, v := range s {
		if v {
			out = append(out, Flag(f))
		}
	}
	return out
}

// Messages returns the messages of the set flags in declaration order.
func (s ErrorSet) Messages() []string {
	var out []string
	for _, f := range s.Active() {
		out = append(out, f.Message())
	}
	return out
}
