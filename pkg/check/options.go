package check

import (
	"github.com/charmbracelet/log"
)

// Options are the run-wide flags shared by every runtime in a run.
// They are immutable once the run starts.
type Options struct {
	// AutoCorrect enables queuing corrections for fixable offenses.
	AutoCorrect bool

	// SuppressUnfixable degrades unfixable offenses to todo directive
	// insertions instead of leaving them uncorrected. It makes every
	// offense count as correctable; the directive is only inserted when
	// autocorrection is on, so with it off the offenses report as
	// uncorrected rather than unsupported.
	SuppressUnfixable bool

	// IgnoreDirectives makes runtimes ignore inline disable directives.
	IgnoreDirectives bool

	// DisplayCheckNames prefixes offense messages with the check name.
	DisplayCheckNames bool

	// ExtraDetails appends the configured Details string to messages.
	ExtraDetails bool

	// Logger receives runtime warnings. Nil uses log.Default().
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}
