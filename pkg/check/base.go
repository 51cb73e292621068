package check

// Base provides the metadata half of the Check interface. Embed it in
// check implementations; inspection and fix methods stay on the
// concrete type.
//
// Fields are unexported to avoid stutter and name collisions with
// interface methods. Use NewBase to construct.
type Base struct {
	name    string
	desc    string
	message string
	enabled bool
}

// NewBase creates a Base with the given properties.
func NewBase(name, desc, message string, enabled bool) Base {
	return Base{
		name:    name,
		desc:    desc,
		message: message,
		enabled: enabled,
	}
}

// Name returns the qualified check name.
func (b *Base) Name() string {
	return b.name
}

// Description returns a short description of what the check looks for.
func (b *Base) Description() string {
	return b.desc
}

// Message returns the default offense message.
func (b *Base) Message() string {
	return b.message
}

// DefaultEnabled returns whether the check runs without explicit
// configuration.
func (b *Base) DefaultEnabled() bool {
	return b.enabled
}
