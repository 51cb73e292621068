package config

// Typed accessors for the free-form Options map. YAML decodes integers as
// int, TOML as int64; the accessors normalize both.

// OptionInt returns an integer option, or def when absent or mistyped.
func (cc *CheckConfig) OptionInt(name string, def int) int {
	if cc == nil {
		return def
	}
	switch v := cc.Options[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return def
}

// OptionString returns a string option, or def when absent or mistyped.
func (cc *CheckConfig) OptionString(name, def string) string {
	if cc == nil {
		return def
	}
	if v, ok := cc.Options[name].(string); ok {
		return v
	}
	return def
}

// OptionBool returns a boolean option, or def when absent or mistyped.
func (cc *CheckConfig) OptionBool(name string, def bool) bool {
	if cc == nil {
		return def
	}
	if v, ok := cc.Options[name].(bool); ok {
		return v
	}
	return def
}

// OptionStringSlice returns a string list option, or def when absent or
// mistyped. YAML and TOML both decode lists as []any.
func (cc *CheckConfig) OptionStringSlice(name string, def []string) []string {
	if cc == nil {
		return def
	}
	switch v := cc.Options[name].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return def
			}
			out = append(out, s)
		}
		return out
	}
	return def
}
