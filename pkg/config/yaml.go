package config

import (
	"bytes"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Checks == nil {
		cfg.Checks = make(map[string]CheckConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		Backups:           c.Backups,
		Root:              c.Root,
		Fix:               c.Fix,
		SuppressUnfixable: c.SuppressUnfixable,
		IgnoreDirectives:  c.IgnoreDirectives,
		DryRun:            c.DryRun,
		DisplayCheckNames: c.DisplayCheckNames,
		ExtraDetails:      c.ExtraDetails,
		Format:            c.Format,
		Jobs:              c.Jobs,
		NoBackups:         c.NoBackups,
		NoCache:           c.NoCache,
	}

	if c.Ignore != nil {
		clone.Ignore = make([]string, len(c.Ignore))
		copy(clone.Ignore, c.Ignore)
	}

	if c.Checks != nil {
		clone.Checks = make(map[string]CheckConfig, len(c.Checks))
		for k, v := range c.Checks {
			clone.Checks[k] = v.clone()
		}
	}

	if c.EnableChecks != nil {
		clone.EnableChecks = make([]string, len(c.EnableChecks))
		copy(clone.EnableChecks, c.EnableChecks)
	}

	if c.DisableChecks != nil {
		clone.DisableChecks = make([]string, len(c.DisableChecks))
		copy(clone.DisableChecks, c.DisableChecks)
	}

	return clone
}

// clone creates a deep copy of a CheckConfig.
func (cc CheckConfig) clone() CheckConfig {
	clone := CheckConfig{Details: cc.Details}

	if cc.Enabled != nil {
		enabled := *cc.Enabled
		clone.Enabled = &enabled
	}

	if cc.Severity != nil {
		severity := *cc.Severity
		clone.Severity = &severity
	}

	if cc.AutoCorrect != nil {
		autoCorrect := *cc.AutoCorrect
		clone.AutoCorrect = &autoCorrect
	}

	if cc.Include != nil {
		clone.Include = make([]string, len(cc.Include))
		copy(clone.Include, cc.Include)
	}

	if cc.Exclude != nil {
		clone.Exclude = make([]string, len(cc.Exclude))
		copy(clone.Exclude, cc.Exclude)
	}

	if cc.Options != nil {
		clone.Options = make(map[string]any, len(cc.Options))
		maps.Copy(clone.Options, cc.Options) // Note: nested maps/slices in Options are not deep copied
	}

	return clone
}
