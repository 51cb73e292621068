package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
)

func TestDefaultSeverity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.SeverityWarning, check.DefaultSeverity("Safety/ReversedLink"))
	assert.Equal(t, config.SeverityConvention, check.DefaultSeverity("Layout/LineLength"))
	assert.Equal(t, config.SeverityConvention, check.DefaultSeverity("Metrics/SectionLength"))
}

func TestResolveSeverityPrecedence(t *testing.T) {
	t.Parallel()

	configured := "error"
	invalid := "shouty"

	tests := []struct {
		name      string
		explicit  config.Severity
		cfg       *config.CheckConfig
		qualified string
		want      config.Severity
	}{
		{
			name:      "explicit beats config",
			explicit:  config.SeverityInfo,
			cfg:       &config.CheckConfig{Severity: &configured},
			qualified: "Layout/LineLength",
			want:      config.SeverityInfo,
		},
		{
			name:      "config beats default",
			cfg:       &config.CheckConfig{Severity: &configured},
			qualified: "Layout/LineLength",
			want:      config.SeverityError,
		},
		{
			name:      "domain default",
			cfg:       &config.CheckConfig{},
			qualified: "Layout/LineLength",
			want:      config.SeverityConvention,
		},
		{
			name:      "safety domain default",
			cfg:       nil,
			qualified: "Safety/ReversedLink",
			want:      config.SeverityWarning,
		},
		{
			name:      "invalid config falls through to default",
			cfg:       &config.CheckConfig{Severity: &invalid},
			qualified: "Safety/ReversedLink",
			want:      config.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := check.ResolveSeverity(tt.explicit, tt.qualified, tt.cfg, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Department entries seed the merge; check entries override them.
func TestResolveSeverityThroughDepartmentMerge(t *testing.T) {
	t.Parallel()

	deptSev := "error"
	checkSev := "info"

	cfg := config.NewConfig()
	cfg.Checks["Metrics"] = config.CheckConfig{Severity: &deptSev}
	cfg.Checks["Metrics/SectionLength"] = config.CheckConfig{Severity: &checkSev}

	merged := cfg.ForCheck("Metrics/SectionLength")
	assert.Equal(t, config.SeverityInfo,
		check.ResolveSeverity("", "Metrics/SectionLength", merged, nil))

	onlyDept := cfg.ForCheck("Metrics/CodeBlockLength")
	assert.Equal(t, config.SeverityError,
		check.ResolveSeverity("", "Metrics/CodeBlockLength", onlyDept, nil))
}
