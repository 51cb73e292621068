package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/lintcore/internal/ui/pretty"
)

// helpStyles carries the few Lipgloss styles help output needs beyond
// the shared palette.
type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

// HelpFormatter renders styled usage and help text for cobra commands.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a help formatter. Color follows the given
// mode ("auto", "always", "never") resolved against the writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	plain := lipgloss.NewStyle()
	h := &HelpFormatter{styles: helpStyles{
		heading: plain,
		command: plain,
		flag:    plain,
		dim:     plain,
	}}
	if pretty.IsColorEnabled(colorMode, writer) {
		h.styles = helpStyles{
			heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
			flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		}
	}
	return h
}

const helpUsageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }} {{.Short}}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + helpUsageTemplate

// ApplyToCommand installs the formatter's templates on the command and,
// through cobra's inheritance, on every subcommand.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := template.FuncMap{
		"heading": h.styles.heading.Render,
		"command": h.styles.command.Render,
		"dim":     h.styles.dim.Render,
		"flags":   h.styleFlags,
		"rpad":    rpad,
		"trim":    strings.TrimSpace,
	}

	render := func(w io.Writer, text string, c *cobra.Command) error {
		tmpl, err := template.New("help").Funcs(funcs).Parse(text)
		if err != nil {
			return fmt.Errorf("parse help template: %w", err)
		}
		return tmpl.Execute(w, c)
	}

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return render(c.OutOrStdout(), helpUsageTemplate, c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := render(c.OutOrStdout(), helpTemplate, c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// styleFlags colorizes pflag's usage block one line at a time. Flag
// names are colored, type hints dimmed, descriptions left as is.
func (h *HelpFormatter) styleFlags(fs *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimSuffix(fs.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	head, desc, ok := splitFlagUsage(line)
	if !ok {
		return line
	}

	fields := strings.Fields(head)
	for i, field := range fields {
		name := strings.TrimSuffix(field, ",")
		if strings.HasPrefix(name, "-") {
			fields[i] = strings.Replace(field, name, h.styles.flag.Render(name), 1)
		} else {
			fields[i] = h.styles.dim.Render(field)
		}
	}
	return "  " + strings.Join(fields, " ") + "   " + desc
}

// splitFlagUsage cuts a pflag usage line at the first run of two or
// more spaces after the flag names.
func splitFlagUsage(line string) (head, desc string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	for i := 0; i+1 < len(trimmed); i++ {
		if trimmed[i] == ' ' && trimmed[i+1] == ' ' {
			rest := strings.TrimLeft(trimmed[i:], " ")
			return trimmed[:i], rest, rest != ""
		}
	}
	return trimmed, "", false
}

// rpad pads a string on the right to the given width.
func rpad(s string, padding int) string {
	if len(s) >= padding {
		return s
	}
	return s + strings.Repeat(" ", padding-len(s))
}
