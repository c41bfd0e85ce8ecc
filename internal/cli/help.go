package cli

import (
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/textorize/internal/configloader"
	"github.com/yaklabco/textorize/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	plain := lipgloss.NewStyle()
	if !colorEnabled {
		return &HelpStyles{Command: plain, Heading: plain, Subcommand: plain, Flag: plain, Dim: plain}
	}
	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// flagLinePattern splits a pflag usage line into indent, flag names with
// their type, the gap, and the description.
var flagLinePattern = regexp.MustCompile(`^(\s*)(\S.*?)(\s{2,})(\S.*)$`)

// HelpFormatter renders styled help for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
	tmpl   *template.Template
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
	h.tmpl = template.Must(template.New("help").Funcs(template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"command":    h.styles.Command.Render,
		"subcommand": h.styles.Subcommand.Render,
		"dim":        h.styles.Dim.Render,
		"flags":      h.formatFlags,
		"envVars":    configloader.ListEnvVars,
		"pad":        rpad,
		"join":       strings.Join,
		"trim":       strings.TrimSpace,
	}).Parse(helpTemplate))
	return h
}

const helpTemplate = `{{define "usage"}}{{heading "Usage:"}}
{{- if .Runnable}}
  {{command .UseLine}}{{end}}
{{- if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}
{{- if .Aliases}}

{{heading "Aliases:"}}
  {{dim (join .Aliases ", ")}}{{end}}
{{- if .HasExample}}

{{heading "Examples:"}}
{{dim .Example}}{{end}}
{{- if .HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Commands}}{{if .IsAvailableCommand}}
  {{subcommand (pad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}
{{- if not .HasParent}}

{{heading "Environment:"}}{{range envVars}}
  {{subcommand .Name}}  {{dim .Description}}{{end}}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{command (print .CommandPath " [command] --help")}}" for more information about a command.{{end}}
{{end}}
{{- define "help"}}{{with (or .Long .Short)}}{{trim .}}

{{end}}{{template "usage" .}}{{end}}`

// formatFlags styles the flag names of a pflag usage block.
func (h *HelpFormatter) formatFlags(flags *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimRight(flags.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		m := flagLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		names := strings.Fields(m[2])
		for j, name := range names {
			if strings.HasPrefix(name, "-") {
				comma := strings.HasSuffix(name, ",")
				names[j] = h.styles.Flag.Render(strings.TrimSuffix(name, ","))
				if comma {
					names[j] += ","
				}
			} else {
				names[j] = h.styles.Dim.Render(name)
			}
		}
		lines[i] = m[1] + strings.Join(names, " ") + m[3] + m[4]
	}
	return strings.Join(lines, "\n")
}

// ApplyToCommand installs the styled help and usage output on cmd. Cobra
// inherits both functions down the command tree.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.tmpl.ExecuteTemplate(c.OutOrStderr(), "usage", c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.tmpl.ExecuteTemplate(c.OutOrStdout(), "help", c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
