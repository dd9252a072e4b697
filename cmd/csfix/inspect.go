package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"csfix/internal/stream"
	"csfix/internal/token"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] file.php",
	Short: "Show class members and import statements of a PHP file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

var memberModifiers = map[token.Kind]string{
	token.KwPublic:    "visibility",
	token.KwProtected: "visibility",
	token.KwPrivate:   "visibility",
	token.KwVar:       "visibility",
	token.KwStatic:    "static",
	token.KwAbstract:  "abstract",
	token.KwFinal:     "final",
	token.KwReadonly:  "readonly",
}

var modifierOrder = []string{"final", "abstract", "visibility", "static", "readonly"}

type memberInfo struct {
	Index     int      `json:"index" yaml:"index"`
	Line      uint32   `json:"line" yaml:"line"`
	Role      string   `json:"role" yaml:"role"`
	Name      string   `json:"name" yaml:"name"`
	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Magic     bool     `json:"magic,omitempty" yaml:"magic,omitempty"`
}

type useInfo struct {
	Index int    `json:"index" yaml:"index"`
	Line  uint32 `json:"line" yaml:"line"`
	Text  string `json:"text" yaml:"text"`
}

type inspectReport struct {
	Tokens  int          `json:"tokens" yaml:"tokens"`
	Members []memberInfo `json:"members" yaml:"members"`
	Uses    []useInfo    `json:"uses" yaml:"uses"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	text, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}
	s, err := stream.FromSource(text, stream.Options{})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	report := inspectStream(s)

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "pretty":
		return writeInspectPretty(out, report)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (expected pretty|json|yaml)", format)
	}
}

// inspectStream collects members and imports. Modifiers are read from a
// clone since grabbing them clears the tokens.
func inspectStream(s *stream.Stream) inspectReport {
	report := inspectReport{
		Tokens:  s.Len(),
		Members: make([]memberInfo, 0),
		Uses:    make([]useInfo, 0),
	}
	work := s.Clone()
	for _, m := range s.ClassyMembers() {
		info := memberInfo{Index: m.Index, Line: m.Token.Line, Role: m.Role.String(), Name: m.Token.Text}
		if m.Role == stream.RoleMethod {
			info.Name = methodName(s, m.Index)
			info.Magic = token.IsMagicMethodName(info.Name)
		}
		attrs := work.GrabModifiersBefore(m.Index, memberModifiers, nil)
		for _, tok := range attrs.Ordered(modifierOrder...) {
			info.Modifiers = append(info.Modifiers, strings.ToLower(tok.Text))
		}
		report.Members = append(report.Members, info)
	}
	for _, i := range s.NamespaceUseIndexes() {
		end, _, ok := s.NextOfKind(i, token.K(token.Semicolon))
		if !ok {
			end = s.Len() - 1
		}
		report.Uses = append(report.Uses, useInfo{
			Index: i,
			Line:  s.At(i).Line,
			Text:  strings.Join(strings.Fields(s.RenderRange(i, end)), " "),
		})
	}
	return report
}

// methodName returns the identifier after 'function', skipping a by-ref '&'.
func methodName(s *stream.Stream, fn int) string {
	i, tok, ok := s.NextMeaningful(fn)
	if ok && tok.Kind == token.Amp {
		_, tok, ok = s.NextMeaningful(i)
	}
	if !ok {
		return ""
	}
	return tok.Text
}

func writeInspectPretty(out io.Writer, r inspectReport) error {
	heading := color.New(color.Bold)
	role := map[string]*color.Color{
		stream.RoleProperty.String(): color.New(color.FgCyan),
		stream.RoleMethod.String():   color.New(color.FgGreen),
	}
	if _, err := heading.Fprintf(out, "members (%d)\n", len(r.Members)); err != nil {
		return err
	}
	for _, m := range r.Members {
		name := m.Name
		if m.Magic {
			name += " (magic)"
		}
		mods := ""
		if len(m.Modifiers) > 0 {
			mods = " [" + strings.Join(m.Modifiers, " ") + "]"
		}
		c := role[m.Role]
		if c == nil {
			c = color.New()
		}
		if _, err := fmt.Fprintf(out, "%5d  line %-4d %s %s%s\n", m.Index, m.Line, c.Sprintf("%-8s", m.Role), name, mods); err != nil {
			return err
		}
	}
	if _, err := heading.Fprintf(out, "uses (%d)\n", len(r.Uses)); err != nil {
		return err
	}
	for _, u := range r.Uses {
		if _, err := fmt.Fprintf(out, "%5d  line %-4d %s\n", u.Index, u.Line, u.Text); err != nil {
			return err
		}
	}
	return nil
}
