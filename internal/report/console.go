package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/glitchsec/osintkit/internal/model"
)

// ConsoleWriter outputs briefs and lookup results as colored,
// human-readable text for terminal display.
type ConsoleWriter struct {
	baseWriter

	info    *color.Color
	success *color.Color
	warn    *color.Color
	errc    *color.Color
	result  *color.Color
}

// NewConsoleWriter creates a ConsoleWriter that outputs to the given
// writer. Color codes are stripped automatically when the destination
// is not a terminal.
func NewConsoleWriter(output io.Writer) *ConsoleWriter {
	return &ConsoleWriter{
		baseWriter: newBaseWriter(output),
		info:       color.New(color.FgCyan),
		success:    color.New(color.FgGreen),
		warn:       color.New(color.FgYellow),
		errc:       color.New(color.FgRed),
		result:     color.New(color.FgHiMagenta),
	}
}

// Infof prints a cyan "[*]" status line.
func (w *ConsoleWriter) Infof(format string, args ...any) {
	_, _ = w.info.Fprintf(w.output, "[*] "+format+"\n", args...)
}

// Successf prints a green "[+]" result line.
func (w *ConsoleWriter) Successf(format string, args ...any) {
	_, _ = w.success.Fprintf(w.output, "[+] "+format+"\n", args...)
}

// Warnf prints a yellow "[!]" warning line.
func (w *ConsoleWriter) Warnf(format string, args ...any) {
	_, _ = w.warn.Fprintf(w.output, "[!] "+format+"\n", args...)
}

// Errorf prints a red "[-]" error line.
func (w *ConsoleWriter) Errorf(format string, args ...any) {
	_, _ = w.errc.Fprintf(w.output, "[-] "+format+"\n", args...)
}

// Resultf prints a magenta ">" line introducing one result entry.
func (w *ConsoleWriter) Resultf(format string, args ...any) {
	_, _ = w.result.Fprintf(w.output, "  > "+format+"\n", args...)
}

// Field prints an indented key/value detail line. Empty values are
// skipped so callers can print optional fields unconditionally.
func (w *ConsoleWriter) Field(key, value string) {
	if value == "" {
		return
	}
	_, _ = w.result.Fprintf(w.output, "    %s: %s\n", key, value)
}

// Fieldf is Field with formatting.
func (w *ConsoleWriter) Fieldf(key, format string, args ...any) {
	w.Field(key, fmt.Sprintf(format, args...))
}

// Itemf prints an indented list entry.
func (w *ConsoleWriter) Itemf(format string, args ...any) {
	_, _ = w.result.Fprintf(w.output, "    - "+format+"\n", args...)
}

// WriteBrief outputs the brief as formatted terminal text.
func (w *ConsoleWriter) WriteBrief(b *model.Brief) (int, error) {
	w.Successf("Intelligence brief: %s (%s)", b.Name, b.Kind)

	if b.Background != "" {
		w.Infof("Background")
		_, _ = fmt.Fprintln(w.output, indent(b.Background, "    "))
	}

	w.writePersonSections(b)
	w.writeCompanySections(b)
	w.writeDomainSections(b)

	if r := b.Reddit; r != nil {
		w.Infof("Reddit")
		w.Field("Username", "u/"+r.Username)
		w.Fieldf("Karma", "%d", r.TotalKarma)
		w.Field("Active in", strings.Join(r.ActiveSubreddits, ", "))
	}

	if len(b.Sources) > 0 {
		w.Infof("Sources")
		for _, src := range b.Sources {
			_, _ = fmt.Fprintf(w.output, "    - %s\n", src)
		}
	}

	for step, msg := range b.StepErrors {
		w.Warnf("%s incomplete: %s", step, msg)
	}

	return 0, nil
}

func (w *ConsoleWriter) writePersonSections(b *model.Brief) {
	if p := b.Person; p != nil {
		w.Infof("Apollo")
		w.Field("Name", p.Name)
		w.Field("Title", p.Title)
		w.Field("Company", p.Company)
		w.Field("Email", p.Email)
		w.Field("Location", joinNonEmpty(p.City, p.State, p.Country))
		w.Field("LinkedIn", p.LinkedIn)
	}

	if lp := b.LinkedInProfile; lp != nil {
		w.Infof("LinkedIn")
		w.Field("Headline", lp.Headline)
		w.Field("Current", joinNonEmpty(lp.CurrentTitle, lp.CurrentCompany))
		w.Field("Location", lp.Location)
		if lp.Connections > 0 {
			w.Fieldf("Connections", "%d", lp.Connections)
		}
		w.Field("Skills", strings.Join(lp.Skills, ", "))
	}

	if m := b.EmailMatch; m != nil && m.Email != "" {
		w.Infof("Email")
		w.Field("Address", m.Email)
		w.Fieldf("Confidence", "%d", m.Score)
	}
}

func (w *ConsoleWriter) writeCompanySections(b *model.Brief) {
	if c := b.CompanyProfile; c != nil {
		w.Infof("Apollo")
		w.Field("Name", c.Name)
		w.Field("Website", c.Website)
		w.Field("Industry", c.Industry)
		if c.Employees > 0 {
			w.Fieldf("Employees", "%d", c.Employees)
		}
		if c.Founded > 0 {
			w.Fieldf("Founded", "%d", c.Founded)
		}
		w.Field("Revenue", c.AnnualRevenue)
		w.Field("Location", joinNonEmpty(c.City, c.State, c.Country))
	}

	if lc := b.LinkedInCompany; lc != nil {
		w.Infof("LinkedIn")
		w.Field("Name", lc.Name)
		w.Field("Employees", lc.EmployeeRange)
		if lc.FollowerCount > 0 {
			w.Field("Followers", strconv.Itoa(lc.FollowerCount))
		}
		w.Field("Industry", lc.Industry)
		w.Field("HQ", lc.Headquarters)
	}
}

func (w *ConsoleWriter) writeDomainSections(b *model.Brief) {
	d := b.DomainRecord
	if d == nil {
		return
	}

	if len(d.DNS) > 0 {
		w.Infof("DNS")
		for _, rtype := range []string{"A", "MX", "NS", "TXT"} {
			if values, ok := d.DNS[rtype]; ok {
				w.Field(rtype, strings.Join(values, ", "))
			}
		}
	}

	if wi := d.Whois; wi != nil {
		w.Infof("WHOIS")
		w.Field("Registrar", wi.Registrar)
		w.Field("Created", wi.CreationDate)
		w.Field("Expires", wi.ExpiryDate)
	}

	if e := d.Emails; e != nil && len(e.Emails) > 0 {
		w.Infof("Emails (%d known)", e.TotalEmails)
		for _, hit := range e.Emails {
			line := hit.Email
			if hit.Name != "" {
				line += " (" + hit.Name + ")"
			}
			w.Itemf("%s", line)
		}
		w.Field("Pattern", e.Pattern)
	}
}

// indent prefixes every line of s with prefix.
func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
