package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/glitchsec/osintkit/internal/model"
)

// MarkdownWriter outputs briefs in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteBrief outputs the full brief in Markdown format.
func (w *MarkdownWriter) WriteBrief(b *model.Brief) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, b)
	w.writeBackground(md, b)
	w.writePerson(md, b)
	w.writeCompany(md, b)
	w.writeDomain(md, b)
	w.writeSocial(md, b)
	w.writeSources(md, b)
	w.writeFooter(md, b)

	return len(md.String()), md.Build()
}

// WriteValue outputs an arbitrary lookup result as a small Markdown
// document: a heading plus the result as a fenced JSON block. Commands
// whose results have no brief structure (fingerprints, host records,
// history listings) use this for their Markdown output.
func (w *MarkdownWriter) WriteValue(v any) (int, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return 0, err
	}

	md := markdown.NewMarkdown(w.output)
	md.H1("Lookup Result")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightJSON, string(data))

	return len(md.String()), md.Build()
}

// writeHeader writes the brief header with subject information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, b *model.Brief) {
	md.H1(fmt.Sprintf("Intelligence Brief: %s", b.Name))
	md.PlainText("")

	rows := [][]string{
		{"Subject", b.Name},
		{"Type", string(b.Kind)},
		{"Generated", b.DateGenerated.Format("2006-01-02 15:04:05 MST")},
	}
	if b.Company != "" {
		rows = append(rows, []string{"Company", b.Company})
	}
	if b.Domain != "" {
		rows = append(rows, []string{"Domain", "`" + b.Domain + "`"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeBackground(md *markdown.Markdown, b *model.Brief) {
	if b.Background == "" {
		return
	}
	md.H2("Background")
	md.PlainText(b.Background)
	md.PlainText("")
}

func (w *MarkdownWriter) writePerson(md *markdown.Markdown, b *model.Brief) {
	if b.Person == nil && b.LinkedInProfile == nil && b.EmailMatch == nil {
		return
	}
	md.H2("Person")

	if p := b.Person; p != nil {
		rows := [][]string{}
		rows = appendRow(rows, "Name", p.Name)
		rows = appendRow(rows, "Title", p.Title)
		rows = appendRow(rows, "Email", p.Email)
		rows = appendRow(rows, "Company", p.Company)
		rows = appendRow(rows, "Location", joinNonEmpty(p.City, p.State, p.Country))
		rows = appendRow(rows, "LinkedIn", p.LinkedIn)
		md.Table(markdown.TableSet{Header: []string{"Field", "Value"}, Rows: rows})
		md.PlainText("")
	}

	if lp := b.LinkedInProfile; lp != nil {
		md.H3("LinkedIn")
		rows := [][]string{}
		rows = appendRow(rows, "Headline", lp.Headline)
		rows = appendRow(rows, "Location", lp.Location)
		rows = appendRow(rows, "Current", joinNonEmpty(lp.CurrentTitle, lp.CurrentCompany))
		if lp.Connections > 0 {
			rows = appendRow(rows, "Connections", strconv.Itoa(lp.Connections))
		}
		md.Table(markdown.TableSet{Header: []string{"Field", "Value"}, Rows: rows})

		if len(lp.Experience) > 0 {
			expRows := make([][]string, 0, len(lp.Experience))
			for _, exp := range lp.Experience {
				expRows = append(expRows, []string{exp.Title, exp.Company, exp.Duration})
			}
			md.H4("Experience")
			md.Table(markdown.TableSet{Header: []string{"Title", "Company", "Duration"}, Rows: expRows})
		}
		if len(lp.Skills) > 0 {
			md.PlainText("Skills: " + strings.Join(lp.Skills, ", "))
		}
		md.PlainText("")
	}

	if m := b.EmailMatch; m != nil && m.Email != "" {
		md.H3("Email")
		md.Table(markdown.TableSet{
			Header: []string{"Field", "Value"},
			Rows: [][]string{
				{"Address", "`" + m.Email + "`"},
				{"Confidence", strconv.Itoa(m.Score)},
				{"Sources", strconv.Itoa(m.Sources)},
			},
		})
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeCompany(md *markdown.Markdown, b *model.Brief) {
	if b.CompanyProfile == nil && b.LinkedInCompany == nil {
		return
	}
	md.H2("Company")

	if c := b.CompanyProfile; c != nil {
		rows := [][]string{}
		rows = appendRow(rows, "Name", c.Name)
		rows = appendRow(rows, "Website", c.Website)
		rows = appendRow(rows, "Industry", c.Industry)
		if c.Employees > 0 {
			rows = appendRow(rows, "Employees", strconv.Itoa(c.Employees))
		}
		if c.Founded > 0 {
			rows = appendRow(rows, "Founded", strconv.Itoa(c.Founded))
		}
		rows = appendRow(rows, "Revenue", c.AnnualRevenue)
		rows = appendRow(rows, "Location", joinNonEmpty(c.City, c.State, c.Country))
		md.Table(markdown.TableSet{Header: []string{"Field", "Value"}, Rows: rows})

		if c.Description != "" {
			md.PlainText(c.Description)
		}
		if len(c.Technologies) > 0 {
			md.PlainText("Technologies: " + strings.Join(c.Technologies, ", "))
		}
		md.PlainText("")
	}

	if lc := b.LinkedInCompany; lc != nil {
		md.H3("LinkedIn")
		rows := [][]string{}
		rows = appendRow(rows, "Name", lc.Name)
		rows = appendRow(rows, "Employees", lc.EmployeeRange)
		if lc.FollowerCount > 0 {
			rows = appendRow(rows, "Followers", strconv.Itoa(lc.FollowerCount))
		}
		rows = appendRow(rows, "Industry", lc.Industry)
		rows = appendRow(rows, "Headquarters", lc.Headquarters)
		rows = appendRow(rows, "Page", lc.URL)
		md.Table(markdown.TableSet{Header: []string{"Field", "Value"}, Rows: rows})
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeDomain(md *markdown.Markdown, b *model.Brief) {
	d := b.DomainRecord
	if d == nil {
		return
	}
	md.H2("Domain")

	if len(d.DNS) > 0 {
		rows := [][]string{}
		for _, rtype := range []string{"A", "MX", "NS", "TXT"} {
			if values, ok := d.DNS[rtype]; ok {
				rows = append(rows, []string{rtype, strings.Join(values, "<br>")})
			}
		}
		md.H3("DNS")
		md.Table(markdown.TableSet{Header: []string{"Type", "Records"}, Rows: rows})
	}

	if wi := d.Whois; wi != nil {
		md.H3("WHOIS")
		rows := [][]string{}
		rows = appendRow(rows, "Registrar", wi.Registrar)
		rows = appendRow(rows, "Created", wi.CreationDate)
		rows = appendRow(rows, "Expires", wi.ExpiryDate)
		md.Table(markdown.TableSet{Header: []string{"Field", "Value"}, Rows: rows})
	}

	if e := d.Emails; e != nil && len(e.Emails) > 0 {
		md.H3("Email Addresses")
		rows := make([][]string, 0, len(e.Emails))
		for _, hit := range e.Emails {
			rows = append(rows, []string{"`" + hit.Email + "`", hit.Name, hit.Position, strconv.Itoa(hit.Confidence)})
		}
		md.Table(markdown.TableSet{Header: []string{"Email", "Name", "Position", "Confidence"}, Rows: rows})
		if e.Pattern != "" {
			md.PlainText(fmt.Sprintf("Pattern: `%s` (%d known addresses)", e.Pattern, e.TotalEmails))
		}
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeSocial(md *markdown.Markdown, b *model.Brief) {
	r := b.Reddit
	if r == nil {
		return
	}
	md.H2("Reddit")
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Username", "u/" + r.Username},
			{"Total Karma", strconv.Itoa(r.TotalKarma)},
			{"Active In", strings.Join(r.ActiveSubreddits, ", ")},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSources(md *markdown.Markdown, b *model.Brief) {
	if len(b.Sources) == 0 {
		return
	}
	md.H2("Sources")
	md.BulletList(b.Sources...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, b *model.Brief) {
	if len(b.StepErrors) > 0 {
		md.H2("Incomplete Sections")
		var lines []string
		for step, msg := range b.StepErrors {
			lines = append(lines, fmt.Sprintf("%s: %s", step, msg))
		}
		md.BulletList(lines...)
		md.PlainText("")
	}

	md.HorizontalRule()
	md.PlainText(fmt.Sprintf("Generated by osintkit from %d steps.", len(b.PerformedSteps)))
}

// appendRow appends a field row when the value is non-empty.
func appendRow(rows [][]string, field, value string) [][]string {
	if value == "" {
		return rows
	}
	return append(rows, []string{field, value})
}

// joinNonEmpty joins the non-empty parts with ", ".
func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
