package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/glitchsec/osintkit/internal/model"
)

func testBrief() *model.Brief {
	b := model.NewBrief(model.BriefCompany, "Acme Corp")
	b.Domain = "acme.example"
	b.DateGenerated = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	b.Background = "Acme Corp builds industrial equipment."
	b.CompanyProfile = &model.CompanyProfile{
		Name:      "Acme Corp",
		Website:   "https://acme.example",
		Industry:  "manufacturing",
		Employees: 250,
		Founded:   2012,
	}
	b.DomainRecord = &model.DomainRecord{
		Domain: "acme.example",
		DNS:    map[string][]string{"A": {"93.184.216.34"}},
		Whois:  &model.WhoisInfo{Registrar: "Example Registrar"},
	}
	b.AddSources("https://acme.example/about")
	b.PerformedSteps = []string{"background", "apollo-company", "dns", "whois"}
	return b
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output is valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		n, err := w.WriteBrief(testBrief())
		if err != nil {
			t.Fatalf("WriteBrief() error = %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, buffer has %d", n, buf.Len())
		}

		var decoded model.Brief
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Name != "Acme Corp" || decoded.Kind != model.BriefCompany {
			t.Errorf("round trip lost fields: %+v", decoded)
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.WriteValue(map[string]string{"key": "value"}); err != nil {
			t.Fatalf("WriteValue() error = %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Errorf("output not indented: %q", buf.String())
		}
	})

	t.Run("write value handles arbitrary types", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		fp := model.Fingerprint{MMH3: -1848946384, MD5: "abc", SHA256: "def"}
		if _, err := w.WriteValue(fp); err != nil {
			t.Fatalf("WriteValue() error = %v", err)
		}
		if !strings.Contains(buf.String(), "-1848946384") {
			t.Errorf("fingerprint not serialized: %q", buf.String())
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders all populated sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.WriteBrief(testBrief()); err != nil {
			t.Fatalf("WriteBrief() error = %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Intelligence Brief: Acme Corp",
			"## Background",
			"## Company",
			"## Domain",
			"## Sources",
			"acme.example",
			"Example Registrar",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("empty sections are omitted", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		b := model.NewBrief(model.BriefPerson, "Jo Doe")
		if _, err := w.WriteBrief(b); err != nil {
			t.Fatalf("WriteBrief() error = %v", err)
		}

		out := buf.String()
		for _, unwanted := range []string{"## Background", "## Company", "## Domain", "## Reddit"} {
			if strings.Contains(out, unwanted) {
				t.Errorf("output contains empty section %q", unwanted)
			}
		}
	})

	t.Run("arbitrary values render as a json block", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		fp := model.Fingerprint{MMH3: -1848946384, MD5: "abc123"}
		if _, err := w.WriteValue(fp); err != nil {
			t.Fatalf("WriteValue() error = %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Lookup Result",
			"```json",
			"-1848946384",
			"abc123",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("step errors are listed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		b := testBrief()
		b.StepErrors = map[string]string{"hunter-domain": "rate limited"}

		if _, err := w.WriteBrief(b); err != nil {
			t.Fatalf("WriteBrief() error = %v", err)
		}
		if !strings.Contains(buf.String(), "rate limited") {
			t.Error("step error not rendered")
		}
	})
}

func TestConsoleWriter(t *testing.T) {
	t.Parallel()

	t.Run("brief renders key fields", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewConsoleWriter(&buf)

		if _, err := w.WriteBrief(testBrief()); err != nil {
			t.Fatalf("WriteBrief() error = %v", err)
		}

		out := buf.String()
		for _, want := range []string{"Acme Corp", "Registrar", "93.184.216.34", "https://acme.example/about"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("empty fields are skipped", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewConsoleWriter(&buf)

		w.Field("Missing", "")
		w.Field("Present", "value")

		out := buf.String()
		if strings.Contains(out, "Missing") {
			t.Error("empty field was printed")
		}
		if !strings.Contains(out, "Present: value") {
			t.Errorf("field not printed: %q", out)
		}
	})

	t.Run("status helpers carry markers", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewConsoleWriter(&buf)

		w.Infof("checking %s", "target")
		w.Successf("found")
		w.Warnf("slow")
		w.Errorf("failed")

		out := buf.String()
		for _, want := range []string{"[*] checking target", "[+] found", "[!] slow", "[-] failed"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewJSONWriter(&a), NewMarkdownWriter(&b))

	if _, err := mw.WriteBrief(testBrief()); err != nil {
		t.Fatalf("WriteBrief() error = %v", err)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Error("one of the writers received no output")
	}
}
