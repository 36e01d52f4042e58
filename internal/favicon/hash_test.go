package favicon

import (
	"bytes"
	"strings"
	"testing"
)

func TestHash(t *testing.T) {
	t.Parallel()

	t.Run("empty input produces known digests", func(t *testing.T) {
		t.Parallel()

		fp := Hash(nil)
		if fp.MMH3 != 0 {
			t.Errorf("MMH3 = %d, want 0", fp.MMH3)
		}
		if fp.MD5 != "d41d8cd98f00b204e9800998ecf8427e" {
			t.Errorf("MD5 = %s, want d41d8cd98f00b204e9800998ecf8427e", fp.MD5)
		}
		if fp.SHA256 != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
			t.Errorf("SHA256 = %s, want e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", fp.SHA256)
		}
		if fp.Size != 0 {
			t.Errorf("Size = %d, want 0", fp.Size)
		}
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		t.Parallel()

		data := bytes.Repeat([]byte{0x89, 0x50, 0x4e, 0x47}, 64)
		first := Hash(data)
		second := Hash(data)
		if first != second {
			t.Errorf("Hash not deterministic: %+v != %+v", first, second)
		}
	})

	t.Run("different bytes give different hashes", func(t *testing.T) {
		t.Parallel()

		a := Hash([]byte("icon-a"))
		b := Hash([]byte("icon-b"))
		if a.MMH3 == b.MMH3 && a.MD5 == b.MD5 {
			t.Error("distinct inputs produced identical fingerprints")
		}
	})

	t.Run("size records input length", func(t *testing.T) {
		t.Parallel()

		data := make([]byte, 1234)
		if got := Hash(data).Size; got != 1234 {
			t.Errorf("Size = %d, want 1234", got)
		}
	})
}

func TestMimeBase64(t *testing.T) {
	t.Parallel()

	t.Run("empty input encodes to nothing", func(t *testing.T) {
		t.Parallel()

		if got := mimeBase64(nil); got != nil {
			t.Errorf("mimeBase64(nil) = %q, want nil", got)
		}
	})

	t.Run("short input gets trailing newline", func(t *testing.T) {
		t.Parallel()

		// "hi" encodes to "aGk=", well under one line.
		got := string(mimeBase64([]byte("hi")))
		if got != "aGk=\n" {
			t.Errorf("mimeBase64 = %q, want %q", got, "aGk=\n")
		}
	})

	t.Run("long input wraps at 76 columns", func(t *testing.T) {
		t.Parallel()

		// 100 bytes encode to 136 base64 chars, so two lines.
		got := string(mimeBase64(make([]byte, 100)))
		if !strings.HasSuffix(got, "\n") {
			t.Fatalf("output missing trailing newline: %q", got)
		}
		lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
		if len(lines) != 2 {
			t.Fatalf("got %d lines, want 2", len(lines))
		}
		if len(lines[0]) != 76 {
			t.Errorf("first line length = %d, want 76", len(lines[0]))
		}
		if len(lines[1]) != 60 {
			t.Errorf("second line length = %d, want 60", len(lines[1]))
		}
	})

	t.Run("exact line boundary keeps single line", func(t *testing.T) {
		t.Parallel()

		// 57 bytes encode to exactly 76 chars.
		got := string(mimeBase64(make([]byte, 57)))
		lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
		if len(lines) != 1 {
			t.Fatalf("got %d lines, want 1", len(lines))
		}
		if len(lines[0]) != 76 {
			t.Errorf("line length = %d, want 76", len(lines[0]))
		}
	})
}

func TestFromMMH3(t *testing.T) {
	t.Parallel()

	fp := FromMMH3(-1848946384)
	if fp.MMH3 != -1848946384 {
		t.Errorf("MMH3 = %d, want -1848946384", fp.MMH3)
	}
	if fp.SHA256 != "" {
		t.Errorf("SHA256 = %q, want empty", fp.SHA256)
	}
	if fp.CensysQuery() != "" {
		t.Error("CensysQuery should be empty without a SHA-256 digest")
	}
}
