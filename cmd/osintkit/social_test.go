package main

import (
	"strings"
	"testing"
)

// TestNewSocialCmd tests the social command group structure.
func TestNewSocialCmd(t *testing.T) {
	t.Parallel()

	cmd := NewSocialCmd()

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()

		want := map[string]bool{"twitter": false, "tweets": false, "reddit": false}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})
}

// TestTwitterCmdMissingKey checks the credential gate fires before any
// network access.
func TestTwitterCmdMissingKey(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "")

	root := NewRootCmd()
	root.SetArgs([]string{"social", "twitter", "--keys", emptyKeysFile(t), "jack"})

	err := root.Execute()
	if err == nil {
		t.Fatal("expected error without RapidAPI key")
	}
	if !strings.Contains(err.Error(), "RAPIDAPI_KEY") {
		t.Errorf("error = %v, want mention of RAPIDAPI_KEY", err)
	}
}

// TestNewLinkedInCmd tests the linkedin command group structure.
func TestNewLinkedInCmd(t *testing.T) {
	t.Parallel()

	cmd := NewLinkedInCmd()

	want := map[string]bool{"find": false, "profile": false, "company": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %s subcommand", name)
		}
	}
}

// TestLinkedInCmdMissingKey checks the credential gate fires before any
// network access.
func TestLinkedInCmdMissingKey(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "")

	root := NewRootCmd()
	root.SetArgs([]string{"linkedin", "find", "--keys", emptyKeysFile(t), "Jane Smith"})

	err := root.Execute()
	if err == nil {
		t.Fatal("expected error without RapidAPI key")
	}
	if !strings.Contains(err.Error(), "RAPIDAPI_KEY") {
		t.Errorf("error = %v, want mention of RAPIDAPI_KEY", err)
	}
}
