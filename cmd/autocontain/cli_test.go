package main

import "testing"

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"index": false, "flow": false, "rm": false, "chat": false,
		"tree": false, "install": false, "cleanup": false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %s not registered", name)
		}
	}
}

func TestIndexRejectsNonGitHubLink(t *testing.T) {
	err := runIndex(indexCmd, []string{"https://gitlab.com/owner/project"})
	if err == nil {
		t.Fatal("expected error for non-GitHub link")
	}
}
