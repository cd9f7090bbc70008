package cmd

import (
	"bytes"
	"testing"
)

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantErr: false,
		},
		{
			name:    "help flag",
			args:    []string{"--help"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			var stdout, stderr bytes.Buffer
			rootCmd.SetOut(&stdout)
			rootCmd.SetErr(&stderr)

			if err := rootCmd.Execute(); (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := map[string]bool{
		"list":   false,
		"show":   false,
		"export": false,
		"serve":  false,
	}

	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q is not registered", name)
		}
	}
}

func TestActiveSource(t *testing.T) {
	orig := sourceName
	defer func() { sourceName = orig }()

	sourceName = "secondary"
	if source, err := activeSource(); err != nil || source != "secondary" {
		t.Errorf("activeSource() = %v, %v; want secondary", source, err)
	}

	sourceName = "tertiary"
	if _, err := activeSource(); err == nil {
		t.Error("activeSource() should reject an unknown source name")
	}
}
