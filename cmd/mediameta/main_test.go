package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/mediameta/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// parse runs flag parsing only and returns the merged config.
func parse(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	var a cliArgs
	cmd := newRootCmdWithArgs(&a)
	if err := cmd.ParseFlags(args); err != nil {
		return nil, err
	}
	return resolveConfig(cmd.Flags(), &a)
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "checksum: true\njobs: 4\nformat: json\nffprobe: /opt/ffmpeg/bin/ffprobe\n")

	cfg, err := parse(t, "--config", path, "-j", "2", "-A", "--no-progress")
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}

	if !cfg.IncludeChecksum {
		t.Error("checksum from file was lost")
	}
	if cfg.Jobs != 2 {
		t.Errorf("Jobs = %d, want 2 from the flag", cfg.Jobs)
	}
	if cfg.Format != config.FormatJSON {
		t.Errorf("Format = %q, want json from the file", cfg.Format)
	}
	if cfg.FFprobePath != "/opt/ffmpeg/bin/ffprobe" {
		t.Errorf("FFprobePath = %q, unset flag must not override the file", cfg.FFprobePath)
	}
	if !cfg.IncludeAllTags || !cfg.IncludeTags {
		t.Error("--all-tags should imply tags")
	}
	if cfg.Progress {
		t.Error("--no-progress ignored")
	}
}

func TestResolveConfigFlagCanDisableFileSetting(t *testing.T) {
	path := writeConfig(t, "checksum: true\n")

	cfg, err := parse(t, "--config", path, "--checksum=false")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IncludeChecksum {
		t.Error("--checksum=false did not override the file")
	}
}

func TestResolveConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"bad format", []string{"--format", "xml"}, config.ErrInvalidFormat},
		{"zero jobs", []string{"-j", "0"}, config.ErrInvalidJobs},
		{"empty ffprobe", []string{"--ffprobe", ""}, config.ErrEmptyFFprobePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
			_, err := parse(t, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("resolveConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "mediameta version "+appVersion+"\n") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRootRequiresFiles(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("Execute() with no files should fail")
	}
}
