package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantLevel log.Level
		wantDebug bool
	}{
		{name: "default keeps warnings", cfg: Config{}, wantLevel: log.WarnLevel},
		{name: "debug", cfg: Config{Debug: true}, wantLevel: log.DebugLevel, wantDebug: true},
		{name: "console without debug", cfg: Config{Console: true}, wantLevel: log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.cfg.ConfigDir = dir
			if err := Init(tt.cfg); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			t.Cleanup(func() { Close() })

			if got := Logger.GetLevel(); got != tt.wantLevel {
				t.Errorf("level = %s, want %s", got, tt.wantLevel)
			}

			Debug("list reloaded", "count", 3)
			Warn("update failed", "id", "fb-001")
			if err := Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			data, err := os.ReadFile(Path(dir))
			if err != nil {
				t.Fatalf("log file not written: %v", err)
			}
			out := string(data)
			if !strings.Contains(out, "update failed") || !strings.Contains(out, "id=fb-001") {
				t.Errorf("warning missing from log:\n%s", out)
			}
			if got := strings.Contains(out, "list reloaded"); got != tt.wantDebug {
				t.Errorf("debug line written = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestPath(t *testing.T) {
	got := Path(filepath.Join("home", "triage"))
	if want := filepath.Join("home", "triage", "logs", "triage.log"); got != want {
		t.Errorf("Path() = %s, want %s", got, want)
	}
}

func TestReinitReplacesLogger(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	if err := Init(Config{ConfigDir: first}); err != nil {
		t.Fatal(err)
	}
	if err := Init(Config{ConfigDir: second}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { Close() })

	Error("store closed twice")
	Close()

	if _, err := os.Stat(Path(first)); err == nil {
		if data, _ := os.ReadFile(Path(first)); strings.Contains(string(data), "store closed twice") {
			t.Error("message went to the replaced log file")
		}
	}
	data, err := os.ReadFile(Path(second))
	if err != nil || !strings.Contains(string(data), "store closed twice") {
		t.Errorf("message missing from current log file: %v", err)
	}
}

func TestNoopWithoutInit(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if Logger != nil {
		t.Fatal("Logger set after Close")
	}
	Debug("dropped")
	Info("dropped")
	Warn("dropped")
	Error("dropped")
	if err := Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestInitUnwritableDir(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Init(Config{ConfigDir: blocker}); err == nil {
		Close()
		t.Error("Init() succeeded with a file in place of the config dir")
	}
}
