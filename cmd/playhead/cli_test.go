package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig writes a config pointing all state at a temp directory and
// returns the config path. The file backend keeps test output inspectable.
func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	contents := `
[paths]
state_dir = "` + filepath.Join(dir, "state") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[state]
backend = "file"
`
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// runCLI executes one full command invocation against a fresh root command,
// the way a shell user would.
func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestSaveAndShow(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCLI(t, cfg, "save",
		"--item", "night-of-the-living-dead",
		"--file", "notld.mp4",
		"--time", "1200",
		"--duration", "5700",
		"--title", "Night of the Living Dead")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(out, "Recorded night-of-the-living-dead at 20:00") {
		t.Fatalf("unexpected save output: %q", out)
	}

	out, err = runCLI(t, cfg, "show", "night-of-the-living-dead", "notld.mp4")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{
		"Item:      night-of-the-living-dead",
		"File:      notld.mp4",
		"Title:     Night of the Living Dead",
		"Kind:      video",
		"Resumable: true",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestShowLatestAcrossFilenames(t *testing.T) {
	cfg := writeTestConfig(t)

	for _, file := range []string{"part1.mp4", "part2.mp4"} {
		if _, err := runCLI(t, cfg, "save",
			"--item", "serial", "--file", file, "--time", "60", "--duration", "600"); err != nil {
			t.Fatalf("save %s: %v", file, err)
		}
	}

	out, err := runCLI(t, cfg, "show", "serial")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "File:      part2.mp4") {
		t.Fatalf("expected most recent file, got:\n%s", out)
	}
}

func TestShowJSON(t *testing.T) {
	cfg := writeTestConfig(t)

	if _, err := runCLI(t, cfg, "save",
		"--item", "abc", "--file", "a.mp4", "--time", "30", "--duration", "120"); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := runCLI(t, cfg, "show", "abc", "a.mp4", "--json")
	if err != nil {
		t.Fatalf("show --json: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode JSON output: %v\n%s", err, out)
	}
	if payload["item_id"] != "abc" || payload["filename"] != "a.mp4" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestSaveCompletionClearsProgress(t *testing.T) {
	cfg := writeTestConfig(t)

	if _, err := runCLI(t, cfg, "save",
		"--item", "done", "--file", "done.mp4", "--time", "30", "--duration", "120"); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	out, err := runCLI(t, cfg, "save",
		"--item", "done", "--file", "done.mp4", "--time", "118", "--duration", "120")
	if err != nil {
		t.Fatalf("completing save: %v", err)
	}
	if !strings.Contains(out, "Playback complete; cleared progress for done/done.mp4") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = runCLI(t, cfg, "show", "done")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "No progress recorded for done") {
		t.Fatalf("expected cleared progress, got:\n%s", out)
	}
}

func TestSaveAlbumMode(t *testing.T) {
	cfg := writeTestConfig(t)

	if _, err := runCLI(t, cfg, "save",
		"--item", "gd1977-05-08",
		"--time", "0.4",
		"--duration", "5400",
		"--title", "Cornell 5/8/77",
		"--media-type", "etree",
		"--track-index", "2",
		"--track-file", "t03.flac",
		"--track-time", "75"); err != nil {
		t.Fatalf("album save: %v", err)
	}

	out, err := runCLI(t, cfg, "show", "gd1977-05-08")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{
		"Kind:      audio",
		"Track:     #2 t03.flac at 1:15",
		"Resumable: true",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("album output missing %q:\n%s", want, out)
		}
	}
}

func TestSaveRejectsBadFlags(t *testing.T) {
	cfg := writeTestConfig(t)

	if _, err := runCLI(t, cfg, "save", "--file", "a.mp4", "--time", "10"); err == nil {
		t.Fatal("expected error for missing --item")
	}
	if _, err := runCLI(t, cfg, "save", "--item", "a", "--time", "10"); err == nil {
		t.Fatal("expected error for missing --file")
	}
	if _, err := runCLI(t, cfg, "save", "--item", "a", "--track-index", "1"); err == nil {
		t.Fatal("expected error for album mode without --track-file")
	}
}

func TestWatchingAndListeningPartition(t *testing.T) {
	cfg := writeTestConfig(t)

	if _, err := runCLI(t, cfg, "save",
		"--item", "movie", "--file", "m.mp4", "--time", "600", "--duration", "6000",
		"--title", "A Movie"); err != nil {
		t.Fatalf("save video: %v", err)
	}
	if _, err := runCLI(t, cfg, "save",
		"--item", "show78rpm", "--file", "s.mp3", "--time", "60", "--duration", "300",
		"--title", "A Show", "--media-type", "audio"); err != nil {
		t.Fatalf("save audio: %v", err)
	}

	out, err := runCLI(t, cfg, "watching")
	if err != nil {
		t.Fatalf("watching: %v", err)
	}
	if !strings.Contains(out, "A Movie") || strings.Contains(out, "A Show") {
		t.Fatalf("unexpected watching output:\n%s", out)
	}

	out, err = runCLI(t, cfg, "listening")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	if !strings.Contains(out, "A Show") || strings.Contains(out, "A Movie") {
		t.Fatalf("unexpected listening output:\n%s", out)
	}
}

func TestWatchingEmpty(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCLI(t, cfg, "watching")
	if err != nil {
		t.Fatalf("watching: %v", err)
	}
	if !strings.Contains(out, "Nothing to resume") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestResumeCommand(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCLI(t, cfg, "resume", "missing")
	if err != nil {
		t.Fatalf("resume missing: %v", err)
	}
	if !strings.Contains(out, "No progress recorded for missing") {
		t.Fatalf("unexpected output: %q", out)
	}

	if _, err := runCLI(t, cfg, "save",
		"--item", "barely", "--file", "b.mp4", "--time", "5", "--duration", "600"); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err = runCLI(t, cfg, "resume", "barely")
	if err != nil {
		t.Fatalf("resume barely: %v", err)
	}
	if !strings.Contains(out, "no resumable progress") {
		t.Fatalf("unexpected output: %q", out)
	}

	if _, err := runCLI(t, cfg, "save",
		"--item", "deep", "--file", "d.mp4", "--time", "300", "--duration", "600"); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err = runCLI(t, cfg, "resume", "deep")
	if err != nil {
		t.Fatalf("resume deep: %v", err)
	}
	if !strings.Contains(out, "Resume deep at 5:00 into d.mp4") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRemoveAndClear(t *testing.T) {
	cfg := writeTestConfig(t)

	for _, file := range []string{"a.mp4", "b.mp4"} {
		if _, err := runCLI(t, cfg, "save",
			"--item", "multi", "--file", file, "--time", "60", "--duration", "600"); err != nil {
			t.Fatalf("save %s: %v", file, err)
		}
	}

	if _, err := runCLI(t, cfg, "remove", "multi", "a.mp4"); err != nil {
		t.Fatalf("remove file: %v", err)
	}
	out, err := runCLI(t, cfg, "show", "multi", "a.mp4")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "No progress recorded") {
		t.Fatalf("expected removed file, got:\n%s", out)
	}
	if out, _ := runCLI(t, cfg, "show", "multi", "b.mp4"); strings.Contains(out, "No progress recorded") {
		t.Fatal("expected other file to survive")
	}

	if _, err := runCLI(t, cfg, "remove", "multi"); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if out, _ := runCLI(t, cfg, "show", "multi"); !strings.Contains(out, "No progress recorded") {
		t.Fatalf("expected all progress removed, got:\n%s", out)
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	cfg := writeTestConfig(t)

	if _, err := runCLI(t, cfg, "save",
		"--item", "keep", "--file", "k.mp4", "--time", "60", "--duration", "600"); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := runCLI(t, cfg, "clear"); err == nil {
		t.Fatal("expected clear without --yes to fail")
	}
	if out, _ := runCLI(t, cfg, "show", "keep"); strings.Contains(out, "No progress recorded") {
		t.Fatal("refused clear must not touch state")
	}

	out, err := runCLI(t, cfg, "clear", "--yes")
	if err != nil {
		t.Fatalf("clear --yes: %v", err)
	}
	if !strings.Contains(out, "Cleared all progress") {
		t.Fatalf("unexpected output: %q", out)
	}
	if out, _ := runCLI(t, cfg, "show", "keep"); !strings.Contains(out, "No progress recorded") {
		t.Fatal("expected state cleared")
	}
}

func TestStatusCommand(t *testing.T) {
	cfg := writeTestConfig(t)

	if _, err := runCLI(t, cfg, "save",
		"--item", "movie", "--file", "m.mp4", "--time", "60", "--duration", "600"); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := runCLI(t, cfg, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Total records\t1") {
		t.Fatalf("unexpected status output:\n%s", out)
	}
	if !strings.Contains(out, "Continue watching\t1") {
		t.Fatalf("unexpected status output:\n%s", out)
	}
}

func TestHealthFileBackend(t *testing.T) {
	cfg := writeTestConfig(t)

	if _, err := runCLI(t, cfg, "save",
		"--item", "movie", "--file", "m.mp4", "--time", "60", "--duration", "600"); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := runCLI(t, cfg, "health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.Contains(out, "Backend:  file") || !strings.Contains(out, "Records:  1") {
		t.Fatalf("unexpected health output:\n%s", out)
	}
}

func TestHealthSQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	contents := `
[paths]
state_dir = "` + filepath.Join(dir, "state") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
`
	cfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfg, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := runCLI(t, cfg, "save",
		"--item", "movie", "--file", "m.mp4", "--time", "60", "--duration", "600"); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := runCLI(t, cfg, "health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	for _, want := range []string{"Backend:    sqlite", "Table:      true", "Integrity:  true", "Records:    1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("health output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, target, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration to "+target) {
		t.Fatalf("unexpected init output: %q", out)
	}

	if _, err := runCLI(t, target, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, err := runCLI(t, target, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, err = runCLI(t, target, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid: "+target) {
		t.Fatalf("unexpected validate output: %q", out)
	}
}

func TestConfigShow(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := runCLI(t, cfg, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"[paths]", "[state]", "[progress]", "[logging]", "file"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show missing %q:\n%s", want, out)
		}
	}
}
