package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/backend/sqlitekv"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/persist"
	"todo/internal/service"
	"todo/internal/testutil"
)

// testFactory creates a store factory that hands out kv for every session.
func testFactory(kv *testutil.FakeKV) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config) (service.KV, error) {
		kv.Reopen()
		return kv, nil
	}
}

// run dispatches args with an isolated config directory.
func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeKV()))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeKV()))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	kv := testutil.NewFakeKV()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(kv))

	stdout, stderr, code := run(t, dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
	// help never touches the store
	if kv.Closed() {
		t.Error("expected store not to be opened")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeKV()))

	stdout, stderr, code := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeKV()))

	_, stderr, code := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeKV()))

	_, stderr, code := run(t, dispatcher, "list", "--config")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -config\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	kv := testutil.NewFakeKV()
	kv.Put(persist.DefaultKey, `[{"id":0,"title":"Buy milk","completed":true}]`)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(kv))

	stdout, stderr, code := run(t, dispatcher)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "   0  [x] Buy milk\nCompleted 1 out of 1 tasks.\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if !kv.Closed() {
		t.Error("expected store to be closed after the command")
	}
}

func TestDispatcher_MutationsPersistAcrossRuns(t *testing.T) {
	kv := testutil.NewFakeKV()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(kv))

	steps := []struct {
		args   []string
		stdout string
	}{
		{[]string{"add", "Buy", "milk"}, "added 0\n"},
		{[]string{"add", "Walk dog"}, "added 1\n"},
		{[]string{"toggle", "0"}, "0 completed\n"},
		{[]string{"purge"}, "removed 1\n"},
		{[]string{"add", "Call mom"}, "added 2\n"},
		{[]string{"ls"}, "   1  [ ] Walk dog\n   2  [ ] Call mom\nCompleted 0 out of 2 tasks.\n"},
	}
	for _, step := range steps {
		stdout, stderr, code := run(t, dispatcher, step.args...)
		if code != exitcode.Success {
			t.Fatalf("%v: expected exit code %d, got %d (stderr %q)", step.args, exitcode.Success, code, stderr)
		}
		if stdout != step.stdout {
			t.Errorf("%v: expected %q, got %q", step.args, step.stdout, stdout)
		}
	}

	v, _ := kv.Value(persist.DefaultKey)
	expected := `[{"id":1,"title":"Walk dog","completed":false},{"id":2,"title":"Call mom","completed":false}]`
	if v != expected {
		t.Errorf("expected stored %q, got %q", expected, v)
	}
}

func TestDispatcher_FlagsResetBetweenRuns(t *testing.T) {
	kv := testutil.NewFakeKV()
	kv.Put(persist.DefaultKey, `[{"id":0,"title":"a","completed":true},{"id":1,"title":"b","completed":false}]`)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(kv))

	stdout, _, _ := run(t, dispatcher, "list", "--open", "--quiet")
	if stdout != "   1  [ ] b\n" {
		t.Errorf("unexpected open listing %q", stdout)
	}

	stdout, _, _ = run(t, dispatcher, "list", "--quiet")
	if stdout != "   0  [x] a\n   1  [ ] b\n" {
		t.Errorf("unexpected full listing %q", stdout)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.KV, error) {
		return nil, errors.New("disk full")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, dispatcher, "list")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	expected := "error: open store: disk full\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoFactory(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, dispatcher, "count")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: no storage backend configured\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("colour: blue\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeKV()))

	_, stderr, code := run(t, dispatcher, "list", "--config", dir)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.HasPrefix(stderr, "error: invalid config.yaml") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_ConfigKey(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("key: work\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	kv := testutil.NewFakeKV()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(kv))

	if _, stderr, code := run(t, dispatcher, "add", "--config", dir, "report"); code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}

	if _, ok := kv.Value("work"); !ok {
		t.Error("expected tasks under configured key")
	}
	if _, ok := kv.Value(persist.DefaultKey); ok {
		t.Error("expected default key untouched")
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeKV()))

	_, stderr, code := run(t, dispatcher, "count", "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "restored tasks") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}

func TestDispatcher_SQLiteBackend(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "todo.db")
	factory := func(ctx context.Context, cfg *config.Config) (service.KV, error) {
		return sqlitekv.New(ctx, dbPath)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	if _, stderr, code := run(t, dispatcher, "add", "Buy milk"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}
	if _, stderr, code := run(t, dispatcher, "x", "0"); code != exitcode.Success {
		t.Fatalf("toggle failed: %d %q", code, stderr)
	}

	stdout, _, _ := run(t, dispatcher, "count")
	if stdout != "Completed 1 out of 1 tasks.\n" {
		t.Errorf("unexpected count %q", stdout)
	}
}
