package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mercator-hq/configurator/pkg/cli"
)

const wardrobeModel = "../../pkg/featuremodel/testdata/wardrobe.json"

const validScript = `
steps:
  - place: 11
  - place: 16
    above: 0
  - place: 10
    left_of: 0
  - place: 11
    left_of: 2
  - place: 13
    above: 3
`

const overBudgetScript = `
price_limit: 400
material: 21
steps:
  - place: 11
  - place: 16
    above: 0
  - place: 10
    left_of: 0
  - place: 11
    left_of: 2
  - place: 13
    above: 3
`

// syncBuffer is written by the watch command while the test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// setEnv isolates a run from the host environment and keeps history in
// memory unless a test overrides it.
func setEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIGURATOR_HISTORY_BACKEND", "memory")
	t.Setenv("CONFIGURATOR_MODEL_PATH", "")
	t.Setenv("CONFIGURATOR_PRICING_LIMIT", "-1")
	t.Setenv("CONFIGURATOR_TELEMETRY_LOGGING_LEVEL", "error")
	t.Setenv("CONFIGURATOR_TELEMETRY_METRICS_ENABLED", "false")
}

func executeContext(ctx context.Context, out io.Writer, args ...string) error {
	resetFlags(rootCmd)
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := executeContext(context.Background(), &out, args...)
	return out.String(), err
}

func writeScript(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLintCommand(t *testing.T) {
	setEnv(t)

	out, err := execute(t, "lint", "--model", wardrobeModel)
	if err != nil {
		t.Fatalf("lint error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Model is valid") {
		t.Errorf("output = %q", out)
	}

	_, err = execute(t, "lint")
	if code := cli.ExitCode(err); code != cli.ExitConfig {
		t.Errorf("lint without model: exit code %d, want %d (%v)", code, cli.ExitConfig, err)
	}

	_, err = execute(t, "lint", "--model", filepath.Join(t.TempDir(), "missing.json"))
	if code := cli.ExitCode(err); code != cli.ExitFailure {
		t.Errorf("lint missing file: exit code %d, want %d", code, cli.ExitFailure)
	}
}

func TestFeaturesCommand(t *testing.T) {
	setEnv(t)

	out, err := execute(t, "features", "--model", wardrobeModel, "--materials")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Materials (") || !strings.Contains(out, "White Lacquer") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "features", "--model", wardrobeModel, "--format", "csv")
	if err != nil {
		t.Fatal(err)
	}
	if first := strings.SplitN(out, "\n", 2)[0]; first != "id,name,parent_id,physical,material,price" {
		t.Errorf("csv header = %q", first)
	}

	_, err = execute(t, "features", "--model", wardrobeModel, "--format", "xml")
	if code := cli.ExitCode(err); code != cli.ExitConfig {
		t.Errorf("bad format: exit code %d, want %d", code, cli.ExitConfig)
	}
}

func TestCandidatesCommand(t *testing.T) {
	setEnv(t)

	out, err := execute(t, "candidates", "--model", wardrobeModel, "--feature", "11", "--direction", "left")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "left of Frame Large") || !strings.Contains(out, "Frame Small") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "candidates", "--model", wardrobeModel)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Free placement") {
		t.Errorf("output = %q", out)
	}

	_, err = execute(t, "candidates", "--model", wardrobeModel, "--feature", "11", "--direction", "below")
	if code := cli.ExitCode(err); code != cli.ExitConfig {
		t.Errorf("bad direction: exit code %d, want %d", code, cli.ExitConfig)
	}
}

func TestValidateCommand(t *testing.T) {
	setEnv(t)

	out, err := execute(t, "validate", "--model", wardrobeModel, "--session", writeScript(t, validScript))
	if err != nil {
		t.Fatalf("validate error = %v\n%s", err, out)
	}
	for _, want := range []string{"Your configuration is valid.", "Total: 450 (no limit)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "validate", "--model", wardrobeModel, "--session", writeScript(t, overBudgetScript))
	if code := cli.ExitCode(err); code != cli.ExitInvalid {
		t.Errorf("over budget: exit code %d, want %d", code, cli.ExitInvalid)
	}
	if !strings.Contains(out, "Current product price is 125 above the set limit.") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "validate", "--model", wardrobeModel, "--session", writeScript(t, overBudgetScript),
		"--price-limit", "-1", "--format", "json")
	if err != nil {
		t.Fatalf("price limit override error = %v", err)
	}
	var result ValidateResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !result.Report.Valid || result.Price.Used != 525 || result.Session == "" {
		t.Errorf("result = %+v, report = %+v", result, result.Report)
	}

	_, err = execute(t, "validate", "--model", wardrobeModel)
	if err == nil {
		t.Error("validate without --session succeeded")
	}
}

func TestHistoryCommands(t *testing.T) {
	setEnv(t)
	t.Setenv("CONFIGURATOR_HISTORY_BACKEND", "sqlite")
	t.Setenv("CONFIGURATOR_HISTORY_SQLITE_PATH", filepath.Join(t.TempDir(), "db", "history.db"))

	_, _ = execute(t, "validate", "--model", wardrobeModel, "--session", writeScript(t, validScript))
	_, _ = execute(t, "validate", "--model", wardrobeModel, "--session", writeScript(t, overBudgetScript))

	out, err := execute(t, "history", "list", "--invalid", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var list RecordList
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if list.Total != 1 || len(list.Records) != 1 || list.Records[0].Valid {
		t.Errorf("invalid runs = %+v", list)
	}

	out, err = execute(t, "history", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Validation runs: 2 of 2") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "history", "prune", "--max-records", "1")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Pruned 1 record(s)\n" {
		t.Errorf("prune output = %q", out)
	}

	t.Setenv("CONFIGURATOR_HISTORY_ENABLED", "false")
	_, err = execute(t, "history", "list")
	if code := cli.ExitCode(err); code != cli.ExitConfig {
		t.Errorf("disabled history: exit code %d, want %d", code, cli.ExitConfig)
	}
}

func TestVersionCommand(t *testing.T) {
	setEnv(t)

	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Configurator "+Version+"\n") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigFileError(t *testing.T) {
	setEnv(t)

	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	if code := cli.ExitCode(err); code != cli.ExitConfig {
		t.Errorf("exit code %d, want %d (%v)", code, cli.ExitConfig, err)
	}
}

func TestWatchCommand(t *testing.T) {
	setEnv(t)
	t.Setenv("CONFIGURATOR_WATCH_DEBOUNCE", "20ms")

	data, err := os.ReadFile(wardrobeModel)
	if err != nil {
		t.Fatal(err)
	}
	modelFile := filepath.Join(t.TempDir(), "wardrobe.json")
	if err := os.WriteFile(modelFile, data, 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- executeContext(ctx, out, "watch", "--model", modelFile, "--session", writeScript(t, validScript))
	}()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for !strings.Contains(out.String(), want) {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %q:\n%s", want, out.String())
			}
			time.Sleep(20 * time.Millisecond)
		}
	}

	waitFor(`Loaded "Wardrobe"`)
	waitFor("Your configuration is valid.")

	renamed := []byte(strings.Replace(string(data), `"name": "Wardrobe"`, `"name": "Wardrobe Mk2"`, 1))
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), `Loaded "Wardrobe Mk2"`) {
		if time.Now().After(deadline) {
			t.Fatalf("model not reloaded:\n%s", out.String())
		}
		if err := os.WriteFile(modelFile, renamed, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
