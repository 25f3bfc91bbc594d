package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/casedate/internal/wire"
)

// The wiring is a process-wide singleton, so every command that reaches the
// services runs inside this one test.
func TestCommands_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	dataset := writeFile(t, dir, "results.csv", "CaseNumber,Name\nA,x\nB,y\nA,z\nC,w\n")
	ledger := filepath.Join(dir, "state", "ledger.db")
	t.Cleanup(func() { _ = wire.Close() })

	run := func(args ...string) string {
		t.Helper()
		var buf bytes.Buffer
		root := newTestRoot(&buf, StampCmd(), PreviewCmd(), RestoreCmd(), HistoryCmd())
		root.SetArgs(append(args, "--file", dataset, "--ledger", ledger))
		if err := root.Execute(); err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
		return buf.String()
	}

	out := run("preview")
	if !strings.Contains(out, "Would assign 3 unique case numbers to dates ranging from Jan 2023 to Dec 2024") {
		t.Errorf("unexpected preview output:\n%s", out)
	}
	if _, err := os.Stat(dataset + ".backup"); !os.IsNotExist(err) {
		t.Fatalf("preview must not create a backup")
	}

	out = run("stamp")
	for _, want := range []string{
		"✓ Backup created at " + dataset + ".backup",
		"✓ Added Date column to " + dataset,
		"Assigned 3 unique case numbers to dates ranging from Jan 2023 to Dec 2024",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stamp output missing %q:\n%s", want, out)
		}
	}

	data, err := os.ReadFile(dataset)
	if err != nil {
		t.Fatalf("failed to read dataset: %v", err)
	}
	want := "CaseNumber,Name,Date\nA,x,2023-01-01\nB,y,2023-02-01\nA,z,2023-01-01\nC,w,2023-03-01\n"
	if string(data) != want {
		t.Errorf("dataset = %q, want %q", data, want)
	}

	out = run("restore")
	if !strings.Contains(out, "✓ Restored "+dataset) {
		t.Errorf("unexpected restore output:\n%s", out)
	}
	data, err = os.ReadFile(dataset)
	if err != nil {
		t.Fatalf("failed to read dataset: %v", err)
	}
	if string(data) != "CaseNumber,Name\nA,x\nB,y\nA,z\nC,w\n" {
		t.Errorf("restore did not bring back the original content: %q", data)
	}

	out = run("history")
	if !strings.Contains(out, "restore") || !strings.Contains(out, "stamp") {
		t.Errorf("history should list both runs:\n%s", out)
	}

	out = run("history", "--kind", "stamp")
	if strings.Contains(out, "restore ") {
		t.Errorf("kind filter not applied:\n%s", out)
	}
}
