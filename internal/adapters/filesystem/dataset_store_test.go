package filesystem_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/casedate/internal/adapters/filesystem"
	"github.com/example/casedate/internal/core/dataset"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0640); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestCSVStore_Exists(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewCSVStore()
	ctx := context.Background()

	exists, err := store.Exists(ctx, filepath.Join(tmpDir, "missing.csv"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected missing file to not exist")
	}

	path := writeFile(t, tmpDir, "results.csv", "CaseNumber\n1\n")
	exists, err = store.Exists(ctx, path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}

	exists, err = store.Exists(ctx, tmpDir)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("a directory is not a dataset file")
	}
}

func TestCSVStore_Load(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewCSVStore()

	path := writeFile(t, tmpDir, "results.csv",
		"CaseNumber,Protocol Name,Answer\n"+
			"1001,Breast,\"Yes, confirmed\"\n"+
			"1002,Colon,No\n")

	tbl, err := store.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if strings.Join(tbl.Header, "|") != "CaseNumber|Protocol Name|Answer" {
		t.Errorf("header = %v", tbl.Header)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}
	if tbl.Rows[0][2] != "Yes, confirmed" {
		t.Errorf("quoted cell = %q", tbl.Rows[0][2])
	}
}

func TestCSVStore_LoadStripsBOM(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewCSVStore()
	path := writeFile(t, tmpDir, "bom.csv", "\uFEFFCaseNumber,Answer\nA,1\n")

	tbl, err := store.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !tbl.HasColumn("CaseNumber") {
		t.Errorf("BOM not stripped from header: %q", tbl.Header[0])
	}
}

func TestCSVStore_LoadErrors(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewCSVStore()
	ctx := context.Background()

	tests := []struct {
		name     string
		content  *string
		wantKind error
		wantLine int
	}{
		{name: "missing file", content: nil, wantKind: dataset.ErrFileNotFound},
		{name: "empty file", content: ptr(""), wantKind: dataset.ErrParse},
		{name: "ragged row", content: ptr("a,b\n1,2\n3\n"), wantKind: dataset.ErrParse, wantLine: 3},
		{name: "bare quote", content: ptr("a,b\n1,x\"y\n"), wantKind: dataset.ErrParse, wantLine: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "_")+".csv")
			if tt.content != nil {
				writeFile(t, tmpDir, filepath.Base(path), *tt.content)
			}

			_, err := store.Load(ctx, path)
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("Load() error = %v, want kind %v", err, tt.wantKind)
			}
			if tt.wantLine > 0 {
				var pe *dataset.ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("expected *dataset.ParseError, got %T", err)
				}
				if pe.Line != tt.wantLine {
					t.Errorf("Line = %d, want %d", pe.Line, tt.wantLine)
				}
			}
		})
	}
}

func ptr(s string) *string { return &s }

func TestCSVStore_SaveReplacesAndKeepsMode(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewCSVStore()
	ctx := context.Background()
	path := writeFile(t, tmpDir, "results.csv", "old content\n")

	tbl := dataset.NewTable(
		[]string{"CaseNumber", "Answer", "Date"},
		[][]string{{"A", "has, comma", "2023-01-01"}, {"B", "plain", "2023-02-01"}},
	)
	if err := store.Save(ctx, path, tbl); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	want := "CaseNumber,Answer,Date\nA,\"has, comma\",2023-01-01\nB,plain,2023-02-01\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file content = %q, want %q", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("mode = %v, want 0640", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(tmpDir)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestCSVStore_SaveUnwritableDir(t *testing.T) {
	store := filesystem.NewCSVStore()
	path := filepath.Join(t.TempDir(), "no-such-dir", "results.csv")

	err := store.Save(context.Background(), path, dataset.NewTable([]string{"a"}, nil))
	if !errors.Is(err, dataset.ErrWrite) {
		t.Errorf("Save() error = %v, want ErrWrite", err)
	}
}

func TestCSVStore_CopyNew(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewCSVStore()
	ctx := context.Background()
	original := "CaseNumber\r\n\"weird \"\"quoting\"\"\"\r\n"
	src := writeFile(t, tmpDir, "results.csv", original)
	dst := src + ".backup"

	if err := store.CopyNew(ctx, src, dst); err != nil {
		t.Fatalf("CopyNew failed: %v", err)
	}
	if got := readFile(t, dst); got != original {
		t.Errorf("backup content = %q, want byte-exact %q", got, original)
	}

	// A second copy must not clobber the existing backup
	if err := os.WriteFile(src, []byte("changed"), 0640); err != nil {
		t.Fatalf("failed to modify source: %v", err)
	}
	if err := store.CopyNew(ctx, src, dst); !errors.Is(err, dataset.ErrWrite) {
		t.Errorf("second CopyNew error = %v, want ErrWrite", err)
	}
	if got := readFile(t, dst); got != original {
		t.Error("existing backup was overwritten")
	}
}

func TestCSVStore_CopyNewMissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewCSVStore()
	dst := filepath.Join(tmpDir, "results.csv.backup")

	err := store.CopyNew(context.Background(), filepath.Join(tmpDir, "results.csv"), dst)
	if !errors.Is(err, dataset.ErrFileNotFound) {
		t.Errorf("CopyNew() error = %v, want ErrFileNotFound", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("backup should not be created when the source is missing")
	}
}

func TestCSVStore_Replace(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewCSVStore()
	ctx := context.Background()
	dst := writeFile(t, tmpDir, "results.csv", "mutated\n")
	src := writeFile(t, tmpDir, "results.csv.backup", "original\n")

	if err := store.Replace(ctx, src, dst); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if got := readFile(t, dst); got != "original\n" {
		t.Errorf("dataset = %q, want original", got)
	}
	if got := readFile(t, src); got != "original\n" {
		t.Errorf("backup changed to %q", got)
	}
}

func TestCSVStore_Checksum(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewCSVStore()
	ctx := context.Background()
	path := writeFile(t, tmpDir, "a.csv", "abc")

	sum, err := store.Checksum(ctx, path)
	if err != nil {
		t.Fatalf("Checksum failed: %v", err)
	}
	if sum != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("Checksum = %s", sum)
	}

	if _, err := store.Checksum(ctx, filepath.Join(tmpDir, "missing")); !errors.Is(err, dataset.ErrFileNotFound) {
		t.Errorf("Checksum() error = %v, want ErrFileNotFound", err)
	}
}

func TestCSVStore_RoundTripStable(t *testing.T) {
	tmpDir := t.TempDir()
	store := filesystem.NewCSVStore()
	ctx := context.Background()
	path := writeFile(t, tmpDir, "results.csv", "CaseNumber,Answer\nA,\"x, y\"\nB,\"multi\nline\"\n")

	tbl, err := store.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.Save(ctx, path, tbl); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	first := readFile(t, path)

	tbl, err = store.Load(ctx, path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if err := store.Save(ctx, path, tbl); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if second := readFile(t, path); second != first {
		t.Errorf("round trip not stable:\n%q\n%q", first, second)
	}
}
