// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/casedate/internal/core/dataset"
	"github.com/example/casedate/internal/ports/secondary"
)

const bufSize = 1 << 20 // 1 MiB

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVStore implements secondary.DatasetStore for CSV files on local disk.
type CSVStore struct{}

// NewCSVStore creates a new CSV dataset store.
func NewCSVStore() *CSVStore {
	return &CSVStore{}
}

// Exists reports whether a regular file is present at path.
func (s *CSVStore) Exists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

// Load parses the CSV file at path. The first record is the header and every
// following record must have the same number of fields.
func (s *CSVStore) Load(ctx context.Context, path string) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, dataset.ErrFileNotFound)
	}
	if err != nil {
		return nil, &dataset.ParseError{Path: path, Err: err}
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, bufSize)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, &dataset.ParseError{Path: path, Err: errors.New("empty file, no header row")}
	}
	if err != nil {
		return nil, toParseError(path, err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, toParseError(path, err)
		}
		rows = append(rows, row)
	}

	return dataset.NewTable(header, rows), nil
}

// Save replaces the file at path with tbl. The table is written to a temp
// file in the same directory and renamed over path, keeping the original mode.
func (s *CSVStore) Save(ctx context.Context, path string, tbl *dataset.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := atomicWrite(path, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		if err := writer.Write(tbl.Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for i, row := range tbl.Rows {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
		writer.Flush()
		return writer.Error()
	})
	if err != nil {
		return fmt.Errorf("save %s: %w: %w", path, dataset.ErrWrite, err)
	}
	return nil
}

// CopyNew copies src byte-for-byte to dst. It refuses to overwrite an existing dst.
func (s *CSVStore) CopyNew(ctx context.Context, src, dst string) error {
	in, info, err := openSource(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w: %w", dst, dataset.ErrWrite, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("copy %s to %s: %w: %w", src, dst, dataset.ErrWrite, err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("sync %s: %w: %w", dst, dataset.ErrWrite, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("close %s: %w: %w", dst, dataset.ErrWrite, err)
	}
	return nil
}

// Replace atomically overwrites dst with the contents of src.
func (s *CSVStore) Replace(ctx context.Context, src, dst string) error {
	in, _, err := openSource(src)
	if err != nil {
		return err
	}
	defer in.Close()

	err = atomicWrite(dst, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
	if err != nil {
		return fmt.Errorf("replace %s: %w: %w", dst, dataset.ErrWrite, err)
	}
	return nil
}

// Checksum returns the hex SHA-256 of the file at path.
func (s *CSVStore) Checksum(ctx context.Context, path string) (string, error) {
	f, _, err := openSource(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func openSource(path string) (*os.File, fs.FileInfo, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("%s: %w", path, dataset.ErrFileNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return f, info, nil
}

// atomicWrite writes through fill into a temp file next to path and renames it
// over path. An existing file's permissions are carried over.
func atomicWrite(path string, fill func(w io.Writer) error) error {
	perm := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	bw := bufio.NewWriterSize(tmp, bufSize)
	if err := fill(bw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func toParseError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &dataset.ParseError{Path: path, Line: pe.Line, Err: pe.Err}
	}
	return &dataset.ParseError{Path: path, Err: err}
}

// Ensure CSVStore implements the interface
var _ secondary.DatasetStore = (*CSVStore)(nil)
