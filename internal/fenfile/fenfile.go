// Package fenfile reads position lists: one FEN per line, optionally followed by
// EPD perft annotations (";D1 20 ;D2 400"). Files compressed with zstd are
// decoded transparently.
package fenfile

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type Entry struct {
	Line int
	Fen  string
	// Perft holds expected node counts by depth.
	Perft map[int]int64
}

type zstdFile struct {
	*zstd.Decoder
	file *os.File
}

func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.file.Close()
}

type plainFile struct {
	io.Reader
	file *os.File
}

func (f *plainFile) Close() error {
	return f.file.Close()
}

// Open returns a reader over the decompressed contents of path.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var br = bufio.NewReader(file)
	magic, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		file.Close()
		return nil, err
	}
	if !bytes.Equal(magic, zstdMagic) {
		return &plainFile{Reader: br, file: file}, nil
	}
	dec, err := zstd.NewReader(br)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("zstd %v: %w", path, err)
	}
	return &zstdFile{Decoder: dec, file: file}, nil
}

// Walk calls fn for every entry of r in file order.
// Blank lines and lines starting with '#' are skipped.
func Walk(r io.Reader, fn func(Entry) error) error {
	var scanner = bufio.NewScanner(r)
	var line int
	for scanner.Scan() {
		line++
		var s = strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		entry, err := ParseEntry(s)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		entry.Line = line
		if err := fn(entry); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("line %d: %w", line+1, err)
	}
	return nil
}

// Load sends the entries of the file at path until the file ends,
// ctx is cancelled, or reading fails.
func Load(ctx context.Context, path string, entries chan<- Entry) error {
	f, err := Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	err = Walk(f, func(e Entry) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entries <- e:
			return nil
		}
	})
	if err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	return nil
}

func ReadAll(path string) ([]Entry, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var result []Entry
	err = Walk(f, func(e Entry) error {
		result = append(result, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return result, nil
}

// ParseEntry splits a line into the FEN and its perft annotations.
// A trailing quoted comment (c9 "1-0";) is dropped.
func ParseEntry(s string) (Entry, error) {
	var parts = strings.Split(s, ";")
	var fen = parts[0]
	if index := strings.Index(fen, "\""); index >= 0 {
		fen = strings.TrimSuffix(strings.TrimSpace(fen[:index]), " c9")
	}
	fen = strings.TrimSpace(fen)
	if fen == "" {
		return Entry{}, fmt.Errorf("empty fen in %q", s)
	}
	var entry = Entry{Fen: fen}
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var fields = strings.Fields(part)
		if len(fields) != 2 || !strings.HasPrefix(fields[0], "D") {
			return Entry{}, fmt.Errorf("bad perft annotation %q", part)
		}
		depth, err := strconv.Atoi(fields[0][1:])
		if err != nil || depth <= 0 {
			return Entry{}, fmt.Errorf("bad perft depth %q", part)
		}
		nodes, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || nodes < 0 {
			return Entry{}, fmt.Errorf("bad perft count %q", part)
		}
		if entry.Perft == nil {
			entry.Perft = make(map[int]int64)
		}
		entry.Perft[depth] = nodes
	}
	return entry, nil
}
