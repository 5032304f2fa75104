// Package source reads SQL input from files, stdin and LZ4-compressed
// dumps, and writes formatted output back the same way.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"

	qerrors "github.com/dshills/QuantaSQL/internal/errors"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Compression identifies how input bytes are encoded.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// lz4Magic starts every LZ4 frame.
var lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}

// ErrTooLarge is matched by errors.Is when input exceeds the size limit.
var ErrTooLarge = errors.New("input too large")

// Source is SQL text together with where it came from.
type Source struct {
	Name        string
	Text        string
	Compression Compression
	// RawSize is the number of bytes read before decompression.
	RawSize int64
}

// Reader reads sources with a size limit on the decoded text.
type Reader struct {
	// MaxBytes limits decoded text; 0 means unlimited.
	MaxBytes int64
	// Stdin is read for the path "-".
	Stdin io.Reader
}

// NewReader returns a reader reading standard input for "-".
func NewReader(maxBytes int64) *Reader {
	return &Reader{MaxBytes: maxBytes, Stdin: os.Stdin}
}

// Open reads the file at path, or standard input for "-".
func (r *Reader) Open(path string) (*Source, error) {
	if path == Stdin {
		return r.Read(r.Stdin, "<stdin>")
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, qerrors.Newf(qerrors.UndefinedFile, "input file %s does not exist", path).WithCause(err)
		}
		return nil, qerrors.IOErrorf("could not open input %s: %v", path, err).WithCause(err)
	}
	defer f.Close()

	return r.Read(f, path)
}

// OpenAll reads every path in order. No paths means standard input.
func (r *Reader) OpenAll(paths []string) ([]*Source, error) {
	if len(paths) == 0 {
		paths = []string{Stdin}
	}
	sources := make([]*Source, 0, len(paths))
	for _, path := range paths {
		src, err := r.Open(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// Read reads SQL text from in. LZ4 frames are recognized by their magic
// number and decompressed.
func (r *Reader) Read(in io.Reader, name string) (*Source, error) {
	counter := &countingReader{r: in}
	br := bufio.NewReader(counter)

	src := &Source{Name: name}
	var body io.Reader = br
	if head, _ := br.Peek(len(lz4Magic)); bytes.Equal(head, lz4Magic) {
		src.Compression = CompressionLZ4
		body = lz4.NewReader(br)
	}

	if r.MaxBytes > 0 {
		body = io.LimitReader(body, r.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, qerrors.IOErrorf("could not read %s (%s): %v", name, src.Compression, err).WithCause(err)
	}
	if r.MaxBytes > 0 && int64(len(data)) > r.MaxBytes {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", name, ErrTooLarge, r.MaxBytes)
	}

	src.Text = string(data)
	src.RawSize = counter.n
	return src, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Compress writes text to w as a single LZ4 frame.
func Compress(w io.Writer, text string) error {
	zw := lz4.NewWriter(w)
	if _, err := io.WriteString(zw, text); err != nil {
		return fmt.Errorf("LZ4 compression failed: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("LZ4 compression failed: %w", err)
	}
	return nil
}

// IsCompressedPath reports whether path names an LZ4 file.
func IsCompressedPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".lz4")
}

// WriteFile writes text to path, compressing it when the path ends in
// .lz4.
func WriteFile(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return qerrors.IOErrorf("could not create output %s: %v", path, err).WithCause(err)
	}

	if IsCompressedPath(path) {
		err = Compress(f, text)
	} else {
		_, err = io.WriteString(f, text)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return qerrors.OutputError(err)
	}
	return nil
}
