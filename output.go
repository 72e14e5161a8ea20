package proxylist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/proxylist/codec"
	"github.com/hupe1980/proxylist/internal/fs"
)

// Compression selects how WriteFile compresses the encoded document.
type Compression uint8

const (
	// CompressionNone writes plain JSON.
	CompressionNone Compression = iota
	// CompressionZstd writes a zstd frame.
	CompressionZstd
	// CompressionLZ4 writes an lz4 frame.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "zstd" or "lz4".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return CompressionNone, fmt.Errorf("%w: unknown compression %q", ErrInvalidOption, s)
	}
}

// CompressionFromPath infers the compression from the file extension:
// ".zst" selects zstd, ".lz4" selects lz4, anything else none.
func CompressionFromPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

type writeOptions struct {
	compression Compression
	codec       codec.Codec
	fs          fs.FileSystem
}

// WriteOption configures WriteFile.
type WriteOption func(*writeOptions)

// WithCompression overrides the compression inferred from the path.
func WithCompression(c Compression) WriteOption {
	return func(o *writeOptions) {
		o.compression = c
	}
}

// WithWriteCodec sets the codec used to encode the document.
func WithWriteCodec(c codec.Codec) WriteOption {
	return func(o *writeOptions) {
		o.codec = c
	}
}

// WithFileSystem sets the file system WriteFile writes through.
func WithFileSystem(fsys fs.FileSystem) WriteOption {
	return func(o *writeOptions) {
		o.fs = fsys
	}
}

// Encode writes the JSON form of the document to w.
func (d *Document) Encode(w io.Writer, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}
	data, err := c.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFile encodes doc and publishes it at path. The document is written
// to path+".tmp", synced and renamed, so readers never observe a partial
// file. Failures are reported as *IOError.
func WriteFile(path string, doc *Document, opts ...WriteOption) error {
	o := writeOptions{
		compression: CompressionFromPath(path),
		codec:       codec.Default,
		fs:          fs.Default,
	}
	for _, fn := range opts {
		fn(&o)
	}

	if err := writeFile(o, path, doc); err != nil {
		return &IOError{Op: "write", Path: path, cause: err}
	}
	return nil
}

func writeFile(o writeOptions, path string, doc *Document) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := o.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	f, err := o.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = o.fs.Remove(tmp)
		}
	}()

	w, err := compressor(f, o.compression)
	if err != nil {
		return err
	}
	if err := doc.Encode(w, o.codec); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return o.fs.Rename(tmp, path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// compressor wraps w; closing the result flushes the frame but leaves w open.
func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: unknown compression %s", ErrInvalidOption, c)
	}
}
