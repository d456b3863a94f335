package fsutil

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies the container a file is stored in.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

//nolint:gochecknoglobals // Read-only lookup table.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// compressedSuffixes maps archive file suffixes to their compression.
//
//nolint:gochecknoglobals // Read-only lookup table.
var compressedSuffixes = map[string]Compression{
	".gz":  CompressionGzip,
	".zst": CompressionZstd,
}

// DetectCompression sniffs the leading magic bytes of data.
// A Quill file never starts with either magic, so there is no ambiguity.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// Decompress expands data stored with c. The output is capped at MaxFileSize.
func Decompress(data []byte, c Compression) ([]byte, error) {
	var (
		r   io.Reader
		err error
	)

	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		var zr *gzip.Reader
		zr, err = gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		r = zr
	case CompressionZstd:
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}

	out, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c, err)
	}
	if len(out) > MaxFileSize {
		return nil, fmt.Errorf("%w: decompressed %s content exceeds %d bytes", ErrTooLarge, c, MaxFileSize)
	}
	return out, nil
}

// TrimCompressionSuffix removes a trailing ".gz" or ".zst" from name and
// reports which compression the suffix named.
func TrimCompressionSuffix(name string) (string, Compression) {
	lower := strings.ToLower(name)
	for suffix, c := range compressedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return name[:len(name)-len(suffix)], c
		}
	}
	return name, CompressionNone
}
