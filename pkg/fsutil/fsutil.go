// Package fsutil provides file system helpers for qstripper.
// It reads source documents, transparently decompressing archived copies, and
// writes exports atomically with optional sidecar backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates a file, or its decompressed content, exceeds MaxFileSize.
	ErrTooLarge = errors.New("file too large")
)

// MaxFileSize bounds how much ReadFile will hold in memory for a single file,
// after decompression. Quill documents are small; anything larger is not one.
const MaxFileSize = 64 << 20

// FileInfo captures the state of a source file at the time it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the on-disk size in bytes, before decompression.
	Size int64

	// Compression is the container format the content was stored in.
	Compression Compression

	// Hash is the SHA-256 hash of the decompressed content.
	Hash [32]byte
}

// ReadFile reads a whole file into memory and returns its content along with
// metadata. Gzip and zstd files are detected by their magic bytes and returned
// decompressed.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if stat.Size() > MaxFileSize {
		return nil, nil, fmt.Errorf("%w: %s: %d bytes", ErrTooLarge, path, stat.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	compression := DetectCompression(content)
	if compression != CompressionNone {
		content, err = Decompress(content, compression)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	info := &FileInfo{
		Path:        path,
		Mode:        stat.Mode(),
		ModTime:     stat.ModTime(),
		Size:        stat.Size(),
		Compression: compression,
		Hash:        sha256.Sum256(content),
	}

	return content, info, nil
}
