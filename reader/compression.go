package reader

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// CompressionType represents the compression format of an input
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
	CompressionZstd
	CompressionLZ4
	CompressionBrotli
)

// String returns the string representation of CompressionType
func (ct CompressionType) String() string {
	switch ct {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	case CompressionBrotli:
		return "brotli"
	default:
		return "none"
	}
}

// Magic byte signatures for compression detection
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic   = []byte{0x04, 0x22, 0x4d, 0x18}
)

// compressionExtensions maps file suffixes to the format they imply. Brotli
// has no magic number, so its extension is the only signal.
var compressionExtensions = map[string]CompressionType{
	".gz":   CompressionGzip,
	".gzip": CompressionGzip,
	".bz2":  CompressionBzip2,
	".xz":   CompressionXZ,
	".zst":  CompressionZstd,
	".zstd": CompressionZstd,
	".lz4":  CompressionLZ4,
	".br":   CompressionBrotli,
}

// DetectCompression detects the compression of the buffered stream by
// magic bytes, falling back to the file extension for brotli.
func DetectCompression(br *bufio.Reader, name string) CompressionType {
	// XZ has the longest magic (6 bytes)
	header, _ := br.Peek(6)

	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(header, bzip2Magic):
		return CompressionBzip2
	case bytes.HasPrefix(header, xzMagic):
		return CompressionXZ
	case bytes.HasPrefix(header, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(header, lz4Magic):
		return CompressionLZ4
	}

	if compressionExtensions[strings.ToLower(filepath.Ext(name))] == CompressionBrotli {
		return CompressionBrotli
	}
	return CompressionNone
}

// StripCompressionExt removes a trailing compression suffix so the inner
// format can be detected: "cities.csv.gz" becomes "cities.csv".
func StripCompressionExt(name string) string {
	ext := filepath.Ext(name)
	if _, ok := compressionExtensions[strings.ToLower(ext)]; ok {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

// Decompress wraps r with a reader for its detected compression. The
// returned close function releases decoder resources; it does not close r.
func Decompress(r io.Reader, name string) (io.Reader, CompressionType, func(), error) {
	br := bufio.NewReader(r)
	ct := DetectCompression(br, name)
	noop := func() {}

	switch ct {
	case CompressionNone:
		return br, ct, noop, nil

	case CompressionGzip:
		gzReader, err := gzip.NewReader(br)
		if err != nil {
			return nil, ct, noop, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzReader, ct, func() { _ = gzReader.Close() }, nil

	case CompressionBzip2:
		return bzip2.NewReader(br), ct, noop, nil

	case CompressionXZ:
		xzReader, err := xz.NewReader(br)
		if err != nil {
			return nil, ct, noop, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzReader, ct, noop, nil

	case CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, ct, noop, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return zr, ct, zr.Close, nil

	case CompressionLZ4:
		return lz4.NewReader(br), ct, noop, nil

	case CompressionBrotli:
		return brotli.NewReader(br), ct, noop, nil

	default:
		return nil, ct, noop, fmt.Errorf("unsupported compression type: %v", ct)
	}
}
