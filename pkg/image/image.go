// Package image reads intcode program images from disk.
//
// Images are plain comma-separated text, optionally compressed. The
// compression is chosen from the file suffix:
//   - .zst: zstd
//   - .gz:  gzip
//   - anything else: plain text
package image

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/fortiblox/intcode/internal/types"
	"github.com/fortiblox/intcode/pkg/intcode"
)

var (
	// ErrImageNotFound is returned when the image file doesn't exist.
	ErrImageNotFound = errors.New("image not found")

	// ErrDecompressionFailed is returned when the compressed stream is corrupt.
	ErrDecompressionFailed = errors.New("decompression failed")
)

// Compression identifies how an image file is encoded.
type Compression int

// Compression formats.
const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionGzip
)

func (c Compression) String() string {
	switch c {
	case CompressionZstd:
		return "zstd"
	case CompressionGzip:
		return "gzip"
	default:
		return "none"
	}
}

// CompressionFor returns the compression implied by a file name.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		return CompressionZstd
	case ".gz":
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Image is a parsed program image.
type Image struct {
	// Path is the file the image was read from, if any.
	Path string

	// Compression is the encoding the image was stored in.
	Compression Compression

	// Cells is the initial memory, cell 0 first.
	Cells []int64

	// Digest fingerprints Cells.
	Digest types.Digest
}

// Open reads and parses the image at path.
func Open(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, err := Decode(file, CompressionFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	img.Path = path
	return img, nil
}

// Decode parses an image stream encoded with c.
func Decode(r io.Reader, c Compression) (*Image, error) {
	var reader io.Reader = r

	switch c {
	case CompressionZstd:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
		}
		defer decoder.Close()
		reader = decoder

	case CompressionGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
		}
		defer gz.Close()
		reader = gz
	}

	cells, err := intcode.Parse(reader)
	if err != nil {
		if errors.Is(err, intcode.ErrMalformedImage) || errors.Is(err, intcode.ErrEmptyImage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
	}

	return &Image{
		Compression: c,
		Cells:       cells,
		Digest:      types.ComputeDigest(cells),
	}, nil
}

// Encode writes cells as an image encoded with c.
func Encode(w io.Writer, cells []int64, c Compression) error {
	var (
		out    io.Writer = w
		closer io.Closer
	)

	switch c {
	case CompressionZstd:
		encoder, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("init zstd writer: %w", err)
		}
		out, closer = encoder, encoder

	case CompressionGzip:
		gz := gzip.NewWriter(w)
		out, closer = gz, gz
	}

	buf := make([]byte, 0, 20*len(cells)+1)
	for i, x := range cells {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, x, 10)
	}
	buf = append(buf, '\n')

	if _, err := out.Write(buf); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("flush image: %w", err)
		}
	}
	return nil
}

// WriteFile writes cells to path, compressed according to its suffix.
func WriteFile(path string, cells []int64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	if err := Encode(file, cells, CompressionFor(path)); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Program creates a fresh machine from the image.
func (img *Image) Program(opts intcode.Opts) *intcode.Program {
	return intcode.New(img.Cells, opts)
}

// ID returns the base58 digest, a stable name for the image contents.
func (img *Image) ID() string {
	return img.Digest.String()
}
