package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how a report file is encoded.
type Compression uint8

const (
	// CompressionNone writes plain JSON.
	CompressionNone Compression = iota
	// CompressionLZ4 writes an LZ4 frame.
	CompressionLZ4
	// CompressionZSTD writes a zstd frame.
	CompressionZSTD
)

// CompressionForPath picks the compression from the file extension:
// ".lz4" and ".zst" are compressed, everything else is plain.
func CompressionForPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return CompressionLZ4
	case ".zst", ".zstd":
		return CompressionZSTD
	default:
		return CompressionNone
	}
}

// Report is the persisted result of a benchmark run.
type Report struct {
	CreatedAt  time.Time `json:"created_at"`
	GOOS       string    `json:"goos"`
	GOARCH     string    `json:"goarch"`
	GOMAXPROCS int       `json:"gomaxprocs"`
	Prefetch   bool      `json:"prefetch"`
	Iterations int       `json:"iterations"`
	Rows       []Row     `json:"rows"`
}

// NewReport fills in the host description for rows.
func NewReport(rows []Row, iterations int, prefetch bool) Report {
	return Report{
		CreatedAt:  time.Now().UTC(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Prefetch:   prefetch,
		Iterations: iterations,
		Rows:       rows,
	}
}

// WriteReport writes r as JSON to path, compressed according to
// CompressionForPath.
func WriteReport(path string, r Report) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is operator supplied
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return EncodeReport(f, CompressionForPath(path), r)
}

// EncodeReport writes r as JSON to w using compression c.
func EncodeReport(w io.Writer, c Compression, r Report) error {
	var (
		out    io.Writer = w
		finish func() error
	)

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		out, finish = zw, zw.Close
	case CompressionZSTD:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		out, finish = zw, zw.Close
	default:
		return fmt.Errorf("bench: unknown compression %d", c)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		if finish != nil {
			_ = finish()
		}
		return err
	}

	if finish != nil {
		return finish()
	}
	return nil
}

// DecodeReport reads a report written by EncodeReport.
func DecodeReport(r io.Reader, c Compression) (Report, error) {
	var in io.Reader = r

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		in = lz4.NewReader(r)
	case CompressionZSTD:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return Report{}, err
		}
		defer zr.Close()
		in = zr
	default:
		return Report{}, fmt.Errorf("bench: unknown compression %d", c)
	}

	var rep Report
	if err := json.NewDecoder(in).Decode(&rep); err != nil {
		return Report{}, err
	}
	return rep, nil
}

// ReadReport reads a report file written by WriteReport.
func ReadReport(path string) (Report, error) {
	f, err := os.Open(path) //nolint:gosec // path is operator supplied
	if err != nil {
		return Report{}, err
	}
	defer f.Close()

	return DecodeReport(f, CompressionForPath(path))
}
