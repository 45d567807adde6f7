// Package export writes estimator trajectories as CSV, optionally compressed.
//
// The row layout is
//
//	iter,time,alpha_0,...,alpha_{ns-1},beta_0,...,beta_{nt-1}
//
// with one row per averaged iterate. Files ending in ".gz" are gzip
// compressed and files ending in ".zst" are zstd compressed.
package export

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/estimator"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrRaggedTrajectory is returned when the α, β and time series differ in length.
var ErrRaggedTrajectory = errors.New("export: trajectory series differ in length")

// Codec names a file compression.
type Codec int

const (
	Plain Codec = iota
	Gzip
	Zstd
)

// CodecFor picks the codec from the file extension.
func CodecFor(path string) Codec {
	switch filepath.Ext(path) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	default:
		return Plain
	}
}

// WriteCSV writes res to w in the row layout described in the package doc.
func WriteCSV(w io.Writer, res estimator.Result) error {
	n := len(res.Times)
	if len(res.Alpha) != n || len(res.Beta) != n {
		return errors.Wrapf(ErrRaggedTrajectory, "alpha %d, beta %d, times %d",
			len(res.Alpha), len(res.Beta), n)
	}

	cw := csv.NewWriter(w)
	ns, nt := len(res.FinalAlpha()), len(res.FinalBeta())
	if err := cw.Write(header(ns, nt)); err != nil {
		return errors.Wrap(err, "export: header")
	}

	row := make([]string, 2+ns+nt)
	for k := 0; k < n; k++ {
		if len(res.Alpha[k]) != ns || len(res.Beta[k]) != nt {
			return errors.Wrapf(ErrRaggedTrajectory, "iterate %d", k)
		}
		row[0] = strconv.Itoa(k)
		row[1] = formatFloat(res.Times[k])
		for i, v := range res.Alpha[k] {
			row[2+i] = formatFloat(v)
		}
		for j, v := range res.Beta[k] {
			row[2+ns+j] = formatFloat(v)
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "export: row %d", k)
		}
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "export: flush")
}

// WriteTrajectory creates path and writes res into it, compressed according
// to CodecFor(path). An existing file is replaced.
func WriteTrajectory(path string, res estimator.Result) error {
	w, err := Create(path)
	if err != nil {
		return err
	}
	if err = WriteCSV(w, res); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}

// Create opens path for writing through the codec its extension selects.
// Closing the result flushes every layer and closes the file.
func Create(path string) (io.WriteCloser, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "export: create")
	}

	fw := &fileWriter{closers: []io.Closer{file}}
	switch CodecFor(path) {
	case Gzip:
		gz := gzip.NewWriter(file)
		fw.closers = append([]io.Closer{gz}, fw.closers...)
		fw.buffer = bufio.NewWriter(gz)
	case Zstd:
		enc, err := zstd.NewWriter(file)
		if err != nil {
			_ = file.Close()
			return nil, errors.Wrap(err, "export: zstd")
		}
		fw.closers = append([]io.Closer{enc}, fw.closers...)
		fw.buffer = bufio.NewWriter(enc)
	default:
		fw.buffer = bufio.NewWriter(file)
	}

	return fw, nil
}

// Open opens path for reading, decompressing according to its extension.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "export: open")
	}

	switch CodecFor(path) {
	case Gzip:
		gz, err := gzip.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, errors.Wrap(err, "export: gzip")
		}
		return &fileReader{Reader: gz, closers: []io.Closer{gz, file}}, nil
	case Zstd:
		dec, err := zstd.NewReader(file)
		if err != nil {
			_ = file.Close()
			return nil, errors.Wrap(err, "export: zstd")
		}
		return &fileReader{Reader: dec, closers: []io.Closer{closerFunc(dec.Close), file}}, nil
	default:
		return file, nil
	}
}

type fileWriter struct {
	buffer  *bufio.Writer
	closers []io.Closer
}

func (f *fileWriter) Write(p []byte) (int, error) {
	return f.buffer.Write(p)
}

// Close flushes the buffer, then closes the compressor and the file.
func (f *fileWriter) Close() error {
	err := f.buffer.Flush()
	for _, c := range f.closers {
		err = errors.CombineErrors(err, c.Close())
	}

	return err
}

type fileReader struct {
	io.Reader
	closers []io.Closer
}

func (f *fileReader) Close() error {
	var err error
	for _, c := range f.closers {
		err = errors.CombineErrors(err, c.Close())
	}

	return err
}

type closerFunc func()

func (c closerFunc) Close() error {
	c()
	return nil
}

func header(ns, nt int) []string {
	h := make([]string, 0, 2+ns+nt)
	h = append(h, "iter", "time")
	for i := 0; i < ns; i++ {
		h = append(h, "alpha_"+strconv.Itoa(i))
	}
	for j := 0; j < nt; j++ {
		h = append(h, "beta_"+strconv.Itoa(j))
	}

	return h
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
