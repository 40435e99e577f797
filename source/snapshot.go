package source

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

type snapshotReader struct {
	d *zstd.Decoder
	f *os.File
}

func (r *snapshotReader) Read(p []byte) (int, error) {
	return r.d.Read(p)
}

func (r *snapshotReader) Close() error {
	r.d.Close()
	return r.f.Close()
}

// WriteSnapshot zstd compresses the page in r to w.
func WriteSnapshot(w io.Writer, r io.Reader) (err error) {
	e, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, e.Close())
	}()
	_, err = io.Copy(e, r)
	return
}

// SaveSnapshot writes a compressed copy of page to path.
func SaveSnapshot(path string, page []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return WriteSnapshot(f, bytes.NewReader(page))
}
