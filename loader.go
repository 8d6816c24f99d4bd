package ip2loc

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	"github.com/proipinfo/ip2loc/internal/mmap"
)

type container int

const (
	containerNone container = iota
	containerGzip
	containerZstd
	containerZip
	containerXZ
	containerLZ4
)

var magics = []struct {
	kind  container
	magic []byte
}{
	{containerGzip, []byte{0x1f, 0x8b}},
	{containerZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{containerZip, []byte{'P', 'K', 0x03, 0x04}},
	{containerXZ, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{containerLZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
}

const magicLen = 6

func (c container) String() string {
	switch c {
	case containerGzip:
		return "gzip"
	case containerZstd:
		return "zstd"
	case containerZip:
		return "zip"
	case containerXZ:
		return "xz"
	case containerLZ4:
		return "lz4"
	}
	return "raw"
}

func detectContainer(head []byte) container {
	for _, m := range magics {
		if bytes.HasPrefix(head, m.magic) {
			return m.kind
		}
	}
	return containerNone
}

// Open loads the database file at name.
//
// gzip, zstd, zip, xz and lz4 compressed files are recognised by their magic
// bytes and decompressed into memory. Uncompressed files are read into
// memory, or mapped read-only when WithMmap is given.
func Open(name string, opts ...Option) (*DB, error) {
	o := applyOptions(opts)
	db, err := openFile(name, o)
	size := 0
	if db != nil {
		size = db.Size()
	}
	o.logger.LogOpen(context.Background(), name, size, headerOf(db), err)
	if err != nil {
		return nil, fmt.Errorf("ip2loc: open %q: %w", name, err)
	}
	return db, nil
}

// OpenReader loads a database from r, decompressing it if needed.
func OpenReader(r io.Reader, opts ...Option) (*DB, error) {
	o := applyOptions(opts)
	buf, err := readDatabase(r)
	if err != nil {
		o.logger.LogOpen(context.Background(), "reader", 0, nil, err)
		return nil, err
	}
	db, err := newDB(buf, o, nil)
	o.logger.LogOpen(context.Background(), "reader", len(buf), headerOf(db), err)
	return db, err
}

func openFile(name string, o options) (*DB, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, magicLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	kind := detectContainer(head[:n])

	switch {
	case kind == containerZip:
		fi, err := f.Stat()
		if err != nil {
			return nil, err
		}
		buf, err := unzip(f, fi.Size())
		if err != nil {
			return nil, err
		}
		return newDB(buf, o, nil)
	case kind != containerNone:
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		buf, err := decompress(kind, f)
		if err != nil {
			return nil, err
		}
		return newDB(buf, o, nil)
	case o.mmap:
		m, err := mmap.Open(name)
		if err != nil {
			return nil, err
		}
		db, err := newDB(m.Bytes(), o, m.Close)
		if err != nil {
			m.Close()
			return nil, err
		}
		return db, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return newDB(buf, o, nil)
}

func readDatabase(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(magicLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	switch kind := detectContainer(head); kind {
	case containerNone:
		return io.ReadAll(br)
	case containerZip:
		raw, err := io.ReadAll(br)
		if err != nil {
			return nil, err
		}
		return unzip(bytes.NewReader(raw), int64(len(raw)))
	default:
		return decompress(kind, br)
	}
}

func decompress(kind container, r io.Reader) ([]byte, error) {
	var (
		src io.Reader
		err error
	)
	switch kind {
	case containerGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		src = zr
	case containerZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		src = zr
	case containerXZ:
		src, err = xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("xz: %w", err)
		}
	case containerLZ4:
		src = lz4.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported container %s", kind)
	}
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return buf, nil
}

// unzip extracts the first *.BIN entry of the archive, or the first regular
// file when there is none.
func unzip(r io.ReaderAt, size int64) ([]byte, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("zip: %w", err)
	}
	var pick *zip.File
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		if strings.EqualFold(path.Ext(zf.Name), ".bin") {
			pick = zf
			break
		}
		if pick == nil {
			pick = zf
		}
	}
	if pick == nil {
		return nil, errors.New("zip: archive has no files")
	}
	rc, err := pick.Open()
	if err != nil {
		return nil, fmt.Errorf("zip: %s: %w", pick.Name, err)
	}
	defer rc.Close()
	buf, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("zip: %s: %w", pick.Name, err)
	}
	return buf, nil
}
