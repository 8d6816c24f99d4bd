package ip2loc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack"
)

// Format selects the encoding used by Export.
type Format int

const (
	// FormatJSONLines writes one JSON object per line.
	FormatJSONLines Format = iota
	// FormatMsgpack writes a stream of msgpack maps, one per record.
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSONLines:
		return "jsonl"
	case FormatMsgpack:
		return "msgpack"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses "jsonl" or "msgpack".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "jsonl", "json":
		return FormatJSONLines, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	}
	return 0, fmt.Errorf("ip2loc: unknown export format %q", s)
}

// Exporter encodes records to a writer.
type Exporter struct {
	w   *bufio.Writer
	enc interface{ Encode(v interface{}) error }
}

// NewExporter returns an Exporter writing format to w. Call Flush when done.
func NewExporter(w io.Writer, format Format) (*Exporter, error) {
	bw := bufio.NewWriter(w)
	e := &Exporter{w: bw}
	switch format {
	case FormatJSONLines:
		e.enc = json.NewEncoder(bw)
	case FormatMsgpack:
		e.enc = msgpack.NewEncoder(bw)
	default:
		return nil, fmt.Errorf("ip2loc: unknown export format %s", format)
	}
	return e, nil
}

// Write encodes one record.
func (e *Exporter) Write(rec *Record) error {
	return e.enc.Encode(rec)
}

// Flush writes any buffered data to the underlying writer.
func (e *Exporter) Flush() error {
	return e.w.Flush()
}

// Export writes every record of db to w and returns how many were written.
// ctx is checked between records.
func Export(ctx context.Context, db *DB, w io.Writer, format Format) (int, error) {
	n, err := export(ctx, db, w, format)
	db.logger.LogExport(ctx, format, n, err)
	return n, err
}

func export(ctx context.Context, db *DB, w io.Writer, format Format) (int, error) {
	e, err := NewExporter(w, format)
	if err != nil {
		return 0, err
	}
	n := 0
	for rec, err := range db.All() {
		if err != nil {
			return n, err
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := e.Write(rec); err != nil {
			return n, fmt.Errorf("ip2loc: export record %d: %w", n, err)
		}
		n++
	}
	if err := e.Flush(); err != nil {
		return n, fmt.Errorf("ip2loc: export flush: %w", err)
	}
	return n, nil
}
