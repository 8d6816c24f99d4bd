package ip2loc

import "iter"

// All returns every row of the database as records: the IPv4 table rows
// 0 through IPv4Count, then the IPv6 table rows 0 through IPv6Count. Each
// record's IP is the first address of its range.
//
// The sequence can be ranged over any number of times, concurrently. A
// decode failure is yielded once as a non-nil error and ends the sequence,
// as does closing the database mid-iteration (ErrClosed).
func (db *DB) All() iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		if db.closed.Load() {
			yield(nil, ErrClosed)
			return
		}
		for _, v6 := range []bool{false, true} {
			_, count, _, _, _ := db.header.table(v6)
			for row := uint64(0); row <= uint64(count); row++ {
				if db.closed.Load() {
					yield(nil, ErrClosed)
					return
				}
				rec, err := db.decodeRow(row, v6)
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(rec, nil) {
					return
				}
			}
		}
	}
}

// Count returns the number of records All yields.
func (db *DB) Count() uint64 {
	return uint64(db.header.IPv4Count) + uint64(db.header.IPv6Count) + 2
}

func (db *DB) decodeRow(row uint64, v6 bool) (*Record, error) {
	start, err := db.rowStart(row, v6)
	if err != nil {
		return nil, err
	}
	return db.decodeRecord(row, v6, start.String())
}
