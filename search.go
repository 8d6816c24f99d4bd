package ip2loc

// indexEntrySize is the size of one index bucket: a [low, high] row pair.
const indexEntrySize = 8

// searchBounds returns the inclusive row range that may contain addr. With
// useIndex and an index present, the range comes from addr's bucket;
// otherwise it spans the whole table.
func (db *DB) searchBounds(addr Address, useIndex bool) (low, high int64, err error) {
	_, count, indexBase, _, _ := db.header.table(!addr.Is4())
	if !useIndex || indexBase == 0 {
		return 0, int64(count), nil
	}
	pos := uint64(indexBase) + uint64(addr.bucket())*indexEntrySize
	lo, err := db.buf.readUint32("index", pos)
	if err != nil {
		return 0, 0, err
	}
	hi, err := db.buf.readUint32("index", pos+4)
	if err != nil {
		return 0, 0, err
	}
	return int64(lo), int64(hi), nil
}

// findRow binary searches the table of addr's family for the row r with
// start(r) <= addr < start(r+1). found is false when no row matches.
func (db *DB) findRow(addr Address, useIndex bool) (row uint64, found bool, err error) {
	v6 := !addr.Is4()
	_, count, _, _, _ := db.header.table(v6)

	low, high, err := db.searchBounds(addr, useIndex)
	if err != nil {
		return 0, false, err
	}
	if high > int64(count) {
		high = int64(count)
	}
	for low <= high {
		mid := (low + high) / 2
		from, err := db.rowStart(uint64(mid), v6)
		if err != nil {
			return 0, false, err
		}
		if addr.compare(from) < 0 {
			high = mid - 1
			continue
		}
		// The sentinel row at count has no successor and never matches.
		if mid < int64(count) {
			to, err := db.rowStart(uint64(mid)+1, v6)
			if err != nil {
				return 0, false, err
			}
			if addr.compare(to) < 0 {
				return uint64(mid), true, nil
			}
		}
		low = mid + 1
	}
	return 0, false, nil
}
