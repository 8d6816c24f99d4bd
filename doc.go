// Package ip2loc reads IP2Location-style binary geolocation databases
// (".BIN" files, database types DB1 to DB25).
//
// A database is a little-endian header followed by one fixed-stride row table
// per address family, an optional bucket index over the top 16 bits of the
// address, and a pool of length-prefixed ISO-8859-1 strings. The database
// type selects which columns a row carries.
//
// Basic usage:
//
//	db, err := ip2loc.Open("IP2LOCATION-LITE-DB11.BIN")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	rec, err := db.Lookup("8.8.8.8")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if rec == nil {
//	    fmt.Println("not found")
//	    return
//	}
//	fmt.Println(*rec.CountryShort, *rec.City)
//
// Record fields the database type does not carry are nil. Lookups never
// write to the database, so a *DB may be shared between goroutines.
package ip2loc
