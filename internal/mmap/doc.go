// Package mmap maps database files read-only into memory.
//
//	m, err := mmap.Open("IP2LOCATION-DB11.BIN")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// The returned slice must not be written to and must not be used after
// Close. Close is idempotent.
package mmap
