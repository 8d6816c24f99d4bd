package main

import (
	"fmt"

	"github.com/proipinfo/ip2loc"
)

func main() {
	path := "path/to/IP2LOCATION-LITE-DB11.BIN"
	db, err := ip2loc.Open(path)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	for _, addr := range []string{"8.8.8.8", "2001:4860:4860::8888", "::ffff:8.8.4.4"} {
		rec, err := db.Lookup(addr)
		if err != nil {
			panic(err)
		}
		if rec == nil {
			fmt.Println(addr, "not found")
			continue
		}
		city, _ := rec.Get(ip2loc.City)
		country, _ := rec.Get(ip2loc.CountryShort)
		fmt.Println(rec.IP, country, city)
	}
}
