//go:build ignore

// generate writes file1.parquet, the parquet twin of file1.csv, for trying
// mixed-format joins by hand:
//
//	go run testdata/generate.go
//	csvjoin -i testdata/file0.csv -i testdata/file1.parquet --join "0:city 1:city" --out-col 1:bar
package main

import (
	"log"
	"os"

	"github.com/segmentio/parquet-go"
)

type City struct {
	City string `parquet:"city"`
	ID   int64  `parquet:"id"`
	Code int64  `parquet:"code"`
	Bar  int64  `parquet:"bar"`
}

func main() {
	cities := []City{
		{City: "Austin", ID: 1, Code: 11, Bar: 100},
		{City: "Berkeley", ID: 2, Code: 22, Bar: 200},
		{City: "Charleston", ID: 3, Code: 33, Bar: 300},
		{City: "Duke", ID: 4, Code: 44, Bar: 400},
	}

	file, err := os.Create("testdata/file1.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[City](file)
	defer writer.Close()

	if _, err := writer.Write(cities); err != nil {
		log.Fatal(err)
	}

	log.Println("Generated testdata/file1.parquet with 4 cities")
}
