// Command readprobe reads size bytes at an offset from a file and
// prints them. It is the read-side probe for checking file content
// after a tier migration.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

var (
	path   = flag.String("path", "", "file to read from")
	offset = flag.Int64("offset", 0, "byte offset to start reading at")
	size   = flag.Uint64("size", 0, "number of bytes to read")
)

func main() {
	flag.Parse()
	if *path == "" {
		log.Fatal("missing -path")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	buf := make([]byte, *size)
	n, err := f.ReadAt(buf, *offset)
	if err != nil && err != io.EOF {
		log.Fatal(err)
	}
	fmt.Printf("%s\n", buf[:n])
}
