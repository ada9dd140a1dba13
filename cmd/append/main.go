// Command append grows a file by appending decimal counter text until
// the requested number of bytes has been written. It is the write-side
// probe used to push a file across the tier migration threshold.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
)

var (
	path       = flag.String("path", "", "file to append to")
	appendSize = flag.Uint64("append-size", 0, "number of bytes to append")
)

func main() {
	flag.Parse()
	if *path == "" {
		log.Fatal("missing -path")
	}

	f, err := os.OpenFile(*path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		log.Fatal(err)
	}

	var written uint64
	var num uint64
	for written < *appendSize {
		s := strconv.FormatUint(num, 10)
		if rem := *appendSize - written; uint64(len(s)) > rem {
			s = s[:rem]
		}
		if _, err := f.WriteString(s); err != nil {
			log.Fatal(err)
		}
		num++
		written += uint64(len(s))
	}

	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("appended %d bytes to %s\n", written, *path)
}
