// Command binlogdump renders a captured binary log stream as text.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Shai-Koffman/binary-logger/decoder"
	"github.com/Shai-Koffman/binary-logger/registry"
)

func main() {
	var (
		flagInput  = flag.String("i", "-", "input `file`; - reads stdin")
		flagFormat = flag.String("format", "text", "output `format`; one of: text, raw")
	)
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	data, err := readInput(*flagInput)
	if err != nil {
		log.Fatal(err)
	}

	dec := decoder.New(data, registry.Global())

	count := 0
	for {
		entry, err := dec.ReadEntry()
		if err != nil {
			if !decoder.IsExhausted(err) {
				log.Printf("binlogdump: stopped after %d entries: %v", count, err)
			}

			break
		}

		count++

		switch *flagFormat {
		case "raw":
			fmt.Printf("%+v\n", entry)
		default:
			fmt.Printf("[%d] %s\n", entry.Timestamp, entry.Render())
		}
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}
