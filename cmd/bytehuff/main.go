// Command bytehuff compresses and decompresses files with a Huffman code.
//
//	bytehuff -in notes.txt -out notes.bhf
//	bytehuff -d -in notes.bhf -out notes.txt
//
// Input defaults to stdin and output to stdout.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/chronos-tachyon/bytehuff"
)

var (
	flDecompress = flag.Bool("d", false, "decompress instead of compress")
	flIn         = flag.String("in", "-", "input file, - for stdin")
	flOut        = flag.String("out", "-", "output file, - for stdout")
	flWorkers    = flag.Int("workers", 1, "goroutines used to count symbol frequencies")
	flCodes      = flag.Bool("codes", false, "dump the code table to stderr")
	flVerbose    = flag.Bool("v", false, "debug logging, including every code assignment")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *flVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	in, err := readInput(*flIn)
	if err != nil {
		log.Fatal(err)
	}

	var out []byte
	if *flDecompress {
		out, err = decompress(in)
	} else {
		out, err = compress(in)
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := writeOutput(*flOut, out); err != nil {
		log.Fatal(err)
	}
}

func compress(in []byte) ([]byte, error) {
	enc, err := bytehuff.Encode(in, bytehuff.WithWorkers(*flWorkers))
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	dumpCodes(enc.Codes)

	out, err := enc.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	slog.Info("compressed",
		"in_bytes", len(in),
		"symbols", enc.Codes.Len(),
		"payload_bits", enc.Bits.Len,
		"out_bytes", len(out),
		"ratio", float64(len(out))/float64(len(in)))
	return out, nil
}

func decompress(in []byte) ([]byte, error) {
	var enc bytehuff.Encoded
	if _, err := enc.ReadFrom(bytes.NewReader(in)); err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	dumpCodes(enc.Codes)

	out, err := enc.Decode()
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	slog.Info("decompressed", "in_bytes", len(in), "payload_bits", enc.Bits.Len, "out_bytes", len(out))
	return out, nil
}

func dumpCodes(ct *bytehuff.CodeTable) {
	if *flCodes {
		_, _ = ct.Dump(os.Stderr)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
