package main

// Upload a résumé to a running service and print the parse result:
//   go run ./cmd/parse -url http://localhost:8000 path/to/resume.pdf

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"resume-parser/internal/parserclient"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8000", "service base URL")
	timeout := flag.Duration("timeout", 60*time.Second, "request timeout")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: parse [-url URL] FILE")
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	client, err := parserclient.New(*baseURL, *timeout)
	if err != nil {
		log.Fatalf("client: %v", err)
	}
	res, err := client.Parse(context.Background(), filepath.Base(path), f)
	if err != nil {
		log.Fatalf("%v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
