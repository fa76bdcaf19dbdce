// Command geocode resolves free-text addresses and prints the results as
// JSON, one object per line. Addresses come from the command line, or from
// stdin when no arguments are given.
//
// Usage:
//
//	go run ./cmd/geocode "Berlin, Germany" "Austin, TX"
//	printf "Osaka, Japan\n" | go run ./cmd/geocode
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/shipment-tracking-etl/internal/adapter/nominatim"
	"github.com/couchcryptid/shipment-tracking-etl/internal/observability"
	"github.com/couchcryptid/shipment-tracking-etl/internal/resolver"
)

type result struct {
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayText string  `json:"display_text"`
}

func main() {
	baseURL := flag.String("base-url", "https://nominatim.openstreetmap.org", "geocoding API base URL")
	userAgent := flag.String("user-agent", "shipment-tracking-etl/1.0 (cli)", "User-Agent sent to the geocoding API")
	timeout := flag.Duration("timeout", 5*time.Second, "per-request timeout")
	verbose := flag.Bool("v", false, "log resolution details to stderr")
	flag.Parse()

	addresses := flag.Args()
	if len(addresses) == 0 {
		var err error
		addresses, err = readLines(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read stdin: %v\n", err)
			os.Exit(1)
		}
	}
	if len(addresses) == 0 {
		fmt.Fprintln(os.Stderr, "no addresses given")
		os.Exit(1)
	}

	logOut := io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := observability.NewMetrics()

	client := nominatim.NewClient(*baseURL, *userAgent, *timeout, logger, metrics)
	res := resolver.New(client, logger, metrics)

	resolved := res.ResolveMany(context.Background(), addresses)

	enc := json.NewEncoder(os.Stdout)
	for i, ra := range resolved {
		out := result{
			Address:     addresses[i],
			Latitude:    ra.Coordinate.Lat,
			Longitude:   ra.Coordinate.Lon,
			DisplayText: ra.DisplayText,
		}
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
			os.Exit(1)
		}
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
