// Command extract-emails pulls organization addresses out of pasted chat
// data and writes them as an import sheet.
//
// Usage:
//
//	extract-emails [-domain gauntletai.com] [input-file] [output-file]
//
// Without an input file the text is read from stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/welldanyogia/forwarding-admin-backend/internal/importer"
	"github.com/welldanyogia/forwarding-admin-backend/internal/logger"
)

const defaultOutput = "org-emails.csv"

func main() {
	domain := flag.String("domain", "gauntletai.com", "organization domain to keep")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	slog.SetDefault(logger.New(os.Stderr, *level, "text"))

	in := io.Reader(os.Stdin)
	if path := flag.Arg(0); path != "" {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("failed to open input", slog.String("path", path), slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		in = f
	} else {
		fmt.Fprintln(os.Stderr, "Paste the data, then press Ctrl-D:")
	}

	output := flag.Arg(1)
	if output == "" {
		output = defaultOutput
	}

	emails, err := extract(in, *domain)
	if err != nil {
		slog.Error("failed to read input", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(emails) == 0 {
		slog.Warn("no organization addresses found", slog.String("domain", *domain))
		return
	}

	if err := os.WriteFile(output, []byte(importer.ExtractionCSV(emails)), 0o644); err != nil {
		slog.Error("failed to write output", slog.String("path", output), slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("addresses extracted", slog.Int("count", len(emails)), slog.String("output", output))
	for _, e := range emails {
		fmt.Println(e)
	}
}

// extract reads all of r and returns the distinct addresses belonging to domain
func extract(r io.Reader, domain string) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return importer.FilterOrgEmails(importer.ExtractEmails(string(data)), domain), nil
}
