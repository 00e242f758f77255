package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/docscanhq/docscan/internal/extract"
	"github.com/docscanhq/docscan/internal/schema"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	fs := ff.NewFlagSet("docscan-extract")
	var (
		docType = fs.StringLong("type", "general", "document type of the input")
		tables  = fs.BoolLong("tables", "emit structured table data instead of field extraction")
		pretty  = fs.BoolLong("pretty", "indent the JSON output")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("DOCSCAN")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\nerror: %v\n", ffhelp.Flags(fs), err)
		os.Exit(1)
	}

	// One positional file path, or "-" / nothing for stdin.
	var body []byte
	var err error
	args := fs.GetArgs()
	switch {
	case len(args) == 0 || args[0] == "-":
		body, err = io.ReadAll(os.Stdin)
	case len(args) == 1:
		body, err = os.ReadFile(args[0])
	default:
		fmt.Fprintf(os.Stderr, "%s\nerror: expected at most one input file\n", ffhelp.Flags(fs))
		os.Exit(2)
	}
	if err != nil {
		logger.Error("read input", "error", err)
		os.Exit(1)
	}

	text := extract.Normalize(string(body))

	start := time.Now()
	var out any
	if *tables {
		out = extract.ExtractStructuredData(text, *docType, nil)
	} else {
		result := extract.SmartExtract(text, *docType)
		raw, merr := json.Marshal(result)
		if merr != nil {
			logger.Error("marshal result", "error", merr)
			os.Exit(1)
		}
		if verr := schema.ValidateResult(raw); verr != nil {
			logger.Error("result failed schema validation", "error", verr)
			os.Exit(1)
		}
		out = result
	}
	dur := time.Since(start)

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}

	logger.Info("extract.ok", "type", *docType, "bytes", len(body), "duration_ms", dur.Milliseconds())
}
