package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/trhprace/intelligence/internal/domain"
	"github.com/trhprace/intelligence/internal/logger"
	"github.com/trhprace/intelligence/internal/processor"
)

// scannerBufferSize accommodates adverts with very long descriptions on a
// single NDJSON line.
const scannerBufferSize = 1 << 20

func ingestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest [file]",
		Short: "Ingest raw signals from an NDJSON file or stdin",
		Long: `Reads one RawSignal JSON object per line and runs each batch through
enrichment into the store. Pass "-" or no argument to read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runIngest(cmd.Context(), path)
		},
	}
}

func runIngest(ctx context.Context, path string) error {
	a, err := newApp(cfgFile, debug)
	if err != nil {
		return err
	}
	defer a.Close()

	var in io.Reader = os.Stdin
	if path != "-" {
		f, openErr := os.Open(path)
		if openErr != nil {
			return fmt.Errorf("open input: %w", openErr)
		}
		defer func() {
			_ = f.Close()
		}()
		in = f
	}

	total := processor.Summary{}
	malformed := 0
	batch := make([]domain.RawSignal, 0, a.cfg.Service.BatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		summary := a.pipeline.ProcessBatch(ctx, batch)
		total.Received += summary.Received
		total.Parsed += summary.Parsed
		total.ClassifiedOther += summary.ClassifiedOther
		total.StoreErrors += summary.StoreErrors
		total.Created += summary.Created
		total.Refreshed += summary.Refreshed
		total.Updated += summary.Updated
		total.Reposts += summary.Reposts
		batch = batch[:0]
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, scannerBufferSize), scannerBufferSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var raw domain.RawSignal
		if err = json.Unmarshal(line, &raw); err != nil {
			malformed++
			a.log.Warn("skipping malformed line", logger.Error(err))
			continue
		}

		batch = append(batch, raw)
		if len(batch) >= a.cfg.Service.BatchSize {
			flush()
		}
	}
	if err = scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	flush()

	a.log.Info("ingest run finished",
		logger.Int("received", total.Received),
		logger.Int("parsed", total.Parsed),
		logger.Int("classified_other", total.ClassifiedOther),
		logger.Int("store_errors", total.StoreErrors),
		logger.Int("malformed", malformed))

	out, err := json.MarshalIndent(total, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
