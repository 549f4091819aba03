// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	docbundle "github.com/nicholasgasior/docbundle-go"
)

var version = "dev"

func main() {
	var (
		outputFormat string
		outputRoot   string
		engineBinary string
		timeout      time.Duration
		concurrency  int
		listFormats  bool
		showVersion  bool
		verbose      bool
	)

	flag.StringVar(&outputFormat, "t", "gfm", "Output format (canonical tag or alias, e.g. word, html, pdf)")
	flag.StringVar(&outputFormat, "to", "gfm", "Output format (canonical tag or alias, e.g. word, html, pdf)")
	flag.StringVar(&outputRoot, "o", "output", "Directory for session output")
	flag.StringVar(&outputRoot, "output", "output", "Directory for session output")
	flag.StringVar(&engineBinary, "engine", "pandoc", "Conversion engine binary")
	flag.DurationVar(&timeout, "timeout", 60*time.Second, "Per-file conversion timeout")
	flag.IntVar(&concurrency, "j", 4, "Concurrent conversions per batch")
	flag.BoolVar(&listFormats, "list-formats", false, "List supported formats and exit")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docbundle [flags] file...\n\n")
		fmt.Fprintf(os.Stderr, "Convert documents to a requested format and bundle the output.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("docbundle %s\n", version)
		os.Exit(0)
	}

	if listFormats {
		fmt.Println("Input formats:")
		for _, f := range docbundle.InputFormats() {
			fmt.Printf("  %s\n", f)
		}
		fmt.Println("Output formats:")
		for _, f := range docbundle.OutputFormats() {
			fmt.Printf("  %s\n", f)
		}
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var files []docbundle.InputFile
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		files = append(files, docbundle.InputFile{Name: path, Data: data})
	}

	p := docbundle.New(
		docbundle.WithEngine(&docbundle.PandocEngine{Binary: engineBinary, Log: log}),
		docbundle.WithOutputRoot(outputRoot),
		docbundle.WithTimeout(timeout),
		docbundle.WithConcurrency(concurrency),
		docbundle.WithLogger(log),
	)
	defer p.Close()

	result, err := p.ConvertBatch(context.Background(), files, outputFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, name := range result.Converted {
		fmt.Println(name)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(os.Stderr, "failed: %s\n", f)
	}
	fmt.Fprintf(os.Stderr, "Output in %s\n", result.ConvertedDir)
}
