// Command ask is a terminal front end for the completion proxy: it reads a
// question and optional files, composes the prompt and prints the answer.
//
//	ask -q "Write a DuckDB query for this CSV" data.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/BerylCAtieno/exam-helper-api/internal/client"
	"github.com/BerylCAtieno/exam-helper-api/internal/composer"
)

func main() {
	// A missing .env is fine; BACKEND_URL may come from the environment or a flag.
	_ = godotenv.Load()

	question := flag.String("q", "", "question or task")
	backend := flag.String("backend", os.Getenv("BACKEND_URL"), "completion proxy base URL")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall request timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-q question] [-backend url] [file ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *question, *backend, *timeout, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, question, backend string, timeout time.Duration, paths []string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	files, err := composer.ReadFiles(ctx, paths)
	if err != nil {
		return err
	}

	answer, err := client.New(backend, timeout).Ask(ctx, question, files)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
