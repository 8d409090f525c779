// Command substr searches text for every occurrence of a pattern and
// compares the brute force and rolling hash matchers.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(execute(ctx, os.Args[1:]))
}
