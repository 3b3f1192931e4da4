// Command dashboard fetches the production datasets for one report date,
// reconciles them into the item view and prints or serves the result.
//
// Usage:
//
//	dashboard run --date 2025-01-15 [--dataset item] [-o table|json|yaml] [--view table|chart]
//	dashboard serve [--addr :8080] [--date 2025-01-15]
//	dashboard import --csv-dir ./data --db dashboard.db
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
