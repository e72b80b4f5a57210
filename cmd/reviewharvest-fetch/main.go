// Command reviewharvest-fetch runs one harvest job and prints the result document on stdout
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"reviewharvest/internal/modkit"
	"reviewharvest/internal/platform/config"
	"reviewharvest/internal/platform/logger"
	"reviewharvest/internal/services/harvest/domain"
	harvestmod "reviewharvest/internal/services/harvest/module"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine, the environment alone is enough
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// run parses args, runs the job and writes the result document to out
// it returns the process exit code
func run(ctx context.Context, args []string, out io.Writer) int {
	l := logger.Get()

	fs := flag.NewFlagSet("reviewharvest-fetch", flag.ContinueOnError)
	var (
		fProduct = fs.String("product_id", "", "JD product id (digits)")
		fPages   = fs.Int("max_pages", domain.DefaultMaxPages, "max pages to request")
		fDays    = fs.Int("days_limit", domain.DefaultDaysLimit, "keep reviews from the last N days, 0 means today only")
		fTask    = fs.String("task_id", "", "task id echoed in the result, random when empty")
		fInfo    = fs.Bool("product_info", false, "also fetch the product page and include it under product")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	taskID := *fTask
	if taskID == "" {
		taskID = uuid.NewString()
	}

	hm := harvestmod.New(modkit.Deps{Log: l, Cfg: config.New()})
	res := hm.Runner().Run(ctx, domain.Request{
		ProductID:   *fProduct,
		MaxPages:    *fPages,
		DaysLimit:   *fDays,
		TaskID:      taskID,
		WithProduct: *fInfo,
	})

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		l.Error().Err(err).Msg("fetch: write result")
		return 1
	}

	if !res.Success {
		l.Error().Str("task_id", taskID).Str("product_id", *fProduct).Str("error", res.Error).Msg("fetch: failed")
		return 1
	}
	l.Info().
		Str("task_id", taskID).
		Int("total", res.TotalComments).
		Int("processed", res.ProcessedComments).
		Msg("fetch: done")
	return 0
}
