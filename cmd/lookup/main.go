// Command lookup resolves one barcode or product name and prints the lookup
// result as JSON.
//
// Usage:
//
//	lookup 737628064502
//	lookup --classify-only "sugar, gelatin, E471"
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"halal_scanner_backend/internal/aggregator"
	"halal_scanner_backend/internal/lookup/service"
	"halal_scanner_backend/platform/apperr"
	"halal_scanner_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagTimeout      time.Duration
	flagVerbose      bool
	flagStrict       bool
	flagClassifyOnly bool
	flagCompact      bool
)

var rootCmd = &cobra.Command{
	Use:   "lookup <barcode|name>",
	Short: "Look up a product and print its halal verdict",
	Long: `Resolves a barcode or product name against the public product, brand,
country, regulatory, scripture and tradition-text providers, classifies the
ingredients and prints the full result, including the provider ledger, as JSON.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLookup,
}

func init() {
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", 90*time.Second, "overall lookup budget")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log provider calls to stderr")
	rootCmd.Flags().BoolVar(&flagStrict, "strict", false, "exit with status 2 when no product is found")
	rootCmd.Flags().BoolVar(&flagClassifyOnly, "classify-only", false, "treat the argument as a comma separated ingredient list and skip all providers")
	rootCmd.Flags().BoolVar(&flagCompact, "compact", false, "print compact JSON")
}

// errNotFound signals --strict with no product.
type errNotFound struct{ key string }

func (e errNotFound) Error() string { return fmt.Sprintf("no product found for %q", e.key) }

func runLookup(cmd *cobra.Command, args []string) error {
	env := "production"
	if flagVerbose {
		env = "development"
	}
	log := logger.NewWithWriter(env, cmd.ErrOrStderr())
	if !flagVerbose {
		log = logger.Discard()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, flagTimeout)
	defer cancel()
	ctx = context.WithValue(ctx, logger.RequestIDKey, uuid.NewString())

	svc := service.New(aggregator.NewModule(log, nil).Aggregator(), nil, log)

	var out any
	if flagClassifyOnly {
		out = svc.Classify(strings.Split(args[0], ","))
	} else {
		result, err := svc.Run(ctx, args[0])
		if err != nil {
			return err
		}
		if flagStrict && !result.Found() {
			_ = printJSON(cmd, result)
			return errNotFound{key: result.Key}
		}
		out = result
	}

	return printJSON(cmd, out)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if !flagCompact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if _, ok := err.(errNotFound); ok {
			os.Exit(2)
		}
		if apperr.GetKind(err) == apperr.KindValidation {
			os.Exit(64)
		}
		os.Exit(1)
	}
}
