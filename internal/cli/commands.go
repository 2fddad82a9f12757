// Package cli holds the propctl commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"propman-backend/internal/cache"
	"propman-backend/internal/config"
	"propman-backend/internal/database"
	"propman-backend/internal/export"
	"propman-backend/internal/finance"
	"propman-backend/internal/portfolio"
	"propman-backend/internal/store"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// Opener connects to the database and returns the function that releases it.
type Opener func(cfg *config.Config) (*gorm.DB, func(), error)

type env struct {
	open Opener
}

func (e *env) connect(ctx context.Context) (*gorm.DB, *portfolio.Service, func(), error) {
	cfg, err := config.LoadTool()
	if err != nil {
		return nil, nil, nil, err
	}
	db, release, err := e.open(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	c := cache.Connect(ctx, cfg.RedisAddr)
	svc := portfolio.New(store.New(db), c,
		portfolio.WithCacheTTL(cfg.DashboardCacheTTL),
		portfolio.WithLocale(cfg.LabelLocale),
	)

	closeFn := func() {
		_ = c.Close()
		release()
	}
	return db, svc, closeFn, nil
}

// RootCmd builds the propctl command tree.
func RootCmd(open Opener) *cobra.Command {
	e := &env{open: open}
	root := &cobra.Command{
		Use:           "propctl",
		Short:         "Property management operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		e.migrateCmd(),
		e.seedCmd(),
		e.lateFeesCmd(),
		e.exportCmd(),
	)
	return root
}

func (e *env) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, closeFn, err := e.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
			return nil
		},
	}
}

func (e *env) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a sample portfolio into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, svc, closeFn, err := e.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := database.Migrate(db); err != nil {
				return err
			}
			res, err := svc.Seed(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func (e *env) lateFeesCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "late-fees",
		Short: "Store the current late fee on every overdue payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, closeFn, err := e.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			changes, err := svc.ApplyLateFees(cmd.Context(), dryRun)
			if err != nil {
				return err
			}
			if changes == nil {
				changes = []portfolio.LateFeeChange{}
			}
			return printJSON(cmd.OutOrStdout(), changes)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the changes without writing them")
	return cmd
}

func (e *env) exportCmd() *cobra.Command {
	var (
		out    string
		period string
	)
	cmd := &cobra.Command{
		Use:       "export payments|financials",
		Short:     "Write a spreadsheet export",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"payments", "financials"},
		RunE: func(cmd *cobra.Command, args []string) error {
			months, ok := finance.PeriodMonths(period)
			if !ok {
				return fmt.Errorf("--period must be 3months, 6months or 12months")
			}

			_, svc, closeFn, err := e.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			var save func(string) error
			switch args[0] {
			case "payments":
				sn, err := svc.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				f, err := export.Payments(sn.Payments, sn.Directory())
				if err != nil {
					return err
				}
				defer f.Close()
				save = func(path string) error { return f.SaveAs(path) }
			case "financials":
				rows, err := svc.Financials(cmd.Context(), months)
				if err != nil {
					return err
				}
				f, err := export.Financials(rows)
				if err != nil {
					return err
				}
				defer f.Close()
				save = func(path string) error { return f.SaveAs(path) }
			default:
				return fmt.Errorf("unknown export %q", args[0])
			}

			if out == "" {
				out = args[0] + ".xlsx"
			}
			if err := save(out); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default <kind>.xlsx)")
	cmd.Flags().StringVar(&period, "period", "12months", "financials window: 3months, 6months or 12months")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func openPostgres(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}

// Execute runs propctl against the configured Postgres database.
func Execute() {
	if err := RootCmd(openPostgres).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
