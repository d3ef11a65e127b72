package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"budgetbook/internal/cli"
	"budgetbook/internal/config"
	"budgetbook/internal/ledger"
	applog "budgetbook/internal/log"
	"budgetbook/internal/render"
	"budgetbook/internal/services"
)

// app holds what every subcommand needs once the root has run its
// pre-run hook.
type app struct {
	dbPath  string
	backend string
	noColor bool

	cfg     *config.Config
	logger  *applog.Logger
	store   ledger.Store
	summary *services.SummaryService
	printer *render.Printer
}

// run executes the command line in args and closes the ledger afterwards,
// whether or not the command succeeded.
func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "budgetbook",
		Short: "Track category budgets and expenses",
		Long: `budgetbook keeps a spending budget per category and a record of every
expense, and reports what is left in each budget.

Categories are case-insensitive: "Food" and "food" are the same budget.
Pass negative amounts after "--", e.g. budgetbook expense add food -- -5.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "ledger database path (overrides BUDGET_DB_PATH)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend: sqlite or memory (overrides DATA_BACKEND)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable styled output")

	root.AddCommand(initCmd(a))
	root.AddCommand(budgetCmd(a))
	root.AddCommand(expenseCmd(a))
	root.AddCommand(spentCmd(a))
	root.AddCommand(remainingCmd(a))
	root.AddCommand(statusCmd(a))
	root.AddCommand(summaryCmd(a))
	root.AddCommand(shellCmd(a))

	return root
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if a.dbPath != "" {
			c.DBPath = a.dbPath
		}
		if a.backend != "" {
			c.DataBackend = a.backend
		}
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cli.SetupLogger(cfg).WithComponent(applog.ComponentCLI)

	store, err := cli.OpenLedger(cmd.Context(), a.logger, cfg)
	if err != nil {
		return err
	}
	a.store = store
	a.summary = services.NewSummaryService(store, a.logger)
	a.printer = render.New(cmd.OutOrStdout(), cfg.Currency)
	a.printer.Plain = a.noColor
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	if err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}
	return nil
}
