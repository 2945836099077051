package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"bu-ethesis/internal/core/services"

	"github.com/spf13/cobra"
)

func newReconcileCmd() *cobra.Command {
	var (
		prune  bool
		grace  time.Duration
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare attachment references with stored files",
		Long: `reconcile lists theses whose PDF is missing from storage (dangling references)
and stored files no thesis references (orphans). Records are never changed.
With --prune, orphans and abandoned uploads older than --grace are deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, closeEnv, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer closeEnv()

			svc := services.NewReconcileService(e.thesisRepo, e.store, e.log)
			report, err := svc.Reconcile(ctx, services.ReconcileOptions{Prune: prune, Grace: grace})
			if report != nil {
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					if encErr := enc.Encode(report); encErr != nil {
						return encErr
					}
				} else {
					printReport(cmd.OutOrStdout(), report)
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "Delete orphan files older than the grace period")
	cmd.Flags().DurationVar(&grace, "grace", services.DefaultReconcileGrace, "Minimum file age before pruning")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func printReport(w io.Writer, r *services.ReconcileReport) {
	fmt.Fprintf(w, "References: %d, files: %d\n", r.References, r.Files)

	for _, d := range r.Dangling {
		fmt.Fprintf(w, "dangling  thesis=%d file=%s\n", d.ThesisID, d.File)
	}
	for _, f := range r.Orphans {
		fmt.Fprintf(w, "orphan    file=%s size=%d modified=%s\n", f.Name, f.Size, f.ModTime.Format(time.RFC3339))
	}
	for _, f := range r.StaleStaging {
		fmt.Fprintf(w, "staging   file=%s size=%d modified=%s\n", f.Name, f.Size, f.ModTime.Format(time.RFC3339))
	}
	for _, name := range r.Pruned {
		fmt.Fprintf(w, "pruned    file=%s\n", name)
	}

	if r.Clean() {
		fmt.Fprintln(w, "No integrity gaps found.")
	}
}
