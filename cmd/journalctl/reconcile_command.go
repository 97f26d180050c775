package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"journal-service/internal/journal/service"
)

type reconcileResult struct {
	Outcome service.Status `json:"outcome"`
	Journal any            `json:"journal,omitempty"`
	Message string         `json:"message,omitempty"`
}

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	var doi string

	cmd := &cobra.Command{
		Use:   "reconcile [file]",
		Short: "Reconcile a Crossref work document, or a DOI fetched from Crossref, into the journal store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (doi == "") == (len(args) == 0) {
				return errors.New("pass exactly one of a document file or --doi")
			}
			log := ctx.logger(cmd.ErrOrStderr())

			return ctx.withRepository(cmd.Context(), func(repo service.Repository) error {
				svc, err := service.New(repo,
					service.WithLogger(log),
					service.WithWorkFetcher(ctx.crossrefClient(log)),
				)
				if err != nil {
					return err
				}

				var outcome *service.Outcome
				if doi != "" {
					outcome, err = svc.ReconcileDOI(cmd.Context(), doi)
				} else {
					var document []byte
					document, err = os.ReadFile(args[0])
					if err != nil {
						return wrapf(err, "read %s", args[0])
					}
					outcome, err = svc.ReconcileDocument(cmd.Context(), document)
				}
				if err != nil {
					return err
				}

				result := reconcileResult{Outcome: outcome.Status}
				if outcome.Resolved() {
					result.Journal = outcome.Journal
				} else {
					result.Message = service.InsufficientDataMessage
				}
				return writeJSON(cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&doi, "doi", "", "Fetch the work for this DOI from Crossref instead of reading a file")
	return cmd
}
