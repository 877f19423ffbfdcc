// Package notify delivers search results to the user: console table for
// interactive runs, Telegram and Discord for the watch mode.
package notify

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rloyola/panoptes/internal/model"
)

// ResultWriter defines how search results are presented or delivered.
type ResultWriter interface {
	WriteJobs(jobs []model.ScoredPosting) error
}

// ConsolePrinter writes postings to stdout in a formatted table.
type ConsolePrinter struct{}

func NewConsolePrinter() *ConsolePrinter {
	return &ConsolePrinter{}
}

func (cp *ConsolePrinter) WriteJobs(jobs []model.ScoredPosting) error {
	if len(jobs) == 0 {
		fmt.Println("No se encontraron ofertas.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tFUENTE\tTITULO\tEMPRESA\tUBICACION\tURL")
	fmt.Fprintln(w, "-----\t------\t------\t-------\t---------\t---")
	for _, j := range jobs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			j.MatchScore, j.Source, j.Title, j.Company, j.Location, j.URL)
	}
	return w.Flush()
}
