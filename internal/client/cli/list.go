package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/fraudcheck/internal/client/records"
)

const dateLayout = "2006-01-02 15:04"

func (a *App) List(ctx context.Context) error {
	if _, err := a.sessions.Require(); err != nil {
		return err
	}
	if err := a.list.LoadAll(ctx); err != nil {
		return err
	}
	a.printRows(a.list.Rows(""))
	return nil
}

// Search filters the records from the last load. A blank term shows all.
func (a *App) Search(ctx context.Context, term string) error {
	if _, err := a.sessions.Require(); err != nil {
		return err
	}
	if len(a.list.Records()) == 0 && a.list.Err() == nil {
		if err := a.list.LoadAll(ctx); err != nil {
			return err
		}
	}
	a.printRows(a.list.Rows(term))
	return nil
}

func (a *App) printRows(rows []records.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(a.out, records.EmptyMessage)
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tPHONE\tADDED BY\tCREATED\tRESUME\tEDIT\tID")
	for _, row := range rows {
		r := row.Record
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.Email, r.Phone, r.AddedBy,
			r.CreatedAt.Local().Format(dateLayout),
			yesNo(row.HasAttachment), yesNo(row.CanEdit), r.ID)
	}
	tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
