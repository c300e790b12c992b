package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/listkit/internal/ui"
	"github.com/leapstack-labs/listkit/pkg/column"
	"github.com/leapstack-labs/listkit/pkg/core"
	"github.com/leapstack-labs/listkit/pkg/search"
	"github.com/leapstack-labs/listkit/pkg/table"
)

func demoCmd() *cobra.Command {
	var (
		name     string
		status   string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render one page of the demo user list to the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := ui.NewDataset(40)

			u, err := url.Parse("/users")
			if err != nil {
				return err
			}
			link := search.NewURLLink(u)

			eng, err := search.New(data.Fetch, link, search.NewMapStore(), search.Options{
				Pagination: core.Pagination{Page: 1, PageSize: pageSize},
				Sync:       search.SyncCopyOnly,
				Cache:      search.CacheDefault(),
			})
			if err != nil {
				return err
			}

			// A non-nil payload resets the page, so pagination-only runs
			// must pass nil to keep the requested page.
			var payload core.Payload
			if name != "" || status != "" {
				payload = core.Payload{"name": name, "status": status}.Filter()
			}

			res, err := eng.Trigger(cmd.Context(), payload, &core.Pagination{Page: page, PageSize: pageSize})
			if err != nil {
				return err
			}

			cols := column.NewResolver().Resolve(column.ResolveOptions{Type: ui.UserType, Index: true})
			tbl := table.NewBuilder().Build(cols, res, eng.Loading(), eng.Trigger)
			table.Render(cmd.OutOrStdout(), tbl)

			if link.Changed() {
				fmt.Fprintf(cmd.OutOrStdout(), "share: %s\n", link.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by name substring")
	cmd.Flags().StringVar(&status, "status", "", "filter by status value")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "size", 10, "page size")
	return cmd
}
