package commands

import (
	"hacview-backend/lib/scrapers/homeaccess"
	"hacview-backend/lib/serviceutil"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var districtState *string
var districtBaseUrl *string

func init() {
	districtState = districtsCmd.Flags().String("state", "", "Two-letter state code to search within.")
	districtBaseUrl = districtsCmd.Flags().String("base-url", "https://hacsearch.powerschool.com", "The district lookup endpoint.")
	districtsCmd.MarkFlagRequired("state")
	rootCmd.AddCommand(districtsCmd)
}

var districtsCmd = &cobra.Command{
	Use:   "districts --state <code> <query>...",
	Short: "Looks up school districts by name, best matches first.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")

		districts, err := homeaccess.SearchDistricts(
			cmd.Context(), *districtBaseUrl, *districtState, query,
		)
		if err != nil {
			serviceutil.Fatal("district search failed", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"District", "Link"})
		for _, d := range homeaccess.RankDistricts(query, districts) {
			t.AppendRow(table.Row{d.Name, d.Link})
		}
		t.Render()
	},
}
