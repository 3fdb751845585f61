package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show the partnership tier comparison table",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewHTTPClient(GetConfig())
		response, _, err := client.DoRequest(RequestOptions{
			Method: http.MethodGet,
			Path:   "/tiers",
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printRawJSON(response)
			return nil
		}

		tiers := gjson.GetBytes(response, "tiers").Array()
		gjson.GetBytes(response, "rows").ForEach(func(_, row gjson.Result) bool {
			fmt.Printf("%s:\n", row.Get("feature").String())
			for _, tier := range tiers {
				fmt.Printf("  %-10s %s\n", tier.String()+":", row.Get("values."+tier.String()).String())
			}
			return true
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tiersCmd)
}
