package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var (
	companyName string
	companyTier string
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage partner companies",
}

var companyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a partner company",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]string{
			"name": companyName,
			"tier": companyTier,
		})
		if err != nil {
			return err
		}
		client := NewHTTPClient(GetConfig())
		response, location, err := client.DoRequest(RequestOptions{
			Method: http.MethodPost,
			Path:   "/partners/companies",
			Body:   body,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printRawJSON(response)
			return nil
		}
		fmt.Printf("Created company %s (%s)\n", gjson.GetBytes(response, "name").String(), location)
		return nil
	},
}

var companyUpdateCmd = &cobra.Command{
	Use:   "update <companyID>",
	Short: "Update a partner company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]string{
			"name": companyName,
			"tier": companyTier,
		})
		if err != nil {
			return err
		}
		client := NewHTTPClient(GetConfig())
		_, _, err = client.DoRequest(RequestOptions{
			Method: http.MethodPut,
			Path:   "/partners/companies/" + args[0],
			Body:   body,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(map[string]any{"result": 1})
			return nil
		}
		fmt.Println("Company updated")
		return nil
	},
}

var companyDeleteCmd = &cobra.Command{
	Use:   "delete <companyID>",
	Short: "Delete a partner company and its people",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewHTTPClient(GetConfig())
		_, _, err := client.DoRequest(RequestOptions{
			Method: http.MethodDelete,
			Path:   "/partners/companies/" + args[0],
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(map[string]any{"result": 1})
			return nil
		}
		fmt.Println("Company deleted")
		return nil
	},
}

// printRawJSON re-indents a server response for display
func printRawJSON(response []byte) {
	var data any
	if err := json.Unmarshal(response, &data); err != nil {
		fmt.Println(string(response))
		return
	}
	printJSON(map[string]any{"result": 1, "value": data})
}

func init() {
	rootCmd.AddCommand(companyCmd)
	companyCmd.AddCommand(companyAddCmd)
	companyCmd.AddCommand(companyUpdateCmd)
	companyCmd.AddCommand(companyDeleteCmd)

	for _, c := range []*cobra.Command{companyAddCmd, companyUpdateCmd} {
		c.Flags().StringVarP(&companyName, "name", "n", "", "Company name")
		c.Flags().StringVarP(&companyTier, "tier", "t", "", "Partnership tier (core, premium, platinum)")
		c.MarkFlagRequired("name")
		c.MarkFlagRequired("tier")
	}
}
