package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// partnersCmd groups the partner tree commands
var partnersCmd = &cobra.Command{
	Use:   "partners",
	Short: "Browse the partner tree",
}

var partnersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List partner companies and their people",
	RunE:  listPartners,
}

func listPartners(cmd *cobra.Command, args []string) error {
	client := NewHTTPClient(GetConfig())
	response, _, err := client.DoRequest(RequestOptions{
		Method: http.MethodGet,
		Path:   "/partners",
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		var responseData map[string]any
		if err := json.Unmarshal(response, &responseData); err != nil {
			return fmt.Errorf("failed to parse response")
		}
		output := map[string]any{
			"result": 1,
			"value":  responseData,
		}
		jsonBytes, err := json.MarshalIndent(output, "", "    ")
		if err != nil {
			return fmt.Errorf("failed to format JSON output: %v", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}

	companies := gjson.GetBytes(response, "companies")
	if !companies.Exists() || len(companies.Array()) == 0 {
		fmt.Println("No partner companies")
		return nil
	}
	fmt.Println("Companies:")
	companies.ForEach(func(_, company gjson.Result) bool {
		fmt.Printf("- %s [%s] (%s)\n",
			company.Get("name").String(),
			company.Get("tier").String(),
			company.Get("id").String())
		company.Get("people").ForEach(func(_, person gjson.Result) bool {
			fmt.Printf("    %s, %s <%s> (%s)\n",
				person.Get("name").String(),
				person.Get("role").String(),
				person.Get("email").String(),
				person.Get("id").String())
			return true
		})
		return true
	})
	return nil
}

func init() {
	rootCmd.AddCommand(partnersCmd)
	partnersCmd.AddCommand(partnersListCmd)
}
