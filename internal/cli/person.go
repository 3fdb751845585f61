package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var (
	personCompanyID string
	personName      string
	personRole      string
	personEmail     string
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Manage partner people",
}

var personAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a person to a partner company",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]string{
			"name":  personName,
			"role":  personRole,
			"email": personEmail,
		})
		if err != nil {
			return err
		}
		client := NewHTTPClient(GetConfig())
		response, location, err := client.DoRequest(RequestOptions{
			Method: http.MethodPost,
			Path:   "/partners/companies/" + personCompanyID + "/people",
			Body:   body,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printRawJSON(response)
			return nil
		}
		fmt.Printf("Created person %s (%s)\n", gjson.GetBytes(response, "name").String(), location)
		return nil
	},
}

var personUpdateCmd = &cobra.Command{
	Use:   "update <personID>",
	Short: "Update a person",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]string{
			"name":  personName,
			"role":  personRole,
			"email": personEmail,
		})
		if err != nil {
			return err
		}
		client := NewHTTPClient(GetConfig())
		_, _, err = client.DoRequest(RequestOptions{
			Method: http.MethodPut,
			Path:   "/partners/people/" + args[0],
			Body:   body,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(map[string]any{"result": 1})
			return nil
		}
		fmt.Println("Person updated")
		return nil
	},
}

var personDeleteCmd = &cobra.Command{
	Use:   "delete <personID>",
	Short: "Delete a person",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewHTTPClient(GetConfig())
		_, _, err := client.DoRequest(RequestOptions{
			Method: http.MethodDelete,
			Path:   "/partners/people/" + args[0],
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(map[string]any{"result": 1})
			return nil
		}
		fmt.Println("Person deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(personCmd)
	personCmd.AddCommand(personAddCmd)
	personCmd.AddCommand(personUpdateCmd)
	personCmd.AddCommand(personDeleteCmd)

	personAddCmd.Flags().StringVarP(&personCompanyID, "company", "c", "", "Owning company id")
	personAddCmd.MarkFlagRequired("company")

	for _, c := range []*cobra.Command{personAddCmd, personUpdateCmd} {
		c.Flags().StringVarP(&personName, "name", "n", "", "Person name")
		c.Flags().StringVarP(&personRole, "role", "r", "", "Role")
		c.Flags().StringVarP(&personEmail, "email", "e", "", "Email address")
		c.MarkFlagRequired("name")
		c.MarkFlagRequired("role")
		c.MarkFlagRequired("email")
	}
}
