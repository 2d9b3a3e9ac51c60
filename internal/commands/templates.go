package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	templatesServer string
	templatesOutput string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List device templates on the GNS3 server",
	Long: `List the device templates configured on a GNS3 server.

Template IDs go into a scenario's templates map; template names can
be referenced directly from node specs.`,
	RunE: runTemplates,
}

func init() {
	templatesCmd.Flags().StringVarP(&templatesServer, "server", "s", "", "GNS3 server URL (default: from config)")
	templatesCmd.Flags().StringVarP(&templatesOutput, "output", "o", "table", "Output format (table, json)")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	mgr := newManager()
	defer mgr.Close()

	client, err := mgr.ClientFor(templatesServer)
	if err != nil {
		return fmt.Errorf("failed to connect to GNS3 server: %w", err)
	}

	templates, err := client.ListTemplates(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	if len(templates) == 0 {
		fmt.Println("No templates found.")
		return nil
	}

	if templatesOutput == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(templates)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tTYPE\tCATEGORY\tBUILTIN")
	for _, t := range templates {
		builtin := ""
		if t.Builtin {
			builtin = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Name, t.TemplateID, t.TemplateType, t.Category, builtin)
	}
	w.Flush()

	return nil
}
