package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cleanupServer  string
	cleanupProject string
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete every node and link in a project",
	Long: `Delete all nodes and links of a GNS3 project, leaving the empty
project behind for the next deployment.

The sweep continues past individual delete failures and reports them
at the end.

Examples:
  emulium cleanup --project classroom-a
  emulium cleanup --project 5f0c1b2a-... --server http://10.0.0.5:3080`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().StringVarP(&cleanupServer, "server", "s", "", "GNS3 server URL (default: from config)")
	cleanupCmd.Flags().StringVarP(&cleanupProject, "project", "p", "", "Project name or ID (required)")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	if cleanupProject == "" {
		return fmt.Errorf("--project is required")
	}

	mgr := newManager()
	defer mgr.Close()

	client, err := mgr.ClientFor(cleanupServer)
	if err != nil {
		return fmt.Errorf("failed to connect to GNS3 server: %w", err)
	}

	projectID, err := client.ResolveProject(cmd.Context(), cleanupProject)
	if err != nil {
		return fmt.Errorf("failed to resolve project: %w", err)
	}

	fmt.Printf("Cleaning project %s...\n", cleanupProject)

	report := client.Cleanup(cmd.Context(), projectID)
	fmt.Printf("Deleted %d node(s) and %d link(s)\n", report.NodesDeleted, report.LinksDeleted)

	if !report.Success {
		for _, e := range report.Errors {
			fmt.Printf("  ✗ %s\n", e)
		}
		return fmt.Errorf("cleanup finished with %d error(s)", len(report.Errors))
	}

	fmt.Println("✓ Project cleaned")
	return nil
}
