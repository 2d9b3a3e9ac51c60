package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"evalgo.org/emulium/internal/gns3"
	"evalgo.org/emulium/internal/push"
	"evalgo.org/emulium/internal/registry"
	"evalgo.org/emulium/models"
)

var (
	pushServer     string
	pushProject    string
	pushNodes      []string
	pushScriptFile string
	pushPath       string
	pushRun        bool
	pushTimeout    time.Duration
	pushKeep       bool
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload a script to project nodes over their consoles",
	Long: `Upload a local script to one or more nodes of a running project.

The script travels over the node's telnet console, so it works on
freshly booted nodes with no SSH, no agent and no shared filesystem.
With --run the script is executed right after the upload and the exit
code of every node is reported.

Examples:
  # Stage a script on two nodes
  emulium push --project classroom-a --node plc-1 --node plc-2 --script setup.sh

  # Upload and execute immediately
  emulium push --project classroom-a --node rtr-1 --script ospf.sh --run

  # Custom destination and execution window
  emulium push --project lab --node srv-1 --script seed.sh --path /etc/init.d/seed --run --timeout 60s`,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringVarP(&pushServer, "server", "s", "", "GNS3 server URL (default: from config)")
	pushCmd.Flags().StringVarP(&pushProject, "project", "p", "", "Project name or ID (required)")
	pushCmd.Flags().StringSliceVarP(&pushNodes, "node", "n", nil, "Target node name (repeatable)")
	pushCmd.Flags().StringVar(&pushScriptFile, "script", "", "Local script file to upload (required)")
	pushCmd.Flags().StringVar(&pushPath, "path", "", "Destination path on the node (default: /tmp/<script-name>)")
	pushCmd.Flags().BoolVar(&pushRun, "run", false, "Execute the script after uploading")
	pushCmd.Flags().DurationVar(&pushTimeout, "timeout", 0, "Execution timeout per node (default: 10s)")
	pushCmd.Flags().BoolVar(&pushKeep, "keep-existing", false, "Skip nodes where the destination already exists")
}

func runPush(cmd *cobra.Command, args []string) error {
	if pushProject == "" {
		return fmt.Errorf("--project is required")
	}
	if len(pushNodes) == 0 {
		return fmt.Errorf("at least one --node is required")
	}
	if pushScriptFile == "" {
		return fmt.Errorf("--script is required")
	}

	content, err := os.ReadFile(pushScriptFile)
	if err != nil {
		return fmt.Errorf("failed to read script file: %w", err)
	}

	remotePath := pushPath
	if remotePath == "" {
		remotePath = "/tmp/" + filepath.Base(pushScriptFile)
	}

	mgr, pusher, projectID, err := connectProject(cmd, pushServer, pushProject)
	if err != nil {
		return err
	}
	defer mgr.Close()

	jobs := make([]models.PushJob, 0, len(pushNodes))
	for _, node := range pushNodes {
		jobs = append(jobs, models.PushJob{
			Node:           node,
			Content:        string(content),
			Path:           remotePath,
			RunAfterUpload: pushRun,
			Executable:     true,
			Overwrite:      !pushKeep,
			RunTimeout:     pushTimeout,
		})
	}

	fmt.Printf("Pushing %s to %d node(s)...\n\n", remotePath, len(jobs))

	report := pusher.Push(cmd.Context(), projectID, jobs, cfg.Push.Concurrency)
	printPushReport(report, pushRun)

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d job(s) failed", report.Failed, report.Total)
	}
	return nil
}

// connectProject resolves the target project and fills a fresh console
// registry from the server's current node list, so CLI invocations see
// the same endpoints the API server tracks.
func connectProject(cmd *cobra.Command, serverURL, project string) (*gns3.Manager, *push.Orchestrator, string, error) {
	mgr := newManager()
	reg := registry.New()
	pusher := newPusher(reg)

	client, err := mgr.ClientFor(serverURL)
	if err != nil {
		mgr.Close()
		return nil, nil, "", fmt.Errorf("failed to connect to GNS3 server: %w", err)
	}

	projectID, err := client.ResolveProject(cmd.Context(), project)
	if err != nil {
		mgr.Close()
		return nil, nil, "", fmt.Errorf("failed to resolve project: %w", err)
	}

	count, err := gns3.SyncRegistry(cmd.Context(), client, reg, projectID)
	if err != nil {
		mgr.Close()
		return nil, nil, "", fmt.Errorf("failed to read node consoles: %w", err)
	}
	if count == 0 {
		mgr.Close()
		return nil, nil, "", fmt.Errorf("project %s has no nodes with console endpoints", project)
	}

	return mgr, pusher, projectID, nil
}

func printPushReport(report *models.PushReport, showOutput bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tCONSOLE\tOUTCOME\tEXIT\tDETAIL")
	for _, r := range report.Results {
		consoleAddr := ""
		if r.Port > 0 {
			consoleAddr = fmt.Sprintf("%s:%d", r.Host, r.Port)
		}
		exit := "-"
		if r.ExitCode != nil {
			exit = fmt.Sprintf("%d", *r.ExitCode)
		}
		detail := r.Error
		if detail == "" {
			detail = r.Reason
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Node, consoleAddr, r.Outcome, exit, detail)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d  Uploaded: %d  Executed: %d  Skipped: %d  Failed: %d\n",
		report.Total, report.Uploaded, report.Executed, report.Skipped, report.Failed)

	if !showOutput {
		return
	}
	for _, r := range report.Results {
		if r.Output == "" {
			continue
		}
		fmt.Printf("\n--- %s ---\n%s\n", r.Node, r.Output)
	}
}
