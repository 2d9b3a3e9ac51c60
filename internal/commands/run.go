package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"evalgo.org/emulium/models"
)

var (
	runServerURL string
	runProject   string
	runNodes     []string
	runPath      string
	runShell     string
	runTimeout   time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute an already-uploaded script on project nodes",
	Long: `Execute a script that is already present on one or more nodes.

The command runs over the node's telnet console and reports the exit
code and captured output per node.

Examples:
  # Re-run a staged script on one node
  emulium run --project classroom-a --node plc-1 --path /tmp/setup.sh

  # Run on several nodes with a longer window
  emulium run --project lab --node rtr-1 --node rtr-2 --path /tmp/ospf.sh --timeout 60s`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runServerURL, "server", "s", "", "GNS3 server URL (default: from config)")
	runCmd.Flags().StringVarP(&runProject, "project", "p", "", "Project name or ID (required)")
	runCmd.Flags().StringSliceVarP(&runNodes, "node", "n", nil, "Target node name (repeatable)")
	runCmd.Flags().StringVar(&runPath, "path", "", "Script path on the node (required)")
	runCmd.Flags().StringVar(&runShell, "shell", "", "Shell used to invoke the script (default: sh)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Execution timeout per node (default: 10s)")
}

func runRun(cmd *cobra.Command, args []string) error {
	if runProject == "" {
		return fmt.Errorf("--project is required")
	}
	if len(runNodes) == 0 {
		return fmt.Errorf("at least one --node is required")
	}
	if runPath == "" {
		return fmt.Errorf("--path is required")
	}

	mgr, pusher, projectID, err := connectProject(cmd, runServerURL, runProject)
	if err != nil {
		return err
	}
	defer mgr.Close()

	jobs := make([]models.RunJob, 0, len(runNodes))
	for _, node := range runNodes {
		jobs = append(jobs, models.RunJob{
			Node:    node,
			Path:    runPath,
			Shell:   runShell,
			Timeout: runTimeout,
		})
	}

	fmt.Printf("Running %s on %d node(s)...\n\n", runPath, len(jobs))

	report := pusher.Run(cmd.Context(), projectID, jobs, cfg.Push.Concurrency)
	printPushReport(report, true)

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d job(s) failed", report.Failed, report.Total)
	}
	return nil
}
