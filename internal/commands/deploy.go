package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"evalgo.org/emulium/internal/push"
	"evalgo.org/emulium/internal/registry"
	"evalgo.org/emulium/internal/scenario"
	"evalgo.org/emulium/models"
)

var (
	deployServer  string
	deployProject string
	deployStart   bool
	deployScripts bool
	deployOutput  string
)

var deployCmd = &cobra.Command{
	Use:   "deploy <scenario-file>",
	Short: "Deploy a scenario file to a GNS3 server",
	Long: `Deploy a scenario topology from a JSON or YAML file.

The file is either a full scenario document or a bare definition
(templates, nodes, links). Nodes are created first, then links, then
the nodes are started and any embedded scripts run in priority order.

Examples:
  # Deploy and start the topology
  emulium deploy ot-segmentation-lab.json

  # Deploy into a specific project on another server
  emulium deploy lab.yaml --server http://10.0.0.5:3080 --project classroom-b

  # Create the topology only, without starting nodes or scripts
  emulium deploy lab.json --start=false --scripts=false`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().StringVarP(&deployServer, "server", "s", "", "GNS3 server URL (default: from scenario or config)")
	deployCmd.Flags().StringVarP(&deployProject, "project", "p", "", "Target project name or ID (overrides scenario)")
	deployCmd.Flags().BoolVar(&deployStart, "start", true, "Start nodes after creation")
	deployCmd.Flags().BoolVar(&deployScripts, "scripts", true, "Run embedded scripts after starting")
	deployCmd.Flags().StringVarP(&deployOutput, "output", "o", "text", "Output format (text, json)")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	scn, err := loadScenarioFile(args[0])
	if err != nil {
		return err
	}

	if err := scenario.Validate(&scn.Definition); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	mgr := newManager()
	defer mgr.Close()
	reg := registry.New()
	pusher := newPusher(reg)

	serverURL := deployServer
	if serverURL == "" {
		serverURL = scn.Definition.ServerURL
	}
	client, err := mgr.ClientFor(serverURL)
	if err != nil {
		return fmt.Errorf("failed to connect to GNS3 server: %w", err)
	}

	fmt.Printf("Deploying scenario %s to %s...\n", scn.Name, client.BaseURL())

	builder := scenario.NewBuilder(client, reg)
	dep, buildErr := builder.Build(cmd.Context(), &scn.Definition, scenario.BuildOptions{
		ScenarioName: scn.Name,
		Project:      deployProject,
		StartNodes:   deployStart,
		Owner:        "cli",
	})

	if buildErr == nil && deployScripts && scn.Definition.HasScripts() {
		fmt.Println("Running embedded scripts...")
		dep.Phase = models.PhaseScripts
		dep.Scripts = pusher.RunScenarioScripts(cmd.Context(), dep.ProjectID, &scn.Definition, push.ScriptRunOptions{
			BootDelay:     cfg.Push.BootDelay,
			PriorityDelay: cfg.Push.PriorityDelay,
			Concurrency:   cfg.Push.GroupConcurrency,
		})
		dep.Complete()
	}

	if deployOutput == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(dep); err != nil {
			return err
		}
	} else {
		printDeployment(dep)
	}

	if buildErr != nil {
		return fmt.Errorf("deployment failed: %w", buildErr)
	}
	return nil
}

// loadScenarioFile reads a scenario from a JSON or YAML file. A bare
// definition (no document wrapper) is accepted and named after the file.
func loadScenarioFile(path string) (*models.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		if data, err = yamlToJSON(data); err != nil {
			return nil, fmt.Errorf("failed to parse scenario file: %w", err)
		}
	}

	var scn models.Scenario
	if err := json.Unmarshal(data, &scn); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	if len(scn.Definition.Nodes) == 0 && len(scn.Definition.Links) == 0 {
		var def models.ScenarioDefinition
		if err := json.Unmarshal(data, &def); err == nil && (len(def.Nodes) > 0 || len(def.Links) > 0) {
			scn.Definition = def
		}
	}

	if scn.Name == "" {
		base := filepath.Base(path)
		scn.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &scn, nil
}

// yamlToJSON re-encodes a YAML document as JSON so the models' JSON
// tags apply regardless of the file format.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func printDeployment(dep *models.Deployment) {
	switch dep.Status {
	case models.DeploymentStatusComplete:
		fmt.Printf("\n✓ Deployment complete\n\n")
	case models.DeploymentStatusPartial:
		fmt.Printf("\n⚠️  Deployment partial — some units failed\n\n")
	default:
		fmt.Printf("\n✗ Deployment %s\n\n", dep.Status)
	}

	fmt.Printf("Deployment ID: %s\n", dep.ID)
	fmt.Printf("Project:       %s\n", dep.ProjectID)
	if dep.ErrorMessage != "" {
		fmt.Printf("Error:         %s\n", dep.ErrorMessage)
	}

	if len(dep.Nodes) > 0 {
		fmt.Printf("\nNodes:\n")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tSTATUS\tCONSOLE\tERROR")
		for _, n := range dep.Nodes {
			consoleAddr := ""
			if n.ConsolePort > 0 {
				consoleAddr = fmt.Sprintf("%s:%d", n.ConsoleHost, n.ConsolePort)
			}
			detail := n.Error
			if detail == "" {
				detail = n.StartError
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", n.Name, n.Status, consoleAddr, detail)
		}
		w.Flush()
	}

	if len(dep.Links) > 0 {
		fmt.Printf("\nLinks:\n")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  LINK\tSTATUS\tERROR")
		for _, l := range dep.Links {
			fmt.Fprintf(w, "  %s <-> %s\t%s\t%s\n", l.A.Node, l.B.Node, l.Status, l.Error)
		}
		w.Flush()
	}

	if len(dep.Scripts) > 0 {
		fmt.Printf("\nScripts:\n")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NODE\tSCRIPT\tPRIORITY\tRESULT")
		for _, s := range dep.Scripts {
			result := "ok"
			if !s.Success {
				result = s.Error
			}
			fmt.Fprintf(w, "  %s\t%s\t%d\t%s\n", s.Node, s.Script, s.Priority, result)
		}
		w.Flush()
	}

	for _, warning := range dep.Warnings {
		fmt.Printf("\n⚠️  %s\n", warning)
	}
}
