package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"evalgo.org/emulium/internal/validation"
)

var (
	validateLocal bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [type] <file>",
	Short: "Validate a JSON-LD document",
	Long: `Validate a scenario, script or scheduled action document.

The type is read from the document's @type when omitted. YAML files
are accepted for scenarios.

Examples:
  emulium validate ot-segmentation-lab.json
  emulium validate script firewall-rules.json
  emulium validate action nightly-teardown.json --local=false`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateLocal, "local", true, "validate locally (default: true)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	var docType, filename string
	if len(args) == 2 {
		docType = args[0]
		filename = args[1]
	} else {
		filename = args[0]
	}

	// Read file
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if ext := strings.ToLower(filepath.Ext(filename)); ext == ".yaml" || ext == ".yml" {
		if data, err = yamlToJSON(data); err != nil {
			return fmt.Errorf("failed to parse file: %w", err)
		}
	}

	if docType == "" {
		docType = sniffDocumentType(data)
		if docType == "" {
			return fmt.Errorf("cannot infer document type from @type; pass it explicitly (scenario, script or action)")
		}
	}

	// Use local validation by default
	if validateLocal {
		return runLocalValidation(docType, data)
	}

	// Use API validation
	return runAPIValidation(docType, data)
}

// sniffDocumentType maps a document's @type to a validator name.
func sniffDocumentType(data []byte) string {
	var doc struct {
		Type string `json:"@type"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	switch {
	case doc.Type == "Scenario":
		return "scenario"
	case doc.Type == "SoftwareSourceCode":
		return "script"
	case strings.HasSuffix(doc.Type, "Action"):
		return "action"
	}
	// A bare topology definition has no @type but is still a scenario.
	var def struct {
		Nodes []json.RawMessage `json:"nodes"`
	}
	if err := json.Unmarshal(data, &def); err == nil && len(def.Nodes) > 0 {
		return "scenario"
	}
	return ""
}

// runLocalValidation validates the document locally
func runLocalValidation(docType string, data []byte) error {
	validator := validation.New()

	var result *validation.ValidationResult
	var err error

	switch docType {
	case "scenario":
		result, err = validator.ValidateScenario(data)
	case "script":
		result, err = validator.ValidateScript(data)
	case "action":
		result, err = validator.ValidateScheduledAction(data)
	default:
		return fmt.Errorf("unknown document type: %s (use 'scenario', 'script' or 'action')", docType)
	}

	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	return printValidationResult(result)
}

// runAPIValidation validates the document via API
func runAPIValidation(docType string, data []byte) error {
	apiURL := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)

	url := fmt.Sprintf("%s/api/v1/validate/%s", apiURL, docType)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to connect to API: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result validation.ValidationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return printValidationResult(&result)
}

func printValidationResult(result *validation.ValidationResult) error {
	if result.Valid {
		fmt.Println("✓ Document is valid")
		return nil
	}

	fmt.Println("✗ Validation failed:")
	for _, e := range result.Errors {
		if e.Value != nil {
			fmt.Printf("  - %s: %s (value: %v)\n", e.Field, e.Message, e.Value)
		} else {
			fmt.Printf("  - %s: %s\n", e.Field, e.Message)
		}
	}

	return fmt.Errorf("validation failed")
}
