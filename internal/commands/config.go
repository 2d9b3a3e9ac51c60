package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runShowConfig,
}

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	RunE:  runInitConfig,
}

func init() {
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(initConfigCmd)
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	defaultConfig := `# Emulium Configuration

server:
  host: 0.0.0.0
  port: 8085
  read_timeout: 30s
  write_timeout: 30s
  shutdown_timeout: 10s
  debug: false

couchdb:
  url: http://localhost:5984
  database: emulium
  username: admin
  password: password
  timeout: 30

gns3:
  url: http://192.168.56.101
  username: gns3
  password: gns3
  timeout: 30s
  request_delay: 0s

console:
  connect_timeout: 10s
  poll_interval: 500ms
  command_timeout: 5s

push:
  concurrency: 5
  group_concurrency: 8
  boot_delay: 2s
  priority_delay: 500ms
  scripts_dir: ./scripts

scheduler:
  enabled: false
  interval: 30s

events:
  broker: ""
  client_id: emulium
  topic_prefix: emulium/labs

logging:
  level: info
  format: json
  output: stdout

security:
  rate_limit: 100
  allowed_origins:
    - "*"
  auth_enabled: false
  jwt_secret: change-me-in-production
`

	if err := os.WriteFile("config.yaml", []byte(defaultConfig), 0644); err != nil {
		return err
	}

	fmt.Println("✓ Created config.yaml")
	return nil
}
