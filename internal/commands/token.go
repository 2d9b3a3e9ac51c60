package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"evalgo.org/emulium/internal/auth"
	"evalgo.org/emulium/models"
)

var tokenCmd = &cobra.Command{
	Use:   "token [username]",
	Short: "Generate a service authentication token",
	Long: `Generate a JWT token for API access without a stored user account.

The token is signed with the jwt_secret from the configuration file.
Service tokens suit CI pipelines and lab automation that deploy
scenarios or push scripts against a server with auth enabled.

Examples:
  # Instructor-level token for a ci user, valid one year
  emulium token ci-deployer

  # Read-only token for a dashboard
  emulium token grafana --roles student

  # Admin token with a short lifetime
  emulium token break-glass --roles admin --expiration 24`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerateToken,
}

var (
	tokenExpiration int64
	tokenSecret     string
	tokenRoles      []string
)

func init() {
	tokenCmd.Flags().Int64Var(&tokenExpiration, "expiration", 8760, "Token expiration in hours (default: 8760 = 1 year)")
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "JWT secret (default: from config file)")
	tokenCmd.Flags().StringSliceVar(&tokenRoles, "roles", []string{models.RoleInstructor}, "Roles to grant (admin, instructor, student)")
}

func runGenerateToken(cmd *cobra.Command, args []string) error {
	username := args[0]

	// Get secret from flag or config
	secret := tokenSecret
	if secret == "" {
		if cfg != nil {
			secret = cfg.Security.JWTSecret
		}

		if secret == "" {
			return fmt.Errorf(`jwt_secret not found in config file and --secret not provided

Please either:
  1. Add to your config.yaml:
     security:
       jwt_secret: your-secret-here

  2. Or use the --secret flag:
     emulium token %s --secret "your-secret-here"`, username)
		}
	}

	roles := make([]models.Role, 0, len(tokenRoles))
	for _, role := range tokenRoles {
		switch role {
		case models.RoleAdmin, models.RoleInstructor, models.RoleStudent:
			roles = append(roles, role)
		default:
			return fmt.Errorf("unknown role: %s (use admin, instructor or student)", role)
		}
	}

	// Convert expiration from hours to duration
	expiration := time.Duration(tokenExpiration) * time.Hour

	// Generate token
	token, err := auth.GenerateServiceToken(secret, username, roles, expiration)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	// Print token information
	fmt.Printf("Service Token Generated Successfully\n")
	fmt.Printf("====================================\n\n")
	fmt.Printf("Username:   %s\n", username)
	fmt.Printf("Roles:      %s\n", strings.Join(roles, ", "))
	fmt.Printf("Expiration: %s (%d hours)\n", expiration, tokenExpiration)
	fmt.Printf("\nToken:\n%s\n\n", token)
	fmt.Printf("Use it in API requests:\n")
	fmt.Printf("  Authorization: Bearer %s\n\n", token)
	fmt.Printf("⚠️  Keep this token secure! It grants API access to your Emulium instance.\n")

	return nil
}
