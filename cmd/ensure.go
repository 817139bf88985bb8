package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"domain-manager/core/config"
	"domain-manager/core/foreman"
	"domain-manager/core/logger"
	"domain-manager/feature/domain"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Desired-state flags for ensure domain
	domainName     string
	domainFullname string
	domainDNSProxy string
	domainOrgs     []string
	domainLocs     []string
	domainState    string

	// Behavior flags
	dryRunDomain bool
	yesConfirm   bool

	// Connection overrides (config/env supply the defaults)
	foremanHost     string
	foremanPort     int
	foremanUser     string
	foremanPassword string
	foremanNoSSL    bool
)

// ensureCmd is the parent command for all ensure operations.
var ensureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Converge a Foreman resource to a desired state",
	Long: `Ensure a resource exists (or does not exist) on the Foreman server
with the declared fields, issuing at most one mutating API call.`,
}

// domainEnsureCmd converges a single DNS domain record.
var domainEnsureCmd = &cobra.Command{
	Use:   "domain",
	Short: "Converge a DNS domain record (create, update, or delete as needed)",
	Long: `Converge a single DNS domain record to the desired state.

Resolves referenced organization, location, and DNS proxy names to remote ids,
fetches the current record by name, and issues the one mutation needed:
create when missing, update when fields differ, delete when state is absent.

Examples:
  # Ensure a domain exists with a description
  ensure domain --name example.com --fullname "Example domain"

  # Assign organizations and locations by name
  ensure domain --name example.com --organization Torchlight --location Cardiff --location London

  # Show the planned action without touching the server
  ensure domain --name example.com --dry-run

  # Remove a domain without interactive confirmation
  ensure domain --name example.com --state absent --yes`,
	RunE: runDomainEnsure,
}

func init() {
	// Add domain command to ensure
	ensureCmd.AddCommand(domainEnsureCmd)

	// Desired-state flags
	domainEnsureCmd.Flags().StringVar(&domainName, "name", "", "Domain name (required)")
	domainEnsureCmd.Flags().StringVar(&domainFullname, "fullname", "", "Description of the domain")
	domainEnsureCmd.Flags().StringVar(&domainDNSProxy, "dns-proxy", "", "Name of the smart proxy serving DNS for the domain")
	domainEnsureCmd.Flags().StringArrayVar(&domainOrgs, "organization", nil, "Organization to assign the domain to (repeatable)")
	domainEnsureCmd.Flags().StringArrayVar(&domainLocs, "location", nil, "Location to assign the domain to (repeatable)")
	domainEnsureCmd.Flags().StringVar(&domainState, "state", "present", "Desired state: present or absent")
	_ = domainEnsureCmd.MarkFlagRequired("name")

	// Behavior flags
	domainEnsureCmd.Flags().BoolVar(&dryRunDomain, "dry-run", false, "Report the planned action without mutating")
	domainEnsureCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	// Connection overrides
	domainEnsureCmd.Flags().StringVar(&foremanHost, "host", "", "Foreman host (overrides FOREMAN_HOST)")
	domainEnsureCmd.Flags().IntVar(&foremanPort, "port", 0, "Foreman API port (overrides FOREMAN_PORT)")
	domainEnsureCmd.Flags().StringVar(&foremanUser, "username", "", "Foreman user (overrides FOREMAN_USERNAME)")
	domainEnsureCmd.Flags().StringVar(&foremanPassword, "password", "", "Foreman password (overrides FOREMAN_PASSWORD)")
	domainEnsureCmd.Flags().BoolVar(&foremanNoSSL, "no-ssl", false, "Connect over plain HTTP")

	// Add ensure to root
	RootCmd.AddCommand(ensureCmd)
}

func runDomainEnsure(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConnectionOverrides(cmd, &cfg.Foreman)

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	desired := desiredFromFlags()
	l.Info("Starting domain reconciliation",
		zap.String("name", desired.Name),
		zap.String("state", string(desired.State)),
	)

	// Connect to Foreman
	client, err := foreman.NewClient(cfg.Foreman, l)
	if err != nil {
		return fmt.Errorf("failed to create foreman client: %w", err)
	}

	reconciler := domain.NewReconciler(client, l)

	// Step 1: Plan (read-only)
	plan, err := reconciler.Reconcile(ctx, desired, domain.Options{DryRun: true})
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printEnsureReport(l, "Planned action", plan)

	// Step 2: Dry-run stops here
	if dryRunDomain {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	// Step 3: Nothing to do
	if plan.Action == domain.ActionNone {
		l.Info("Domain already converged. No changes required.")
		return nil
	}

	// Step 4: Confirm deletions
	if plan.Action == domain.ActionDelete {
		if !confirmDestructiveAction() {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
	}

	// Step 5: Apply
	result, err := reconciler.Reconcile(ctx, desired, domain.Options{})
	if err != nil {
		return fmt.Errorf("failed to reconcile domain: %w", err)
	}
	printEnsureReport(l, "Reconciliation complete", result)

	return nil
}

// desiredFromFlags assembles the desired state from the command flags.
// Organization/location flags left unset stay nil, which the reconciler
// treats as unmanaged.
func desiredFromFlags() *domain.DesiredState {
	return &domain.DesiredState{
		Name:          domainName,
		Fullname:      domainFullname,
		DNSProxy:      domainDNSProxy,
		Organizations: domainOrgs,
		Locations:     domainLocs,
		State:         domain.State(domainState),
	}
}

// applyConnectionOverrides lets explicit flags win over environment config.
func applyConnectionOverrides(cmd *cobra.Command, cfg *foreman.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Host = foremanHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = foremanPort
	}
	if cmd.Flags().Changed("username") {
		cfg.Username = foremanUser
	}
	if cmd.Flags().Changed("password") {
		cfg.Password = foremanPassword
	}
	if cmd.Flags().Changed("no-ssl") {
		cfg.UseSSL = !foremanNoSSL
	}
}

// printEnsureReport logs a reconciliation result with structured fields.
func printEnsureReport(l *zap.Logger, message string, result *domain.Result) {
	fields := []zap.Field{
		zap.Bool("changed", result.Changed),
		zap.String("action", string(result.Action)),
	}
	if result.Domain != nil {
		fields = append(fields,
			zap.Int("id", result.Domain.ID),
			zap.String("name", result.Domain.Name),
			zap.String("fullname", result.Domain.Fullname),
			zap.Ints("organization_ids", result.Domain.OrganizationIDs),
			zap.Ints("location_ids", result.Domain.LocationIDs),
		)
	}
	l.Info(message, fields...)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
