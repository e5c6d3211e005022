package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"synm-hq/mediator/pkg/cli"
	"synm-hq/mediator/pkg/config"
	"synm-hq/mediator/pkg/policy"
	"synm-hq/mediator/pkg/redact"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect policy documents",
}

var policyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the policy directory",
	Long: `Load the policy directory exactly as the server would and print the
merged result: profiles, their allowed scopes and redaction rules, and
document defaults. Unknown redaction rule names are flagged; the server
would silently ignore them at request time.`,
	RunE: runPolicyValidate,
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyValidateCmd)
}

func runPolicyValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	doc, err := policy.Load(cfg.Policy.Dir)
	if err != nil {
		return cli.NewCommandError("policy validate", err)
	}
	policies := policy.NewEngine(doc)

	known := make(map[string]bool)
	for _, name := range redact.AvailableRules() {
		known[name] = true
	}

	profiles := policies.Profiles()
	sort.Strings(profiles)

	fmt.Printf("loaded %d profiles from %s\n\n", len(profiles), cfg.Policy.Dir)
	for _, name := range profiles {
		fmt.Printf("profile %q\n", name)
		fmt.Printf("  allowed_scopes: %v\n", policies.AllowedScopes(name))

		rules := policies.RedactionRulesFor(name)
		fmt.Printf("  redactions: %v\n", rules)
		for _, rule := range rules {
			if !known[rule] {
				fmt.Printf("  WARNING: unknown redaction rule %q will be ignored\n", rule)
			}
		}
	}

	fmt.Printf("\ndefault session ttl: %d minutes\n", policies.DefaultTTLMinutes())
	return nil
}
