// Package cli implements the tabview command line: file and SQL viewers
// built on the view engine, plus small helper commands.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/imgajeed76/tabview/internal/ui/styles"
	"github.com/imgajeed76/tabview/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tabview",
		Short: "Sort, filter and page through tabular data in the terminal",
		Long: `tabview shows JSON, CSV and SQL query results as an interactive table.

Click-to-sort headers, multi-word filtering and pagination work the same
way in the TUI and in plain output:

  tabview show people.json --sort age --filter "ann 25"
  tabview sql --driver sqlite --dsn shop.db "SELECT * FROM orders"

Settings are read from config.toml in the tabview config directory
(see --config).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default "+displayConfigPath()+")")

	// Version flag template to show more info
	rootCmd.SetVersionTemplate(fmt.Sprintf("tabview version %s\n  commit: %s\n  built:  %s\n", Version, CommitSHA, BuildDate))

	// Set up pre-run to handle global flags
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		noColor, _ := cmd.Flags().GetBool("no-color")
		if noColor {
			styles.SetNoColor(true)
		}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newShowCmd(),
		newSQLCmd(),
		newColumnsCmd(),
		newCompletionCmd(rootCmd),
	)
	return rootCmd
}

// Execute runs the root command and prints failures to stderr.
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		// Check if it's a structured TabError
		var tabErr *util.TabError
		if errors.As(err, &tabErr) {
			fmt.Fprintln(os.Stderr, tabErr.Format())
		} else {
			// Simple error - still format nicely
			fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
		}
		return err
	}
	return nil
}

func newCompletionCmd(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tabview.

To load completions:

Bash:
  $ source <(tabview completion bash)

Zsh:
  $ tabview completion zsh > "${fpath[1]}/_tabview"

Fish:
  $ tabview completion fish | source

PowerShell:
  PS> tabview completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tabview version %s\n", Version)
			fmt.Fprintf(out, "  commit: %s\n", CommitSHA)
			fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		},
	}
}
