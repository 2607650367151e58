package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/storyswift/pkg/config"
	"github.com/matzehuels/storyswift/pkg/pipeline"
)

// Values offered for enum-like flags.
var (
	completionModes         = []string{pipeline.ModeAuto, pipeline.ModeTab, pipeline.ModeFlow, pipeline.ModeFlat}
	completionSinks         = []string{config.SinkDir, config.SinkMongo, config.SinkS3}
	completionInspectFormat = []string{"text", "json", "yaml"}
	completionGraphFormat   = []string{"svg", "png", "pdf", "dot", "json"}
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for storyswift.

The scripts complete subcommands, offer only .storyboard and .xib files
as arguments to convert, inspect and graph, and list the accepted values
of --mode, --sink and --format.

Bash:
  $ source <(storyswift completion bash)

Zsh:
  $ storyswift completion zsh > "${fpath[1]}/_storyswift"

Fish:
  $ storyswift completion fish > ~/.config/fish/completions/storyswift.fish

PowerShell:
  PS> storyswift completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// registerCompletions attaches argument and flag completions to the
// subcommands of root.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		switch cmd.Name() {
		case "convert":
			cmd.ValidArgsFunction = completeDescriptor
			_ = cmd.RegisterFlagCompletionFunc("mode", cobra.FixedCompletions(completionModes, cobra.ShellCompDirectiveNoFileComp))
			_ = cmd.RegisterFlagCompletionFunc("sink", cobra.FixedCompletions(completionSinks, cobra.ShellCompDirectiveNoFileComp))
			_ = cmd.RegisterFlagCompletionFunc("output", completeDirectory)
		case "inspect":
			cmd.ValidArgsFunction = completeDescriptor
			_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(completionInspectFormat, cobra.ShellCompDirectiveNoFileComp))
		case "graph":
			cmd.ValidArgsFunction = completeDescriptor
			_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(completionGraphFormat, cobra.ShellCompDirectiveNoFileComp))
		}
	}
}

// completeDescriptor offers storyboard and xib files for the single file
// argument.
func completeDescriptor(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"storyboard", "xib"}, cobra.ShellCompDirectiveFilterFileExt
}

func completeDirectory(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}
