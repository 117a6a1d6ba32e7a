package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion script",
	Long: `To load completions:

Bash:
  $ source <(pdfcompare completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ pdfcompare completion bash > /etc/bash_completion.d/pdfcompare
  # macOS:
  $ pdfcompare completion bash > /usr/local/etc/bash_completion.d/pdfcompare

Zsh:
  $ pdfcompare completion zsh > "${fpath[1]}/_pdfcompare"

Fish:
  $ pdfcompare completion fish > ~/.config/fish/completions/pdfcompare.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			fmt.Print(humanBashCompletion)
		case "zsh":
			rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			rootCmd.GenPowerShellCompletion(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// humanBashCompletion is a handcrafted, minimal bash completion script
// that avoids the robotic verbosity of auto-generated ones.
const humanBashCompletion = `
# pdfcompare bash completion

_pdfcompare_completion() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="compare export build launch history update completion help"

    case "${prev}" in
        compare)
            COMPREPLY=( $(compgen -f -X '!*.pdf' -- ${cur}) )
            return 0
            ;;
        export)
            COMPREPLY=( $(compgen -f -X '!*.pdf' -- ${cur}) )
            return 0
            ;;
        build)
            COMPREPLY=( $(compgen -W "--app-version --bundler --dist --help" -- ${cur}) )
            return 0
            ;;
        launch)
            COMPREPLY=( $(compgen -W "--interpreter --entry --help" -- ${cur}) )
            return 0
            ;;
        history)
            COMPREPLY=( $(compgen -W "--window --help" -- ${cur}) )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- ${cur}) )
            return 0
            ;;
        --rules|--dict|--out)
            COMPREPLY=( $(compgen -f -- ${cur}) )
            return 0
            ;;
        *)
            ;;
    esac

    # Global Flags
    if [[ ${cur} == -* ]] ; then
        COMPREPLY=( $(compgen -W "--help --version --rules --dict --out --strict --verbose" -- ${cur}) )
        return 0
    fi

    # Subcommands
    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
}

complete -F _pdfcompare_completion pdfcompare
`
