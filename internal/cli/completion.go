package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/refguard/internal/errors"
)

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""
	alias := ""

	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return 0
		case strings.HasPrefix(arg, "--alias="):
			alias = strings.TrimPrefix(arg, "--alias=")
		case arg == "--alias":
			out.ErrorPrefix("completion: --alias requires a value (--alias=<name>)")
			return errors.ExitConfigError
		case strings.HasPrefix(arg, "-"):
			out.ErrorPrefix("completion: unknown flag: %s", arg)
			return errors.ExitConfigError
		default:
			if shell != "" {
				out.ErrorPrefix("completion: unexpected argument: %s", arg)
				return errors.ExitConfigError
			}
			shell = arg
		}
	}

	if shell == "" {
		out.ErrorPrefix("completion: shell required (bash, zsh, fish)")
		return errors.ExitConfigError
	}

	cmdName := "refguard"
	if alias != "" {
		cmdName = alias
	}

	switch shell {
	case "bash":
		out.Print("%s", generateBashCompletion(cmdName))
	case "zsh":
		out.Print("%s", generateZshCompletion(cmdName))
	case "fish":
		out.Print("%s", generateFishCompletion(cmdName))
	default:
		out.ErrorPrefix("completion: unsupported shell %q (use bash, zsh, or fish)", shell)
		return errors.ExitConfigError
	}

	return 0
}

func printCompletionUsage() {
	w := out
	w.HelpTitle("refguard completion - generate shell completion scripts")
	w.HelpSection("Usage:")
	w.HelpUsage("refguard completion <shell> [--alias=<name>]")
	w.HelpSection("Installation:")
	w.Println("  Bash:  eval \"$(refguard completion bash)\"")
	w.Println("  Zsh:   eval \"$(refguard completion zsh)\"")
	w.Println("  Fish:  refguard completion fish | source")
	w.Println("")
}

type completionItem struct {
	name        string
	description string
}

func builtinCommands() []completionItem {
	return []completionItem{
		{"run", "Run one case"},
		{"suite", "Run every case in a directory"},
		{"validate", "Validate case files"},
		{"completion", "Generate shell completion"},
		{"version", "Show version information"},
		{"help", "Show help"},
	}
}

func runFlags() []completionItem {
	return []completionItem{
		{"--legacy-bin", "Legacy solver binary"},
		{"--candidate-bin", "Candidate solver binary"},
		{"--case", "Case file"},
		{"--cases", "Directory of case files"},
		{"--work-root", "Work root directory"},
		{"--require-candidate", "Fail instead of capturing a baseline"},
		{"--quiet", "Minimal output"},
		{"--verbose", "Diagnostic logging"},
	}
}

func names(items []completionItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.name
	}
	return strings.Join(parts, " ")
}

func generateBashCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_") + "_completions"

	return fmt.Sprintf(`# refguard bash completion
# Add to ~/.bashrc: eval "$(refguard completion bash)"

%s() {
    local cur prev words cword
    _init_completion || return

    local commands="%s"
    local flags="%s"

    case "${prev}" in
        %s)
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        --legacy-bin|--candidate-bin|--case)
            _filedir
            return
            ;;
        --cases|--work-root)
            _filedir -d
            return
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
        return
    fi

    _filedir
}

complete -F %s %s
`, funcName, names(builtinCommands()), names(runFlags()), cmdName, funcName, cmdName)
}

func generateZshCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_")

	var commands, flags strings.Builder
	for _, c := range builtinCommands() {
		fmt.Fprintf(&commands, "        '%s:%s'\n", c.name, c.description)
	}
	for _, f := range runFlags() {
		fmt.Fprintf(&flags, "        '%s[%s]'\n", f.name, f.description)
	}

	return fmt.Sprintf(`#compdef %s
# refguard zsh completion
# Add to ~/.zshrc: eval "$(refguard completion zsh)"

%s() {
    local -a commands flags
    commands=(
%s    )
    flags=(
%s    )

    if (( CURRENT == 2 )); then
        _describe -t commands 'command' commands
        return
    fi

    case "${words[2]}" in
        completion)
            _values 'shell' bash zsh fish
            ;;
        *)
            _arguments -s $flags[@] '*:file:_files'
            ;;
    esac
}

compdef %s %s
`, cmdName, funcName, commands.String(), flags.String(), funcName, cmdName)
}

func generateFishCompletion(cmdName string) string {
	var sb strings.Builder

	sb.WriteString("# refguard fish completion\n# Add to config: refguard completion fish | source\n\n")

	for _, c := range builtinCommands() {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_use_subcommand' -f -a '%s' -d '%s'\n", cmdName, c.name, c.description)
	}

	sb.WriteString("\n")
	for _, f := range runFlags() {
		fmt.Fprintf(&sb, "complete -c %s -l %s -d '%s'\n", cmdName, strings.TrimPrefix(f.name, "--"), f.description)
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from completion' -f -a 'bash zsh fish'\n", cmdName)

	return sb.String()
}
