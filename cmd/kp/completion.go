package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/aboutmydreams/kp"
	"github.com/aboutmydreams/kp/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --signal
	Short    string   // -f (empty if none)
	Desc     string   // help text
	TakesArg bool     // false for bool flags
	Values   []string // enum values, if any
	FileGlob string   // file glob, if the value is a file
}

// commandDef describes a subcommand for completion.
type commandDef struct {
	Name string
	Desc string
}

// flagValues returns completion values for enum-like flags.
// Computed at call time so signal names match the running platform.
func flagValues(name string) []string {
	switch name {
	case "signal":
		return kp.SignalNames()
	case "skip":
		return config.KnownTools
	}
	return nil
}

// flagFileGlobs maps file-valued flags to their glob.
var flagFileGlobs = map[string]string{
	"config": "*.yaml,*.yml",
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		flags = append(flags, flagDef{
			Long:     f.Name,
			Short:    f.Shorthand,
			Desc:     f.Usage,
			TakesArg: f.Value.Type() != "bool",
			Values:   flagValues(f.Name),
			FileGlob: flagFileGlobs[f.Name],
		})
	})

	return flags
}

// getFlags returns the kill flags, extracted from the real FlagSet.
func getFlags() []flagDef {
	return extractFlagsFromFlagSet(newKillFlagSet(&killFlags{}))
}

// getCommands returns the subcommand registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "doctor", Desc: "Check which discovery tools are available"},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

func supportedShells() []string {
	return []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

func commandNames() []string {
	cmds := getCommands()
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func generateBash(w io.Writer) error {
	var b strings.Builder
	flags := getFlags()

	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}

	b.WriteString("# bash completion for kp\n")
	b.WriteString("_kp() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")

	b.WriteString("    if [[ ${COMP_CWORD} -gt 1 && \"${COMP_WORDS[1]}\" == completion ]]; then\n")
	b.WriteString("        COMPREPLY=($(compgen -W \"" + strings.Join(supportedShells(), " ") + "\" -- \"$cur\"))\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$prev\" in\n")
	for _, f := range flags {
		if !f.TakesArg {
			continue
		}
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		switch {
		case len(f.Values) > 0:
			b.WriteString("        " + pattern + ")\n")
			b.WriteString("            COMPREPLY=($(compgen -W \"" + strings.Join(f.Values, " ") + "\" -- \"$cur\"))\n")
		case f.FileGlob != "":
			b.WriteString("        " + pattern + ")\n")
			b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		default:
			b.WriteString("        " + pattern + ")\n")
			b.WriteString("            COMPREPLY=()\n")
		}
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n\n")

	for _, f := range flags {
		if len(f.Values) == 0 {
			continue
		}
		b.WriteString("    if [[ \"$cur\" == --" + f.Long + "=* ]]; then\n")
		b.WriteString("        COMPREPLY=($(compgen -P \"--" + f.Long + "=\" -W \"" + strings.Join(f.Values, " ") +
			"\" -- \"${cur#--" + f.Long + "=}\"))\n")
		b.WriteString("        return\n")
		b.WriteString("    fi\n")
	}
	b.WriteString("\n")

	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	b.WriteString("        COMPREPLY=($(compgen -W \"" + strings.Join(words, " ") + "\" -- \"$cur\"))\n")
	b.WriteString("    elif [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	b.WriteString("        COMPREPLY=($(compgen -W \"" + strings.Join(commandNames(), " ") + "\" -- \"$cur\"))\n")
	b.WriteString("    fi\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _kp kp\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateZsh(w io.Writer) error {
	var b strings.Builder

	b.WriteString("#compdef kp\n\n")
	b.WriteString("_kp() {\n")
	b.WriteString("    if [[ ${words[2]} == completion ]]; then\n")
	b.WriteString("        _values 'shell' " + strings.Join(supportedShells(), " ") + "\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    _arguments -s \\\n")

	for _, f := range getFlags() {
		desc := zshEscape(f.Desc)
		action := ""
		if f.TakesArg {
			switch {
			case len(f.Values) > 0:
				action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
			case f.FileGlob != "":
				action = ":" + f.Long + ":_files -g \"*.y(a|)ml\""
			default:
				action = ":" + f.Long + ":"
			}
		}
		long := "--" + f.Long
		if f.TakesArg && f.Short == "" {
			long += "="
		}
		if f.Short != "" {
			fmt.Fprintf(&b, "        '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, desc, action)
		} else {
			fmt.Fprintf(&b, "        '%s[%s]%s' \\\n", long, desc, action)
		}
	}

	var cmds []string
	for _, c := range getCommands() {
		cmds = append(cmds, c.Name+"\\:'"+zshEscape(c.Desc)+"'")
	}
	b.WriteString("        '1:port or command:((" + strings.Join(cmds, " ") + "))'\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _kp kp\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateFish(w io.Writer) error {
	var b strings.Builder

	b.WriteString("# fish completion for kp\n")
	for _, c := range getCommands() {
		fmt.Fprintf(&b, "complete -c kp -n '__fish_use_subcommand' -f -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	fmt.Fprintf(&b, "complete -c kp -n '__fish_seen_subcommand_from completion' -f -a '%s'\n",
		strings.Join(supportedShells(), " "))

	for _, f := range getFlags() {
		line := "complete -c kp"
		if f.Short != "" {
			line += " -s " + f.Short
		}
		line += " -l " + f.Long
		if f.TakesArg {
			line += " -r"
			if len(f.Values) > 0 {
				line += " -f -a '" + strings.Join(f.Values, " ") + "'"
			}
		}
		line += " -d '" + fishEscape(f.Desc) + "'\n"
		b.WriteString(line)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func generatePowerShell(w io.Writer) error {
	var b strings.Builder
	flags := getFlags()

	b.WriteString("# PowerShell completion for kp\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName kp -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $values = @{\n")
	for _, f := range flags {
		if len(f.Values) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        '--%s' = @(%s)\n", f.Long, psList(f.Values))
	}
	b.WriteString("    }\n")
	b.WriteString("    $elements = $commandAst.CommandElements\n")
	b.WriteString("    $prev = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }\n")
	b.WriteString("    if ($wordToComplete -ne '' -and $elements.Count -gt 1) { $prev = $elements[-2].ToString() }\n")
	b.WriteString("    if ($elements.Count -gt 1 -and $elements[1].ToString() -eq 'completion') {\n")
	fmt.Fprintf(&b, "        $candidates = @(%s)\n", psList(supportedShells()))
	b.WriteString("    } elseif ($values.ContainsKey($prev)) {\n")
	b.WriteString("        $candidates = $values[$prev]\n")
	b.WriteString("    } elseif ($wordToComplete -like '-*') {\n")

	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	fmt.Fprintf(&b, "        $candidates = @(%s)\n", psList(words))
	b.WriteString("    } else {\n")
	fmt.Fprintf(&b, "        $candidates = @(%s)\n", psList(commandNames()))
	b.WriteString("    }\n\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape makes s safe inside a single-quoted _arguments spec.
func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", "'\\''")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	s = strings.ReplaceAll(s, ":", "\\:")
	return s
}

// fishEscape makes s safe inside single quotes.
func fishEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	return strings.ReplaceAll(s, "'", "\\'")
}

// psList renders values as a PowerShell array body: 'a', 'b'.
func psList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: kp completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(kp completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(kp completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    kp completion fish > ~/.config/fish/completions/kp.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    kp completion powershell | Out-String | Invoke-Expression")
}
