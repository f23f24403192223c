package commands

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command. A session keeps the
// roster store alive between commands, which is what makes undo and redo
// useful: one-shot invocations start with an empty history.
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an editing session (edits, undo and redo share one history)",
		Long: `Start an interactive session where edits accumulate in a shared undo
history. The session keeps running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\nStarting roster session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			// Sibling commands become session verbs; interactive itself,
			// completion, and help are excluded
			rootCmd := cmd.Parent()
			commands := make(map[string]*cobra.Command)
			for _, subCmd := range rootCmd.Commands() {
				if subCmd.Name() != "interactive" && subCmd.Name() != "completion" && subCmd.Name() != "help" {
					commands[subCmd.Name()] = subCmd
				}
			}

			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts, err := splitSessionLine(line)
				if err != nil {
					fmt.Printf("✗ %v\n\n", err)
					continue
				}
				if len(parts) == 0 {
					continue
				}
				cmdName := parts[0]
				cmdArgs := parts[1:]

				if cmdName == "exit" || cmdName == "quit" {
					fmt.Println("Session closed.")
					return nil
				}

				if cmdName == "help" {
					printSessionHelp(commands)
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Printf("✗ Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				// Reset flags so values from a previous line do not leak
				// into this one
				targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
					flag.Changed = false
					flag.Value.Set(flag.DefValue)
				})

				// Run the command's RunE directly: going through Execute()
				// would re-run PersistentPreRunE and rebuild the app,
				// discarding the session's undo history
				if err := targetCmd.ParseFlags(cmdArgs); err != nil {
					fmt.Printf("✗ %v\n\n", err)
					continue
				}
				cmdArgs = targetCmd.Flags().Args()

				if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
					fmt.Printf("✗ %v\n\n", err)
					continue
				}

				if targetCmd.RunE != nil {
					if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
						fmt.Printf("✗ %v\n\n", err)
					}
				} else if targetCmd.Run != nil {
					targetCmd.Run(targetCmd, cmdArgs)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}
}

func printSessionHelp(commands map[string]*cobra.Command) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nAvailable commands:")
	for _, name := range names {
		cmd := commands[name]
		fmt.Printf("  %-48s %s\n", cmd.Use, cmd.Short)
	}
	fmt.Println("\n  help                                             Show this help message")
	fmt.Println("  exit, quit                                       Close the session")
}

// splitSessionLine splits a session line into arguments, honoring single
// and double quotes so notes with spaces survive
func splitSessionLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune

	for _, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", inQuote)
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args, nil
}
