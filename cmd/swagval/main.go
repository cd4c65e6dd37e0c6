package main

import (
	"errors"
	"fmt"
	"os"

	swagval "github.com/JacobTheEvans/swagger-validator-middleware"
	"github.com/JacobTheEvans/swagger-validator-middleware/cmd/swagval/commands"
)

// commandNames lists every command for typo suggestions.
var commandNames = []string{"check", "routes", "serve", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("swagval v%s (commit %s)\n", swagval.Version(), swagval.Commit())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "check":
		err = commands.HandleCheck(os.Args[2:])
	case "routes":
		err = commands.HandleRoutes(os.Args[2:])
	case "serve":
		err = commands.HandleServe(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, commands.ErrRequestRejected) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`swagval - Swagger contract request validation

Usage:
  swagval <command> [flags] [arguments]

Commands:
  check      Validate a single request against a contract
  routes     List the routes a contract declares
  serve      Run a validating gateway in front of a service
  mcp        Run an MCP server over stdio
  version    Show version information
  help       Show this help message

Run 'swagval <command> --help' for more information on a command.
`)
}

// suggestCommand returns the closest command name within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
