// Package main provides the devotional CLI tool.
//
// Usage:
//
//	devotional [flags] <command> [args]
//
// Commands:
//
//	study      - Daily Bible study, optionally on a theme
//	quiz       - Daily multiple-choice Bible quiz
//	speak      - Narrate text to a WAV file
//	audio      - Decode raw PCM payloads
//	favorites  - Manage favorited study references
//	config     - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.devotional/
//	Use 'devotional config' commands to manage contexts.
package main

import (
	"fmt"
	"os"

	"github.com/haivivi/devotional/cmd/devotional/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
