package main

import (
	"os"

	"github.com/wonny/yieldpilot/cmd/yieldpilot/commands"
)

// main is the entry point for the yieldpilot CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/yieldpilot [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
