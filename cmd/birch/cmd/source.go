package cmd

import (
	"fmt"
	"os"
)

// readSource reads the single filename argument every subcommand takes.
func readSource(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return string(content), nil
}
