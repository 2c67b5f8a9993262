// Package cmd contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and feeding passphrases through stdin.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"testing"

	"github.com/shhcrypt/shhcrypt/internal/configs"

	"github.com/spf13/cobra"
)

// setupTestEnvironment points the settings at a fresh config directory and
// returns a fresh working directory for targets.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	originalSettings := configs.ShhcryptSettings
	configs.ShhcryptSettings = configs.SettingsFor(t.TempDir())
	ResetGlobalState()

	t.Cleanup(func() {
		configs.ShhcryptSettings = originalSettings
		ResetGlobalState()
	})

	return t.TempDir()
}

// withStdin replaces os.Stdin with a pipe holding input for the rest of the test.
func withStdin(t *testing.T, input string) {
	t.Helper()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stdin pipe: %v", err)
	}
	if _, err := writer.WriteString(input); err != nil {
		t.Fatalf("Failed to write to stdin pipe: %v", err)
	}
	writer.Close()

	originalStdin := os.Stdin
	os.Stdin = reader
	t.Cleanup(func() {
		os.Stdin = originalStdin
		reader.Close()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	first := <-outputChan
	second := <-outputChan

	return first + second, err
}

// createTestCLI creates a complete CLI instance for testing with the given arguments.
func createTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shhcrypt",
		Short: "shhcrypt - encrypt and decrypt files and directories in place",
	}
	Register(rootCmd)

	if verboseFlag {
		args = append(args, "--verbose")
	}
	if debugFlag {
		args = append(args, "--debug")
	}
	rootCmd.SetArgs(args)

	return rootCmd
}

// runCLI executes args against a fresh CLI and returns the combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		return createTestCLI(args, false, false).Execute()
	})
}
