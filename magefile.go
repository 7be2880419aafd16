//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/dkoosis/leftright/internal/magetasks"
)

// Default target - build the binary
var Default = Build

func init() {
	if err := magetasks.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

// Build builds the leftright binary
func Build() error {
	return magetasks.BuildAll()
}

// Test runs the tests, rendered by leftright itself
func Test() error {
	mg.Deps(Build)
	return magetasks.TestAll()
}

// Coverage runs the tests with a coverage report
func Coverage() error {
	return magetasks.TestCoverage()
}

// Vet runs go vet
func Vet() error {
	return magetasks.Vet()
}

// Lint runs golangci-lint
func Lint() error {
	return magetasks.Lint()
}

// QA runs vet, lint and the tests
func QA() error {
	mg.SerialDeps(Vet, Lint, Test)
	return nil
}

// Clean removes build artifacts
func Clean() error {
	return magetasks.Clean()
}
