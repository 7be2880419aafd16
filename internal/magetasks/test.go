package magetasks

import (
	"os"
	"os/exec"

	"github.com/magefile/mage/sh"
)

// TestAll runs the test suite and renders it with the freshly built binary.
func TestAll() error {
	PrintH2Header("Tests")

	gotest := exec.Command("go", "test", "-json", "./...")
	render := exec.Command(BinPath)
	render.Stdout = os.Stdout
	render.Stderr = os.Stderr
	gotest.Stderr = os.Stderr

	pipe, err := gotest.StdoutPipe()
	if err != nil {
		return err
	}
	render.Stdin = pipe

	if err := render.Start(); err != nil {
		return err
	}
	testErr := gotest.Run()
	renderErr := render.Wait()
	if testErr != nil {
		PrintError("Tests failed")
		return testErr
	}
	if renderErr != nil {
		return renderErr
	}

	PrintSuccess("All tests passed")
	return nil
}

// TestCoverage runs tests with coverage.
func TestCoverage() error {
	PrintH2Header("Test Coverage")

	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		PrintError("Tests failed")
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Vet runs go vet.
func Vet() error {
	PrintH2Header("Vet")
	return sh.RunV("go", "vet", "./...")
}

// Lint runs golangci-lint when it is installed.
func Lint() error {
	PrintH2Header("Lint")

	err := sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
	if IsCommandNotFound(err) {
		PrintWarning("golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		return nil
	}
	return err
}
