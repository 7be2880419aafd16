package magetasks

import (
	"errors"
	"os/exec"
	"strings"
)

// missingToolMessages are the error texts sh.RunV surfaces when an optional
// tool such as golangci-lint is not on PATH.
var missingToolMessages = []string{
	"executable file not found",
	"no such file or directory",
}

// IsCommandNotFound reports whether err means the command could not be
// started because it is not installed.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	msg := err.Error()
	for _, m := range missingToolMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
