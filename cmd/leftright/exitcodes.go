package main

// Exit codes for the leftright CLI
const (
	// ExitSuccess indicates all tests passed
	ExitSuccess = 0

	// ExitTestFailure indicates one or more tests failed or errored
	ExitTestFailure = 1

	// ExitInputError indicates unusable input, configuration or flags
	ExitInputError = 2

	// ExitInterrupted indicates the run was stopped by SIGINT
	ExitInterrupted = 130
)
