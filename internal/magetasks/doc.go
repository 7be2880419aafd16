// Package magetasks provides the build, test and lint tasks used by the
// Magefile.
package magetasks
