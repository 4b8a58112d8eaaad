// Package viprio holds the small pieces of command-line plumbing shared
// by cmd/viprchk and cmd/viprttn: reading the certificate file and
// printing the success trailer, generalizing cmd/kanso-cli's
// color.Green "✅" convention from a parse result to a checker verdict.
package viprio

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

// ReadCertificate loads the certificate named by path, wrapping any
// failure with enough context to identify which file could not be read.
func ReadCertificate(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate %s: %w", path, err)
	}
	return src, nil
}

// WriteCertificate writes a rewritten certificate to path, truncating or
// creating the file as needed.
func WriteCertificate(path string, contents []byte) error {
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return fmt.Errorf("failed to write certificate %s: %w", path, err)
	}
	return nil
}

// Success prints the "Completed in N seconds" trailer the teacher's CLI
// prints on success, with verdict naming what actually succeeded.
func Success(verdict string, elapsed time.Duration) {
	color.Green("✅ %s. Completed in %.3fs.", verdict, elapsed.Seconds())
}
