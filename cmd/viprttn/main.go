// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vipr/internal/diag"
	"vipr/internal/reorder"
	"vipr/internal/viprio"
)

func main() {
	var trim bool
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "viprttn <certificate>",
		Short:         "reorder or trim a certificate's derivation section into a single topological pass",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReorder(args[0], trim)
		},
	}
	rootCmd.Flags().BoolVarP(&trim, "trim", "t", false, "drop derivations never reached from the final one, instead of just reordering")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "accepted for symmetry with viprchk; the reorderer has no trace output of its own")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(diag.NewReporter(os.Stderr).Report(err))
	}
}

func runReorder(path string, trim bool) error {
	src, err := viprio.ReadCertificate(path)
	if err != nil {
		return err
	}

	mode := reorder.Topological
	suffix := ".tightened"
	if trim {
		mode = reorder.Trim
		suffix = ".trimmed"
	}

	start := time.Now()
	out, err := reorder.Reorder(src, mode)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	outPath := strings.TrimSuffix(path, ".vipr") + suffix
	if err := viprio.WriteCertificate(outPath, out); err != nil {
		return err
	}

	viprio.Success(fmt.Sprintf("Wrote %s", outPath), elapsed)
	return nil
}
