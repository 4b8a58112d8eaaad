// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vipr/internal/diag"
	"vipr/internal/verify"
	"vipr/internal/viprio"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "viprchk <certificate>",
		Short:         "verify an exact-rational MILP infeasibility/optimality certificate",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], verbose)
		},
	}
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace each derivation as it is checked")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(diag.NewReporter(os.Stderr).Report(err))
	}
}

func runCheck(path string, verbose bool) error {
	src, err := viprio.ReadCertificate(path)
	if err != nil {
		return err
	}

	start := time.Now()
	err = verify.Verify(src, verify.Options{Out: os.Stdout, Verbose: verbose})
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	viprio.Success(fmt.Sprintf("Certificate %s verified", path), elapsed)
	return nil
}
