package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"planscore/internal/verify"
)

var verifyArtifactPath string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Recheck the Merkle audit trail of a result",
	Long: "Verify recomputes the Merkle tree over a result's ordered step list\n" +
		"and compares it to the claimed root. Any insertion, deletion,\n" +
		"reordering or mutation of a step fails the check.",
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyArtifactPath, "artifact", "", "path to a result JSON written by evaluate (required)")
	_ = verifyCmd.MarkFlagRequired("artifact")
}

func runVerify(cmd *cobra.Command, args []string) error {
	res, err := loadResult(verifyArtifactPath)
	if err != nil {
		return err
	}

	audit := res.Audit
	if !verify.VerifyTrace(audit.Steps, audit.MerkleRoot) {
		return fmt.Errorf("audit trail MISMATCH for run %s: recomputed root %s, claimed %s",
			audit.RunID, verify.MerkleRoot(audit.Steps), audit.MerkleRoot)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Audit trail verified: run %s, %d steps, root %s\n",
		audit.RunID, len(audit.Steps), audit.MerkleRoot)
	return nil
}
