package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adeilh/go-rakh-status/httpx/statusclass"
)

var (
	verifySamples int
	verifySeed    uint64
	verifySweep   int
)

// verifyCmd cross-checks every strategy against the branch chain
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that all classification strategies agree",
	Long: `Runs every strategy over a dense sweep around the protocol range and over
random integers spanning the full int range, and fails on the first
disagreement.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().IntVar(&verifySamples, "samples", 100_000, "Number of random integers to check")
	verifyCmd.Flags().Uint64Var(&verifySeed, "seed", 1, "Seed for the random sample")
	verifyCmd.Flags().IntVar(&verifySweep, "sweep", 10_000, "Check every code in [-sweep, sweep)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	checked := 0
	check := func(code int) error {
		checked++
		if m := statusclass.Disagreements(code); len(m) > 0 {
			logger.Error("Strategies disagree", zap.Int("code", code), zap.Stringer("mismatch", m[0]))
			return fmt.Errorf("strategies disagree: %s", m[0])
		}
		return nil
	}

	for code := -verifySweep; code < verifySweep; code++ {
		if err := check(code); err != nil {
			return err
		}
	}
	rng := rand.New(rand.NewPCG(verifySeed, verifySeed^0x9e3779b97f4a7c15))
	for i := 0; i < verifySamples; i++ {
		if err := check(int(rng.Uint64())); err != nil {
			return err
		}
	}

	logger.Info("Strategies agree", zap.Int("checked", checked), zap.Int("strategies", len(statusclass.Strategies())))
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d codes, %d strategies\n", checked, len(statusclass.Strategies()))
	return nil
}
