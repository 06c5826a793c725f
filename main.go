// Command pmutt fits NASA polynomials to species thermochemistry and writes
// them as thermdat files.
//
// A fit is driven by an infile of key=value lines:
//
//	species=species.yaml
//	references=references.yaml
//	output=thermdat
//	tlow=300
//	thigh=1100
//	tref=300
//
// See ParseInfile for the full list of keys.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:          "pmutt",
		Short:        "Fit NASA polynomials and read or write thermdat files",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.AddCommand(fitCmd(&debug), showCmd())
	return cmd
}

func fitCmd(debug *bool) *cobra.Command {
	var (
		output   string
		tmid     float64
		points   int
		concjobs int
	)
	c := &cobra.Command{
		Use:   "fit INFILE",
		Short: "Fit every species named by INFILE and write a thermdat file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keymap, err := ParseInfile(args[0])
			if err != nil {
				return err
			}
			cfg, err := NewConfig(keymap)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("tmid") {
				cfg.TMid = tmid
			}
			if flags.Changed("points") {
				cfg.Points = points
			}
			if flags.Changed("concjobs") {
				cfg.ConcJobs = concjobs
			}
			return Run(cfg, NewLogger(cmd.ErrOrStderr(), *debug))
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "", "thermdat file to write, overriding the infile")
	c.Flags().Float64Var(&tmid, "tmid", 0, "fixed T_mid in K, overriding the infile")
	c.Flags().IntVar(&points, "points", 0, "number of fit temperatures, overriding the infile")
	c.Flags().IntVarP(&concjobs, "concjobs", "j", 0, "concurrent fits, overriding the infile")
	return c
}
