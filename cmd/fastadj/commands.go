// SPDX-License-Identifier: MIT

package main

import (
	"errors"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/wagnertheresa/prescaledFastAdj/adjacency"
	"github.com/wagnertheresa/prescaledFastAdj/spectral"
)

func (a *app) degreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "degree",
		Short: "Print the weighted degrees K·1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.matrix(cmd)
			if err != nil {
				return err
			}
			deg, err := m.Degree()
			if err != nil {
				return err
			}

			return writeDegree(cmd.OutOrStdout(), a.cfg.Format, deg)
		},
	}
}

func (a *app) normCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "norm",
		Short: "Estimate the spectral norm of the normalized Laplacian",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.matrix(cmd)
			if err != nil {
				return err
			}
			est, err := m.NormalizedLaplacianNorm(a.spectralOptions()...)
			if err != nil && !errors.Is(err, adjacency.ErrNotConverged) {
				return err
			}
			if err != nil {
				a.logger.Warn("norm estimate did not converge", "err", err)
			}

			return writeNorm(cmd.OutOrStdout(), a.cfg.Format, est)
		},
	}
	cmd.Flags().Float64Var(&a.flags.Tolerance, "tolerance", 0, "relative convergence tolerance (0 = default)")
	cmd.Flags().IntVar(&a.flags.MaxIterations, "max-iterations", 0, "iteration cap (0 = default)")

	return cmd
}

// printableEigs returns nil when res can be printed: either err is nil or it
// is ErrNotConverged with the best pairs attached.
func printableEigs(res *spectral.EigenResult, err error) error {
	if err == nil || (res != nil && errors.Is(err, adjacency.ErrNotConverged)) {
		return nil
	}

	return err
}

func (a *app) eigsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eigs",
		Short: "Compute the k smallest eigenpairs of the normalized Laplacian",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.matrix(cmd)
			if err != nil {
				return err
			}
			res, err := m.NormalizedEigs(a.cfg.K, a.spectralOptions()...)
			if perr := printableEigs(res, err); perr != nil {
				return perr
			}
			if err != nil {
				a.logger.Warn("eigenpairs did not converge", "err", err)
			}
			var vectors *mat.Dense
			if a.cfg.Vectors {
				vectors = res.Vectors
			}

			return writeEigs(cmd.OutOrStdout(), a.cfg.Format, res, vectors)
		},
	}
	cmd.Flags().IntVar(&a.flags.K, "k", a.flags.K, "number of eigenpairs")
	cmd.Flags().BoolVar(&a.flags.Vectors, "vectors", false, "also print the eigenvectors")
	cmd.Flags().Float64Var(&a.flags.Tolerance, "tolerance", 0, "residual tolerance (0 = default)")
	cmd.Flags().IntVar(&a.flags.MaxIterations, "max-iterations", 0, "restart cap (0 = default)")

	return cmd
}
