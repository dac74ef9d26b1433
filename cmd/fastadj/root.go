// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wagnertheresa/prescaledFastAdj/adjacency"
	"github.com/wagnertheresa/prescaledFastAdj/kernel"
	"github.com/wagnertheresa/prescaledFastAdj/spectral"
)

const version = "v0.3.0"

// app carries the resolved configuration between PersistentPreRunE and the
// subcommands.
type app struct {
	flags  runConfig
	config string
	cfg    runConfig
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{flags: defaultConfig()}

	root := &cobra.Command{
		Use:     "fastadj",
		Short:   "Fast kernel adjacency matrices over point clouds",
		Version: version,
		Long: `fastadj evaluates products with the dense kernel adjacency matrix
K[i,j] = k(‖xᵢ − xⱼ‖) of a CSV point cloud by NFFT-based fast summation and
derives degrees, the normalized-Laplacian norm and its smallest eigenpairs.

Kernels: gaussian, gaussian-derivative (xx_gaussian), matern12 (laplacian_rbf),
matern12-derivative. Profiles: rough, default, fine.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.resolve,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.config, "config", "", "YAML run configuration; explicit flags override it")
	pf.StringVarP(&a.flags.Points, "points", "p", "", "CSV file with one point per line, '-' for stdin")
	pf.Float64Var(&a.flags.Sigma, "sigma", a.flags.Sigma, "kernel bandwidth σ > 0")
	pf.StringVar(&a.flags.Kernel, "kernel", a.flags.Kernel, "kernel variant")
	pf.StringVar(&a.flags.Profile, "profile", a.flags.Profile, "accuracy profile (rough|default|fine)")
	pf.Float64Var(&a.flags.Diagonal, "diagonal", a.flags.Diagonal, "value of K[i,i]")
	pf.IntVar(&a.flags.Workers, "workers", 0, "goroutines per product (0 = GOMAXPROCS)")
	pf.StringVar(&a.flags.Format, "format", a.flags.Format, "output format (text|json)")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(a.degreeCmd(), a.normCmd(), a.eigsCmd())

	return root
}

// resolve merges defaults, the config file and explicit flags, and sets up logging.
func (a *app) resolve(cmd *cobra.Command, _ []string) error {
	cfg := defaultConfig()
	if a.config != "" {
		var err error
		if cfg, err = loadConfig(a.config, cfg); err != nil {
			return err
		}
	}
	a.cfg = overlayFlags(cmd, cfg, a.flags)
	if err := a.cfg.validate(); err != nil {
		return err
	}

	level := slog.LevelWarn
	if a.cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return nil
}

// matrix loads the points and builds the adjacency matrix.
func (a *app) matrix(cmd *cobra.Command) (*adjacency.Matrix, error) {
	pts, err := openPoints(a.cfg.Points, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	variant, err := kernel.ParseVariant(a.cfg.Kernel)
	if err != nil {
		return nil, err
	}
	opts := []adjacency.Option{adjacency.WithLogger(a.logger)}
	if a.cfg.Workers > 0 {
		opts = append(opts, adjacency.WithWorkers(a.cfg.Workers))
	}

	return adjacency.New(pts, a.cfg.Sigma, variant, a.cfg.Profile, a.cfg.Diagonal, opts...)
}

// spectralOptions translates the iteration settings.
func (a *app) spectralOptions() []spectral.Option {
	opts := []spectral.Option{spectral.WithLogger(a.logger)}
	if a.cfg.Tolerance > 0 {
		opts = append(opts, spectral.WithTolerance(a.cfg.Tolerance))
	}
	if a.cfg.MaxIterations > 0 {
		opts = append(opts, spectral.WithMaxIterations(a.cfg.MaxIterations), spectral.WithMaxRestarts(a.cfg.MaxIterations))
	}

	return opts
}
