package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonburchel/exploded-hexagon-home-parametric/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hexhome",
		Short: "Parametric massing generator for the exploded hexagon home",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [project-path]",
		Short: "Derive the plan, build the massing model, and write all artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.markChanged(cmd)
			return runGenerate(args[0], &opts)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "output directory (default <project-path>/out)")
	cmd.Flags().BoolVar(&opts.timestamped, "timestamped", false, "add a timestamp suffix to output filenames")
	return cmd
}

func validateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Check parameters and derived geometry without writing artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.markChanged(cmd)
			return runValidate(args[0], &opts)
		},
	}

	opts.bind(cmd)
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server with regeneration endpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv := server.New(args[0], port)
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
