package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:          "simulador",
		Short:        "Simulador de financiamento imobiliário",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newAPICommand(&configPath), newWebCommand(&configPath))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
