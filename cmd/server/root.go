package main

import (
	"fmt"

	"github.com/Wyydra/vtprovider/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	var cfgPath string
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "vtprovider",
		Short:         "Video call provider adapter for a remote telephony controller",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			return config.Load(v)
		},
	}
	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml)")

	serve := newServeCmd(v)
	cmd.AddCommand(serve)
	cmd.AddCommand(newConfigCmd(v))
	cmd.RunE = serve.RunE

	return cmd
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, o := range config.GetConfigOptions() {
				fmt.Fprintf(out, "%-18s = %-20v # %s\n", o.Key, v.Get(o.Key), o.Comment)
			}
			return nil
		},
	}
}
