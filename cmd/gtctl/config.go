package main

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const outFlag = "out"

var configFlags = map[string]cobraflags.Flag{
	outFlag: &cobraflags.StringFlag{
		Name:  outFlag,
		Value: "config.json",
		Usage: "File to write the effective configuration to, secrets redacted",
	},
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Dump the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := configFlags[outFlag].GetString()
			if err := cfg.Save(out); err != nil {
				return err
			}
			fmt.Printf("configuration written to %s\n", out)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, configFlags)
	return cmd
}
