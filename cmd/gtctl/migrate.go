package main

import (
	"fmt"

	"gestaotemplate/internal/db"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// Connect migrates on success
			if _, err := db.Connect(cfg); err != nil {
				return err
			}
			defer db.Close()
			fmt.Println("migrations applied")
			return nil
		},
	}
}
