package main

import (
	"fmt"
	"time"

	"gestaotemplate/internal/db"
	"gestaotemplate/internal/models"
	"gestaotemplate/internal/utils"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const emailFlag = "email"

var tokenFlags = map[string]cobraflags.Flag{
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email of the user to issue an access token for (required)",
	},
}

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user, e.g. for scripts",
		RunE:  tokenCommand,
	}
	cobraflags.RegisterMap(cmd, tokenFlags)
	return cmd
}

func tokenCommand(_ *cobra.Command, _ []string) error {
	email := tokenFlags[emailFlag].GetString()
	if email == "" {
		return fmt.Errorf("--%s is required", emailFlag)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dbInstance, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := models.GetUserByEmail(email, dbInstance)
	if err != nil {
		return fmt.Errorf("user %s: %w", email, err)
	}

	token, expiresAt, err := utils.GenerateJWT(*user, cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return err
	}
	refresh, err := utils.GenerateRefreshToken(*user, cfg.JWT.Secret, cfg.JWT.RefreshTTL)
	if err != nil {
		return err
	}

	if err := dbInstance.Create(&models.AuthTransaction{
		UserID:    user.ID,
		Token:     token,
		Refresh:   refresh,
		UserAgent: "gtctl",
		ExpiresAt: time.Now().Add(cfg.JWT.RefreshTTL),
	}).Error; err != nil {
		return fmt.Errorf("record token: %w", err)
	}

	fmt.Printf("token: %s\nexpires_at: %s\n", token, expiresAt.Format(time.RFC3339))
	return nil
}
