package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/admin"
	"github.com/jonathan/ats-ranker/internal/config"
	"github.com/jonathan/ats-ranker/internal/types"
)

var setupAdminCmd = &cobra.Command{
	Use:   "setup-admin",
	Short: "Create the administrator account if it does not exist",
	Long: "Creates a verified, active admin account with zero credits. Without ADMIN_PASSWORD the admin " +
		"signs in by magic link. Running it again is a no-op.",
	RunE: runSetupAdmin,
}

var (
	setupAdminEmail string
	setupAdminName  string
	setupAdminPhone string
	setupAdminDBURL string
)

// adminStoreFactory opens the user store; tests replace it.
var adminStoreFactory = func(cmd *cobra.Command, cfg *config.Config) (admin.UserStore, func(), error) {
	database, err := connectDB(commandContext(cmd), cfg, setupAdminDBURL)
	if err != nil {
		return nil, nil, err
	}
	return database, database.Close, nil
}

func init() {
	setupAdminCmd.Flags().StringVar(&setupAdminEmail, "email", "", "Admin email address (required)")
	setupAdminCmd.Flags().StringVar(&setupAdminName, "name", "", "Admin display name")
	setupAdminCmd.Flags().StringVar(&setupAdminPhone, "phone", "", "Admin phone number")
	setupAdminCmd.Flags().StringVar(&setupAdminDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	if err := setupAdminCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}

	rootCmd.AddCommand(setupAdminCmd)
}

func runSetupAdmin(cmd *cobra.Command, _ []string) error {
	req := types.BootstrapAdminRequest{
		Email:    setupAdminEmail,
		Name:     setupAdminName,
		Phone:    setupAdminPhone,
		Password: config.AdminPasswordFromEnv(),
	}

	var passwordConfig *config.PasswordConfig
	if req.Password != "" {
		pc, err := config.NewPasswordConfig()
		if err != nil {
			return err
		}
		passwordConfig = pc
	}

	store, closeStore, err := adminStoreFactory(cmd, currentConfig())
	if err != nil {
		return err
	}
	defer closeStore()

	user, created, err := admin.NewBootstrapper(store, passwordConfig, appLogger).EnsureAdmin(commandContext(cmd), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !created {
		_, _ = fmt.Fprintln(out, "Admin already exists!")
		return nil
	}
	_, _ = fmt.Fprintln(out, "Admin created successfully!")
	_, _ = fmt.Fprintf(out, "Email: %s\n", user.Email)
	if user.PasswordSet {
		_, _ = fmt.Fprintln(out, "Log in with the password from ADMIN_PASSWORD")
	} else {
		_, _ = fmt.Fprintln(out, "Use magic link to login")
	}
	return nil
}
