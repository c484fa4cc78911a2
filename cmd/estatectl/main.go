package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/estatehub-api/config"
	"github.com/estatehub-api/database"
	"github.com/estatehub-api/lib/notify"
	"github.com/estatehub-api/repositories"
	"github.com/estatehub-api/services"
	"github.com/estatehub-api/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	config.LoadEnv()
	utils.InitLogger("estatectl")

	rootCmd := &cobra.Command{
		Use:   "estatectl",
		Short: "Operator commands for estatehub-api",
	}
	rootCmd.PersistentFlags().String("database-url", "", "database URL (defaults to DATABASE_URL)")

	rootCmd.AddCommand(
		migrateCmd(),
		createAdminCmd(),
		sendRemindersCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB(cmd *cobra.Command, cfg *config.Config) (*gorm.DB, error) {
	dbURL, _ := cmd.Flags().GetString("database-url")
	if dbURL == "" {
		dbURL = cfg.DatabaseURL
	}
	return database.Open(dbURL, cfg.DBLogLevel)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := openDB(cmd, cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Println("Schema is up to date")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account or reset an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")

			generated := false
			if password == "" {
				var err error
				if password, err = utils.GenerateSecurePassword(16); err != nil {
					return err
				}
				generated = true
			}

			cfg := config.Load()
			db, err := openDB(cmd, cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}

			authService := services.NewAuthService(repositories.NewUserRepository(db), cfg.JWTSecret, cfg.SessionTTL)
			user, err := authService.CreateAdmin(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}
			fmt.Printf("Admin %s ready (id %s)\n", user.Email, user.ID)
			if generated {
				fmt.Printf("Generated password: %s\n", password)
			}
			return nil
		},
	}

	cmd.Flags().String("email", "", "admin email")
	cmd.Flags().String("password", "", "admin password, at least 8 characters; generated when empty")
	cmd.Flags().String("name", "", "display name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func sendRemindersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send-reminders",
		Short: "Run one reminder dispatch cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := openDB(cmd, cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			sender := notify.NewTwilioSender(notify.TwilioOptions{
				AccountSID: cfg.TwilioAccountSID,
				AuthToken:  cfg.TwilioAuthToken,
				From:       cfg.TwilioFromNumber,
				To:         cfg.ReminderNotifyTo,
				Timeout:    cfg.NotifyTimeout,
			})
			reminderService := services.NewReminderService(
				repositories.NewReminderRepository(db),
				repositories.NewLeadRepository(db),
				sender,
				services.ReminderOptions{Enabled: cfg.RemindersEnabled, SendTimeout: cfg.NotifyTimeout},
			)
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.CronBudget)
			defer cancel()

			summary, err := reminderService.DispatchDue(ctx, time.Now())
			if err != nil {
				return err
			}
			if summary.Disabled {
				fmt.Println("Reminder notifications are disabled (REMINDERS_ENABLED=false)")
				return nil
			}
			fmt.Printf("processed=%d sent=%d failed=%d\n", summary.Processed, summary.Sent, summary.Failed)
			return nil
		},
	}
}
