package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"studiocrm/internal/audit"
	"studiocrm/internal/infra"
	"studiocrm/internal/models/request_models"
	"studiocrm/internal/services"
)

var (
	newUserName     string
	newUserEmail    string
	newUserPassword string
	newUserRole     string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			db  *gorm.DB
			log *zap.Logger
		)
		return runTask(cmd.Context(), fx.Populate(&db, &log), func(ctx context.Context) error {
			if err := infra.Migrate(db); err != nil {
				return err
			}
			log.Info("Migration finished")
			return nil
		})
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a staff account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			db   *gorm.DB
			auth services.AuthServiceInterface
		)
		return runTask(cmd.Context(), fx.Populate(&db, &auth), func(ctx context.Context) error {
			if err := infra.Migrate(db); err != nil {
				return err
			}
			user, err := auth.CreateUser(ctx, request_models.CreateUserRequest{
				Name:     newUserName,
				Email:    newUserEmail,
				Password: newUserPassword,
				Role:     newUserRole,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created %s user %s (%s)\n", user.Role, user.Email, user.ID)
			return nil
		})
	},
}

var recomputeHealthCmd = &cobra.Command{
	Use:   "recompute-health",
	Short: "Reclassify every creator's health score against today's date",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			creators services.CreatorServiceInterface
			log      *zap.Logger
		)
		return runTask(cmd.Context(), fx.Populate(&creators, &log), func(ctx context.Context) error {
			changed, err := creators.RecomputeHealth(ctx, audit.System())
			if err != nil {
				return err
			}
			log.Info("Health scores recomputed", zap.Int("changed", changed))
			return nil
		})
	},
}

func init() {
	flags := createUserCmd.Flags()
	flags.StringVar(&newUserName, "name", "", "display name")
	flags.StringVar(&newUserEmail, "email", "", "login email")
	flags.StringVar(&newUserPassword, "password", "", "initial password (min 8 characters)")
	flags.StringVar(&newUserRole, "role", "OPERATOR", "ADMIN, OPERATOR or CREATOR")
	_ = createUserCmd.MarkFlagRequired("name")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}

// runTask starts the core graph, runs fn and stops the graph again.
func runTask(ctx context.Context, populate fx.Option, fn func(ctx context.Context) error) error {
	app := fx.New(coreModules(), populate, fx.NopLogger)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	runErr := fn(ctx)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
