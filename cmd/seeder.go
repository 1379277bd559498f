package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/frahmantamala/finance-dashboard/internal/auth"
	"github.com/frahmantamala/finance-dashboard/internal/category"
	categoryRepo "github.com/frahmantamala/finance-dashboard/internal/category/postgres"
	userRepo "github.com/frahmantamala/finance-dashboard/internal/user/postgres"
	"github.com/frahmantamala/finance-dashboard/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with default categories",
	Long:  `Insert the default category set, skipping names that already exist. Pass --demo-user to also create a demo account.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(os.Getenv("APP_ENV"))
		appLogger := logger.LoggerWrapper()

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		categoryService := category.NewService(categoryRepo.NewCategoryRepository(gormDB), appLogger)
		count, err := categoryService.Seed()
		if err != nil {
			log.Fatalf("failed to seed categories: %v", err)
		}
		fmt.Printf("Seeded %d default categories\n", count)

		if !seedDemoUser {
			return
		}

		authService := auth.NewService(
			userRepo.NewUserRepository(gormDB),
			cfg.Security.SessionSecret,
			cfg.Security.BCryptCost,
			cfg.Security.SecureCookies,
			appLogger,
		)

		demo, err := authService.Register(auth.RegisterDTO{
			Name:     "Demo User",
			Email:    "demo@mail.com",
			Password: "demo-password",
		})
		if err != nil {
			if err == auth.ErrEmailTaken {
				fmt.Println("Demo user already exists:", "demo@mail.com")
				return
			}
			log.Fatalf("failed to create demo user: %v", err)
		}

		fmt.Printf("Seeded demo user %s with share code %s\n", demo.Email, demo.ShareCode)
	},
}
