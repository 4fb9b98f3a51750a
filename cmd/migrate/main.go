package main

import (
	"context"
	"fmt"
	"os"

	"github.com/marcelsud/content-webhook/config"
	"github.com/marcelsud/content-webhook/content"
	contentpg "github.com/marcelsud/content-webhook/content/postgres"
	webhookpg "github.com/marcelsud/content-webhook/webhook/postgres"
)

/* migrate - creates the tracking and content tables and seeds the admin author
 * Usage: go run cmd/migrate/main.go [up|down]
 * Exit codes: 0 = done, 1 = failed
 */

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Printf("❌ Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	fmt.Println("🔗 Connecting to PostgreSQL...")
	db, err := contentpg.Open(cfg.DatabaseURL, cfg.PostgresMaxOpenConns, cfg.PostgresMaxIdleConns, cfg.PostgresConnMaxLifeMinutes)
	if err != nil {
		fmt.Printf("❌ Error connecting to PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	fmt.Println("✅ Connected to PostgreSQL!")

	contentRepo := contentpg.NewRepository(db)
	jobs := webhookpg.NewRepository(db)

	switch direction {
	case "up":
		if err := contentRepo.CreateTables(ctx); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		if err := jobs.CreateTables(ctx); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Tables created")

		admin, err := content.NewService(contentRepo).EnsureDefaultAuthor(ctx, cfg.AdminName, cfg.AdminEmail)
		if err != nil {
			fmt.Printf("❌ Error seeding admin author: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("👤 Default author: %s <%s> (id %d)\n", admin.Name, admin.Email, admin.ID)
	case "down":
		if err := jobs.DropTables(ctx); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		if err := contentRepo.DropTables(ctx); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		fmt.Println("🗑️  Tables dropped")
	default:
		fmt.Printf("❌ Unknown direction %q, expected up or down\n", direction)
		os.Exit(1)
	}
}
