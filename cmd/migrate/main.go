// Command migrate applies the schema. The server only auto-migrates outside
// production, so production deploys run this first.
package main

import (
	"fmt"
	"log"

	"github.com/Zarsham27/social-networking-web-app/internal/config"
	"github.com/Zarsham27/social-networking-web-app/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dialector, err := database.Dialector(cfg)
	if err != nil {
		return err
	}
	db, err := database.Open(dialector)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Println("schema is up to date")
	return nil
}
