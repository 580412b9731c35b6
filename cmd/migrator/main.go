package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	dir := flag.String("dir", "file://./migrations", "directory with migration files")
	dsn := flag.String("dsn", "", "database connection string")
	action := flag.String("action", "up", "migration action: up, down, version")
	steps := flag.Int("steps", 0, "number of migrations to apply (0 means all)")

	flag.Parse()

	if *dsn == "" {
		log.Fatal("dsn is required")
	}

	m, err := migrate.New(*dir, *dsn)
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}

	switch *action {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatalf("failed to read version: %v", verr)
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
		return
	default:
		log.Fatalf("unknown action: %s", *action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migration failed: %v", err)
	}

	fmt.Println("migrations applied")
}
