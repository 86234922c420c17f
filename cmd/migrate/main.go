// Aplica o revierte las migraciones SQL contra la base configurada.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate version
package main

import (
	"fmt"
	"os"

	"github.com/tu-usuario/pos-inventario/internal/infrastructure/migration"
	"github.com/tu-usuario/pos-inventario/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = migration.Up(cfg.Migrations.Path, cfg.DB.ConnectionString())
	case "down":
		err = migration.Down(cfg.Migrations.Path, cfg.DB.ConnectionString())
	case "version":
		version, dirty, verr := migration.Version(cfg.Migrations.Path, cfg.DB.ConnectionString())
		if verr != nil {
			fmt.Fprintln(os.Stderr, verr)
			os.Exit(1)
		}
		fmt.Printf("versión: %d dirty: %v\n", version, dirty)
		return
	default:
		fmt.Fprintln(os.Stderr, "uso: migrate [up|down|version]")
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("migraciones:", direction, "ok")
}
