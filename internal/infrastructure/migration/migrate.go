// Package migration aplica las migraciones SQL con golang-migrate.
package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Up aplica todas las migraciones pendientes. No hacer nada no es error.
func Up(sourcePath, databaseURL string) error {
	m, err := migrate.New("file://"+sourcePath, databaseURL)
	if err != nil {
		return fmt.Errorf("abrir migraciones: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}

// Version devuelve la versión aplicada y si la base quedó dirty.
func Version(sourcePath, databaseURL string) (uint, bool, error) {
	m, err := migrate.New("file://"+sourcePath, databaseURL)
	if err != nil {
		return 0, false, fmt.Errorf("abrir migraciones: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, fmt.Errorf("versión de migraciones: %w", err)
	}
	return version, dirty, nil
}

// Down revierte la última migración aplicada.
func Down(sourcePath, databaseURL string) error {
	m, err := migrate.New("file://"+sourcePath, databaseURL)
	if err != nil {
		return fmt.Errorf("abrir migraciones: %w", err)
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revertir migración: %w", err)
	}
	return nil
}
