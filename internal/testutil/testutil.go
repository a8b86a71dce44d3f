// Package testutil reúne helpers usados pelos testes de vários pacotes.
package testutil

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ericoliveiras/avalia-loja/internal/database"
)

// Logger devolve um logrus silencioso.
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// NewDB abre um SQLite em arquivo temporário já migrado. O arquivo é
// removido ao fim do teste.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "avalia-loja.db")
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)"

	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig(Logger()))
	if err != nil {
		t.Fatalf("falha ao abrir sqlite de teste: %v", err)
	}
	if err := database.Migrate(db, Logger()); err != nil {
		t.Fatalf("falha ao migrar sqlite de teste: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
