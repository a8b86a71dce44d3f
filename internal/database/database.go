// /internal/database/database.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ericoliveiras/avalia-loja/internal/model"
)

// Connect abre a conexão com o Postgres indicado pela DSN. O *gorm.DB
// retornado é criado uma única vez no início do processo e injetado nos
// componentes que precisam dele.
func Connect(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL não informado")
	}

	db, err := gorm.Open(postgres.Open(dsn), GormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco de dados: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Conexão com o banco de dados estabelecida com sucesso.")
	return db, nil
}

// GormConfig devolve a configuração comum do gorm: logger ligado ao logrus e
// tradução de violações de unicidade para gorm.ErrDuplicatedKey.
func GormConfig(log *logrus.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             1500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	}
}

// Migrate cria/atualiza as tabelas da aplicação.
func Migrate(db *gorm.DB, log *logrus.Logger) error {
	log.Info("Executando migrações do banco de dados...")
	if err := db.AutoMigrate(&model.User{}, &model.Store{}, &model.Rating{}); err != nil {
		return fmt.Errorf("falha ao executar migrações: %w", err)
	}
	log.Info("Migrações concluídas com sucesso.")
	return nil
}
