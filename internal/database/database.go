package database

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// ErrNotFound é retornado quando a linha pedida não existe
var ErrNotFound = errors.New("not found")

// DB representa a conexão com o SQLite
type DB struct {
	conn   *sql.DB
	logger *zap.Logger
}

// New abre o banco em dbPath e aplica as migrações pendentes
func New(dbPath string, logger *zap.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	// O agendador e os handlers compartilham uma única conexão de escrita
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := newDB(conn, logger)
	if err := db.Migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	db.logger.Info("database ready", zap.String("path", dbPath))
	return db, nil
}

func newDB(conn *sql.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{conn: conn, logger: logger.Named("database")}
}

// Close fecha a conexão com o banco
func (db *DB) Close() error {
	return db.conn.Close()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
