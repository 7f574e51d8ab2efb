package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	query := `
		SELECT listen_addr, http_port, sqlite_path,
		       default_parameterization, batch_workers
		FROM configs
		WHERE name = 'default'`

	var (
		listenAddr sql.NullString
		httpPort   sql.NullInt64
		sqlitePath sql.NullString
		defaultVPO sql.NullInt64
		workers    sql.NullInt64
	)
	err := s.db.QueryRow(query).Scan(&listenAddr, &httpPort, &sqlitePath, &defaultVPO, &workers)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration row: %w", err)
	}

	config := &ConfigData{
		HTTP: HTTPData{
			ListenAddr: listenAddr.String,
			Port:       int(httpPort.Int64),
		},
		Model: ModelData{
			DefaultParameterization: int(defaultVPO.Int64),
			BatchWorkers:            int(workers.Int64),
		},
	}
	if sqlitePath.Valid && sqlitePath.String != "" {
		config.Storage.SQLite = &SQLiteData{Path: sqlitePath.String}
	}

	config.ApplyDefaults()
	return config, nil
}

// IsReadOnly returns false since SQLite configurations can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
