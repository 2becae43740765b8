package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	_ "github.com/lib/pq"

	"github.com/scan-io-git/scanio-parser/internal/findings"
	"github.com/scan-io-git/scanio-parser/pkg/shared/config"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS scanio_scans (
		id UUID PRIMARY KEY,
		scan_date TIMESTAMPTZ NOT NULL,
		engine_version TEXT,
		elapsed_time INTEGER,
		host_name TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS scanio_vulnerabilities (
		id UUID PRIMARY KEY,
		scan_id UUID NOT NULL,
		unique_id TEXT NOT NULL,
		category TEXT,
		file_name TEXT,
		vulnerability_abstract TEXT,
		line_number INTEGER,
		confidence REAL,
		impact REAL,
		priority TEXT,
		properties JSONB,
		UNIQUE (scan_id, unique_id)
	)`,
}

const insertScan = `INSERT INTO scanio_scans (
	id, scan_date, engine_version, elapsed_time, host_name
) VALUES ($1, $2, $3, $4, $5)`

const insertVulnerability = `INSERT INTO scanio_vulnerabilities (
	id, scan_id, unique_id, category, file_name, vulnerability_abstract,
	line_number, confidence, impact, priority, properties
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (scan_id, unique_id) DO NOTHING`

// OpenPostgres connects to the database described by cfg, checks the connection
// and creates the result tables when missing.
func OpenPostgres(ctx context.Context, cfg config.Postgres) (*sql.DB, error) {
	db, err := sql.Open("postgres", PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// PostgresDSN renders cfg as a libpq keyword/value connection string.
func PostgresDSN(cfg config.Postgres) string {
	pairs := []struct{ key, value string }{
		{"host", cfg.Host},
		{"port", strconv.Itoa(cfg.Port)},
		{"dbname", cfg.Name},
		{"user", cfg.User},
		{"password", cfg.Password},
		{"sslmode", cfg.SSLMode},
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.value == "" || (p.key == "port" && cfg.Port == 0) {
			continue
		}
		parts = append(parts, p.key+"="+quoteDSNValue(p.value))
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

// Migrate creates the result tables when they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// PostgresWriter stores records in one transaction that is committed on Flush.
type PostgresWriter struct {
	ctx    context.Context
	db     *sql.DB
	tx     *sql.Tx
	scanID uuid.UUID
	ownsDB bool
}

// NewPostgresWriter returns a writer storing one scan into db. When ownsDB is
// set, Close also closes db.
func NewPostgresWriter(ctx context.Context, db *sql.DB, ownsDB bool) *PostgresWriter {
	return &PostgresWriter{
		ctx:    ctx,
		db:     db,
		scanID: uuid.New(),
		ownsDB: ownsDB,
	}
}

// ScanID returns the id the scan row is stored under.
func (w *PostgresWriter) ScanID() uuid.UUID {
	return w.scanID
}

func (w *PostgresWriter) begin() (*sql.Tx, error) {
	if w.tx != nil {
		return w.tx, nil
	}
	tx, err := w.db.BeginTx(w.ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	w.tx = tx
	return tx, nil
}

func (w *PostgresWriter) WriteScan(scan findings.Scan) error {
	tx, err := w.begin()
	if err != nil {
		return err
	}
	var elapsed interface{}
	if scan.ElapsedTime != nil {
		elapsed = int64(*scan.ElapsedTime)
	}
	if _, err := tx.ExecContext(w.ctx, insertScan,
		w.scanID.String(),
		scan.ScanDate.UTC(),
		nullString(scan.EngineVersion),
		elapsed,
		nullString(scan.HostName),
	); err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	return nil
}

func (w *PostgresWriter) WriteVulnerability(v findings.Vulnerability) error {
	tx, err := w.begin()
	if err != nil {
		return err
	}

	var line, confidence, impact interface{}
	if v.LineNumber != nil {
		line = int64(*v.LineNumber)
	}
	if v.Confidence != nil {
		confidence = float64(*v.Confidence)
	}
	if v.Impact != nil {
		impact = float64(*v.Impact)
	}
	var properties interface{}
	if len(v.Properties) > 0 {
		raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v.Properties)
		if err != nil {
			return fmt.Errorf("marshal properties: %w", err)
		}
		properties = string(raw)
	}

	if _, err := tx.ExecContext(w.ctx, insertVulnerability,
		uuid.New().String(),
		w.scanID.String(),
		v.UniqueID,
		nullString(v.Category),
		nullString(v.FileName),
		nullString(v.VulnerabilityAbstract),
		line,
		confidence,
		impact,
		nullString(v.Priority),
		properties,
	); err != nil {
		return fmt.Errorf("insert vulnerability: %w", err)
	}
	return nil
}

// Flush commits the open transaction, if any.
func (w *PostgresWriter) Flush() error {
	if w.tx == nil {
		return nil
	}
	tx := w.tx
	w.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close rolls back anything not flushed.
func (w *PostgresWriter) Close() error {
	var err error
	if w.tx != nil {
		if rbErr := w.tx.Rollback(); rbErr != nil {
			err = fmt.Errorf("rollback: %w", rbErr)
		}
		w.tx = nil
	}
	if w.ownsDB {
		if closeErr := w.db.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
