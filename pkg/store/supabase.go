package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	supabase "github.com/supabase-community/supabase-go"
)

// SupabaseConfig holds configuration required to connect to Supabase.
type SupabaseConfig struct {
	// ConnectionString is the Supabase Postgres connection string. If not
	// provided, it is constructed from SupabaseURL and Password.
	ConnectionString string

	// SupabaseURL is the project URL, e.g. "https://[project-ref].supabase.co".
	SupabaseURL string

	// SupabaseKey is the API key used to initialize the SDK client.
	SupabaseKey string

	// Password is the database password (not the API key).
	Password string
}

// SupabaseClient provides the same DBProvider seam as PostgresClient, so
// clips and notes can live in a Supabase project's Postgres database.
type SupabaseClient struct {
	db          *sql.DB
	supabaseSDK *supabase.Client
	cfg         SupabaseConfig
}

// NewSupabaseClient constructs a Supabase client.
func NewSupabaseClient(cfg SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{cfg: cfg}
}

// Connect initializes the SDK client when URL and key are provided, then
// opens the direct Postgres connection the SQL store requires.
func (c *SupabaseClient) Connect(ctx context.Context) error {
	if c.cfg.SupabaseURL != "" && c.cfg.SupabaseKey != "" {
		sdkClient, err := supabase.NewClient(c.cfg.SupabaseURL, c.cfg.SupabaseKey, nil)
		if err != nil {
			return fmt.Errorf("initialize supabase SDK: %w", err)
		}
		c.supabaseSDK = sdkClient
	}

	connStr := c.cfg.ConnectionString
	if connStr == "" {
		var err error
		connStr, err = c.buildConnectionString()
		if err != nil {
			return fmt.Errorf("build connection string: %w", err)
		}
	}

	// Disable the prepared statement cache to avoid conflicts with
	// Supabase's connection pooler
	connStr = addConnectionParam(connStr, "statement_cache_capacity", "0")
	connStr = addConnectionParam(connStr, "default_query_exec_mode", "simple_protocol")

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("open supabase postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping supabase postgres: %w", err)
	}

	c.db = db
	return nil
}

// Close closes the database connection.
func (c *SupabaseClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB exposes the underlying sql.DB handle for the SQL store.
func (c *SupabaseClient) DB() *sql.DB {
	return c.db
}

// SDK returns the Supabase SDK client for Supabase-specific features.
// Returns nil if the SDK was not initialized.
func (c *SupabaseClient) SDK() *supabase.Client {
	return c.supabaseSDK
}

// buildConnectionString constructs a Supabase Postgres connection string
// from the project URL and database password.
func (c *SupabaseClient) buildConnectionString() (string, error) {
	if c.cfg.SupabaseURL == "" {
		return "", fmt.Errorf("supabase URL is required when connection string is not provided")
	}
	if c.cfg.Password == "" {
		return "", fmt.Errorf("supabase password is required when connection string is not provided")
	}

	// URL format: https://[project-ref].supabase.co
	parsedURL, err := url.Parse(c.cfg.SupabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse supabase URL: %w", err)
	}

	parts := strings.Split(parsedURL.Host, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid supabase URL format: expected [project-ref].supabase.co")
	}
	projectRef := parts[0]

	encodedPassword := url.QueryEscape(c.cfg.Password)
	return fmt.Sprintf("postgresql://postgres:%s@db.%s.supabase.co:5432/postgres?sslmode=require", encodedPassword, projectRef), nil
}

// addConnectionParam adds a query parameter to the connection string if not
// already present.
func addConnectionParam(connStr, key, value string) string {
	if strings.Contains(connStr, key+"=") {
		return connStr
	}

	separator := "?"
	if strings.Contains(connStr, "?") {
		separator = "&"
	}

	return connStr + separator + key + "=" + value
}
