package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ridoystarlord/debtreport/database"
	"github.com/ridoystarlord/debtreport/schema"
	"github.com/ridoystarlord/debtreport/validator"
)

// Source yields raw debt rows in storage order.
type Source interface {
	Rows(ctx context.Context) ([]validator.RecordInput, error)
	Describe() string
}

// Open picks a Source for location. Database URLs use the postgres:// or
// sqlite:// schemes; files are recognised by extension. table applies to
// database sources only.
func Open(location, table string) (Source, error) {
	if location == "" {
		return nil, fmt.Errorf("no data source configured (set --source, DEBTREPORT_SOURCE or DATABASE_URL)")
	}
	if table == "" {
		table = schema.DefaultTable
	}

	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		if err := database.ValidateTableName(table); err != nil {
			return nil, err
		}
		return &PostgresSource{URL: location, Table: table}, nil
	case strings.HasPrefix(lower, "sqlite://"):
		if err := database.ValidateTableName(table); err != nil {
			return nil, err
		}
		return &SQLiteSource{Path: location[len("sqlite://"):], Table: table}, nil
	}

	switch strings.ToLower(filepath.Ext(location)) {
	case ".csv":
		return &CSVSource{Path: location}, nil
	case ".yaml", ".yml":
		return &YAMLSource{Path: location}, nil
	case ".db", ".sqlite", ".sqlite3":
		if err := database.ValidateTableName(table); err != nil {
			return nil, err
		}
		return &SQLiteSource{Path: location, Table: table}, nil
	}

	return nil, fmt.Errorf("unsupported data source %q (expected postgres://, sqlite://, .csv, .yaml, .db)", location)
}

// Load reads every row from src and rejects the whole load on the first
// malformed row.
func Load(ctx context.Context, src Source, logger *zap.Logger) ([]schema.DebtRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.Describe(), err)
	}

	records, err := validator.ToRecords(rows)
	if err != nil {
		logger.Warn("Rejected malformed record", zap.String("source", src.Describe()), zap.Error(err))
		return nil, fmt.Errorf("loading %s: %w", src.Describe(), err)
	}

	logger.Debug("Loaded debt records",
		zap.String("source", src.Describe()),
		zap.Int("records", len(records)),
		zap.Duration("duration", time.Since(start)))

	return records, nil
}
