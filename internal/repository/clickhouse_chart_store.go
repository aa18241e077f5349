package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"TrueArk/internal/domain/models"
	pkgch "TrueArk/pkg/clickhouse"
	applogger "TrueArk/pkg/logger"
)

// CHChartStore implements ChartStore backed by ClickHouse. Positions, angles
// and houses are stored as JSON columns; filterable fields get their own
// columns so listings never parse JSON.
type CHChartStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHChartStore(ch *pkgch.Client) *CHChartStore {
	return &CHChartStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHChartStore) SetLogger(l *applogger.Logger) { s.l = l }

// Init ensures the charts table exists (idempotent).
func (s *CHChartStore) Init(ctx context.Context) error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS trueark.charts (
            id          String,
            datetime_utc String,
            latitude    Float64,
            longitude   Float64,
            planets     String,
            angles      String,
            houses      String,
            julian_day  Float64,
            mode        LowCardinality(String),
            entity_id   String,
            entity_type LowCardinality(String),
            created_at  DateTime64(3, 'UTC')
        )
        ENGINE = MergeTree()
        ORDER BY (entity_type, entity_id, created_at, id)
    `
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("init charts table: %w", err)
	}
	return nil
}

func (s *CHChartStore) Insert(ctx context.Context, c *models.StoredChart) error {
	start := time.Now()

	planets, err := json.Marshal(c.Bodies)
	if err != nil {
		return fmt.Errorf("marshal planets: %w", err)
	}
	angles, err := json.Marshal(c.Angles)
	if err != nil {
		return fmt.Errorf("marshal angles: %w", err)
	}
	houses, err := json.Marshal(c.Houses)
	if err != nil {
		return fmt.Errorf("marshal houses: %w", err)
	}

	const q = `
        INSERT INTO trueark.charts
            (id, datetime_utc, latitude, longitude, planets, angles, houses,
             julian_day, mode, entity_id, entity_type, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err = s.db.ExecContext(ctx, q,
		c.ID, c.DatetimeUTC, c.Latitude, c.Longitude,
		string(planets), string(angles), string(houses),
		c.JulianDay, string(c.Mode), c.EntityID, c.EntityType, c.CreatedAt,
	)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse chart insert error",
				applogger.String("id", c.ID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("insert chart: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse chart insert ok",
			applogger.String("id", c.ID),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

// GetByID returns nil when no chart has the given id.
func (s *CHChartStore) GetByID(ctx context.Context, id string) (*models.StoredChart, error) {
	const q = `
        SELECT id, datetime_utc, latitude, longitude, planets, angles, houses,
               julian_day, mode, entity_id, entity_type, created_at
        FROM trueark.charts
        WHERE id = ?
        LIMIT 1
    `
	row := s.db.QueryRowContext(ctx, q, id)
	c, err := scanChart(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if s.l != nil {
			s.l.Error("clickhouse chart get error",
				applogger.String("id", id),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get chart: %w", err)
	}
	return c, nil
}

func (s *CHChartStore) List(ctx context.Context, f models.ChartFilter) ([]*models.StoredChart, error) {
	start := time.Now()

	q := `
        SELECT id, datetime_utc, latitude, longitude, planets, angles, houses,
               julian_day, mode, entity_id, entity_type, created_at
        FROM trueark.charts
    `
	args := make([]interface{}, 0, 3)
	where := ""
	if f.EntityID != "" {
		where = " WHERE entity_id = ?"
		args = append(args, f.EntityID)
	}
	if f.EntityType != "" {
		if where == "" {
			where = " WHERE entity_type = ?"
		} else {
			where += " AND entity_type = ?"
		}
		args = append(args, f.EntityType)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	q += where + " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse chart list query error", applogger.Error(err))
		}
		return nil, fmt.Errorf("list charts: %w", err)
	}
	defer rows.Close()

	out := make([]*models.StoredChart, 0, limit)
	for rows.Next() {
		c, err := scanChart(rows)
		if err != nil {
			if s.l != nil {
				s.l.Error("clickhouse chart list scan error", applogger.Error(err))
			}
			return nil, fmt.Errorf("scan chart: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse chart list ok",
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHChartStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHChartStore) Close() error {
	return nil // connection pool is owned by pkg/clickhouse client
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChart(r rowScanner) (*models.StoredChart, error) {
	var (
		c       models.StoredChart
		planets string
		angles  string
		houses  string
		mode    string
	)
	if err := r.Scan(&c.ID, &c.DatetimeUTC, &c.Latitude, &c.Longitude,
		&planets, &angles, &houses,
		&c.JulianDay, &mode, &c.EntityID, &c.EntityType, &c.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(planets), &c.Bodies); err != nil {
		return nil, fmt.Errorf("unmarshal planets: %w", err)
	}
	if err := json.Unmarshal([]byte(angles), &c.Angles); err != nil {
		return nil, fmt.Errorf("unmarshal angles: %w", err)
	}
	if err := json.Unmarshal([]byte(houses), &c.Houses); err != nil {
		return nil, fmt.Errorf("unmarshal houses: %w", err)
	}
	c.Mode = models.EphemerisMode(mode)
	return &c, nil
}
