package geo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore reads the geography reference tables.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) ListProvinces(ctx context.Context) ([]Province, error) {
	rows, err := s.pool.Query(ctx, `SELECT code, name FROM provinces ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}
	defer rows.Close()

	var out []Province
	for rows.Next() {
		var p Province
		if err := rows.Scan(&p.Code, &p.Name); err != nil {
			return nil, fmt.Errorf("scan province: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListLGUs(ctx context.Context, provinceCode string) ([]LGU, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT code, name, province_code FROM lgus WHERE province_code = $1 ORDER BY code`, provinceCode)
	if err != nil {
		return nil, fmt.Errorf("list lgus: %w", err)
	}
	defer rows.Close()

	var out []LGU
	for rows.Next() {
		var l LGU
		if err := rows.Scan(&l.Code, &l.Name, &l.ProvinceCode); err != nil {
			return nil, fmt.Errorf("scan lgu: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListBarangays(ctx context.Context, lguCode string) ([]Barangay, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT code, name, lgu_code FROM barangays WHERE lgu_code = $1 ORDER BY code`, lguCode)
	if err != nil {
		return nil, fmt.Errorf("list barangays: %w", err)
	}
	defer rows.Close()

	var out []Barangay
	for rows.Next() {
		var b Barangay
		if err := rows.Scan(&b.Code, &b.Name, &b.LGUCode); err != nil {
			return nil, fmt.Errorf("scan barangay: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
