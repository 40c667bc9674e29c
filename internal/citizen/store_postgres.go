package citizen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cims/pkg/sentinel"
)

// PostgresStore persists citizens in PostgreSQL via pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const citizenColumns = `id, first_name, middle_name, last_name, birth_date, sex, status,
province_code, lgu_code, barangay_code, payment_date, remarks, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, c *Citizen) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO citizens (first_name, middle_name, last_name, birth_date, sex, status,
			province_code, lgu_code, barangay_code, payment_date, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		c.FirstName, c.MiddleName, c.LastName, c.BirthDate, c.Sex, c.Status,
		c.ProvinceCode, c.LGUCode, c.BarangayCode, c.PaymentDate, c.Remarks,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert citizen: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, c *Citizen) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE citizens SET first_name = $2, middle_name = $3, last_name = $4,
			birth_date = $5, sex = $6, status = $7, province_code = $8, lgu_code = $9,
			barangay_code = $10, payment_date = $11, remarks = $12, updated_at = $13
		WHERE id = $1`,
		c.ID, c.FirstName, c.MiddleName, c.LastName, c.BirthDate, c.Sex, c.Status,
		c.ProvinceCode, c.LGUCode, c.BarangayCode, c.PaymentDate, c.Remarks, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update citizen: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Citizen, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+citizenColumns+` FROM citizens WHERE id = $1`, id)
	c, err := scanCitizen(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find citizen: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) List(ctx context.Context, q Query) ([]Citizen, error) {
	where, args := buildWhere(q)
	sql := `SELECT ` + citizenColumns + ` FROM citizens` + where + ` ORDER BY id`
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		sql += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list citizens: %w", err)
	}
	defer rows.Close()

	var out []Citizen
	for rows.Next() {
		c, err := scanCitizen(rows)
		if err != nil {
			return nil, fmt.Errorf("scan citizen: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list citizens: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context, q Query) (int, error) {
	where, args := buildWhere(q)
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM citizens`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count citizens: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM citizens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete citizen: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func buildWhere(q Query) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q.ProvinceCode != "" {
		add("province_code = $%d", q.ProvinceCode)
	}
	if q.LGUCode != "" {
		add("lgu_code = $%d", q.LGUCode)
	}
	if q.BarangayCode != "" {
		add("barangay_code = $%d", q.BarangayCode)
	}
	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, st := range q.Statuses {
			statuses[i] = string(st)
		}
		add("status = ANY($%d)", statuses)
	}
	if q.RegisteredFrom != nil {
		add("created_at >= $%d", *q.RegisteredFrom)
	}
	if q.RegisteredTo != nil {
		add("created_at <= $%d", *q.RegisteredTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanCitizen(row pgx.Row) (*Citizen, error) {
	var c Citizen
	err := row.Scan(
		&c.ID, &c.FirstName, &c.MiddleName, &c.LastName, &c.BirthDate, &c.Sex, &c.Status,
		&c.ProvinceCode, &c.LGUCode, &c.BarangayCode, &c.PaymentDate, &c.Remarks,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Normalize()
	return &c, nil
}
