package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"schoolapi/models"
)

// Store is what the handlers need from the backing table.
type Store interface {
	InsertSchool(ctx context.Context, s models.NewSchool) (int64, error)
	ListSchools(ctx context.Context) ([]models.School, error)
	Ping(ctx context.Context) error
}

type MySQLStore struct {
	db    *sql.DB
	table string
}

// NewMySQLStore expects table to be a validated identifier; it is quoted,
// not escaped.
func NewMySQLStore(db *sql.DB, table string) *MySQLStore {
	return &MySQLStore{db: db, table: table}
}

var _ Store = (*MySQLStore)(nil)

func (m *MySQLStore) InsertSchool(ctx context.Context, s models.NewSchool) (int64, error) {
	query := fmt.Sprintf("INSERT INTO `%s` (name, address, latitude, longitude) VALUES (?, ?, ?, ?)", m.table)
	res, err := m.db.ExecContext(ctx, query, s.Name, s.Address, s.Latitude, s.Longitude)
	if err != nil {
		return 0, errors.Wrap(err, "insert school")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "read insert id")
	}
	return id, nil
}

func (m *MySQLStore) ListSchools(ctx context.Context) ([]models.School, error) {
	query := fmt.Sprintf("SELECT id, name, address, latitude, longitude FROM `%s` ORDER BY id", m.table)
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list schools")
	}
	defer rows.Close()

	schools := []models.School{}
	for rows.Next() {
		var s models.School
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Latitude, &s.Longitude); err != nil {
			return nil, errors.Wrap(err, "scan school")
		}
		schools = append(schools, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate schools")
	}
	return schools, nil
}

func (m *MySQLStore) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}
