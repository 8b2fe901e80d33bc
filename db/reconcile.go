package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"schoolapi/metrics"
)

// errMultiplePrimaryKey is ER_MULTIPLE_PRI_KEY.
const errMultiplePrimaryKey = 1068

const (
	stepConnect             = "connect"
	stepEnsureTable         = "ensure_table"
	stepInspectIDColumn     = "inspect_id_column"
	stepRepairPrimaryKey    = "repair_primary_key"
	stepRepairAutoIncrement = "repair_auto_increment"
)

// Reconciler brings the schools table to the expected shape without
// touching existing rows. It never fails the caller: each step logs its own
// error and the remaining independent steps still run.
type Reconciler struct {
	db     *sql.DB
	schema string
	table  string
	log    *zap.Logger
}

type Report struct {
	TableEnsured     bool
	Inspected        bool
	HadAutoIncrement bool
	HadPrimaryKey    bool
	Applied          []string
	Errors           map[string]error
}

func (r Report) OK() bool { return len(r.Errors) == 0 }

type idColumn struct {
	Extra     string
	ColumnKey string
}

func (c idColumn) autoIncrement() bool {
	return strings.Contains(strings.ToLower(c.Extra), "auto_increment")
}

func (c idColumn) primaryKey() bool {
	return c.ColumnKey == "PRI"
}

func NewReconciler(db *sql.DB, schema, table string, log *zap.Logger) *Reconciler {
	return &Reconciler{db: db, schema: schema, table: table, log: log.Named("reconciler")}
}

// Start reconciles in the background once the store answers a ping, and
// returns right away. The whole attempt, ping included, is bounded by
// timeout. The channel yields one Report and is then closed.
func (r *Reconciler) Start(ctx context.Context, timeout time.Duration) <-chan Report {
	done := make(chan Report, 1)
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		report := Report{Errors: map[string]error{}}
		if r.step(stepConnect, errors.Wrap(r.db.PingContext(ctx), "ping mysql"), &report) != nil {
			done <- report
			return
		}
		done <- r.Run(ctx)
	}()
	return done
}

func (r *Reconciler) Run(ctx context.Context) Report {
	report := Report{Errors: map[string]error{}}

	if err := r.step(stepEnsureTable, r.ensureTable(ctx), &report); err != nil {
		return report
	}
	report.TableEnsured = true

	col, err := r.inspectIDColumn(ctx)
	if r.step(stepInspectIDColumn, err, &report) != nil {
		return report
	}
	report.Inspected = true
	report.HadAutoIncrement = col.autoIncrement()
	report.HadPrimaryKey = col.primaryKey()

	// MySQL only allows AUTO_INCREMENT on a key column, so the key goes first.
	if !report.HadPrimaryKey {
		altered, err := r.repairPrimaryKey(ctx)
		if r.step(stepRepairPrimaryKey, err, &report) == nil && altered {
			report.Applied = append(report.Applied, stepRepairPrimaryKey)
		}
	}
	if !report.HadAutoIncrement {
		if r.step(stepRepairAutoIncrement, r.repairAutoIncrement(ctx), &report) == nil {
			report.Applied = append(report.Applied, stepRepairAutoIncrement)
		}
	}

	if report.OK() {
		r.log.Info("schema reconciled",
			zap.String("table", r.table),
			zap.Strings("applied", report.Applied))
	}
	return report
}

func (r *Reconciler) step(name string, err error, report *Report) error {
	metrics.ObserveStep(name, err)
	if err != nil {
		report.Errors[name] = err
		r.log.Error("reconcile step failed",
			zap.String("step", name),
			zap.String("table", r.table),
			zap.Error(err))
	}
	return err
}

func (r *Reconciler) ensureTable(ctx context.Context) error {
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
		"id INT NOT NULL AUTO_INCREMENT, "+
		"name VARCHAR(255) NOT NULL, "+
		"address VARCHAR(255) NOT NULL, "+
		"latitude DECIMAL(10,6) NOT NULL, "+
		"longitude DECIMAL(10,6) NOT NULL, "+
		"PRIMARY KEY (id))", r.table)
	_, err := r.db.ExecContext(ctx, ddl)
	return errors.Wrap(err, "create table")
}

func (r *Reconciler) inspectIDColumn(ctx context.Context) (idColumn, error) {
	var col idColumn
	var extra, key sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT EXTRA, COLUMN_KEY FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND COLUMN_NAME = 'id'",
		r.schema, r.table,
	).Scan(&extra, &key)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// No metadata row: treat both attributes as missing.
		return col, nil
	case err != nil:
		return col, errors.Wrap(err, "inspect id column")
	}
	col.Extra = extra.String
	col.ColumnKey = key.String
	return col, nil
}

func (r *Reconciler) repairAutoIncrement(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE `%s` MODIFY COLUMN id INT NOT NULL AUTO_INCREMENT", r.table))
	return errors.Wrap(err, "set id AUTO_INCREMENT")
}

// repairPrimaryKey reports altered=false without error when another column
// already holds the primary key.
func (r *Reconciler) repairPrimaryKey(ctx context.Context) (altered bool, err error) {
	_, err = r.db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE `%s` ADD PRIMARY KEY (id)", r.table))
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errMultiplePrimaryKey {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "add PRIMARY KEY on id")
	}
	return true, nil
}
