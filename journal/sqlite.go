package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordOrder(o OrderRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO orders
		(id, time, stock_code, stock_name, side, quantity, order_price, order_amount, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Time, o.StockCode, o.StockName, o.Side,
		o.Quantity, o.OrderPrice, o.OrderAmount, o.Status,
	)
	return err
}

func (j *SQLite) RecordAutoRun(recs []AutoRunRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}

	for _, r := range recs {
		var reward sql.NullFloat64
		if r.Reward != nil {
			reward = sql.NullFloat64{Float64: *r.Reward, Valid: true}
		}
		if _, err := tx.Exec(`
			INSERT INTO auto_runs
			(id, run_id, time, stock, code, action_score, action, reward)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.RunID, r.Time, r.Stock, r.Code, r.ActionScore, r.Action, reward,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// GetOrder looks up one submitted order by its ULID.
func (j *SQLite) GetOrder(id string) (OrderRecord, error) {
	row := j.db.QueryRow(`
		SELECT id, time, stock_code, stock_name, side, quantity, order_price, order_amount, status
		FROM orders WHERE id = ?`, id)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return OrderRecord{}, fmt.Errorf("order %s not found", id)
	}
	return o, err
}

// ListOrdersBetween returns orders submitted in [start, end), oldest first.
func (j *SQLite) ListOrdersBetween(start, end time.Time) ([]OrderRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, stock_code, stock_name, side, quantity, order_price, order_amount, status
		FROM orders WHERE time >= ? AND time < ? ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderRecord
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListRecentAutoRuns returns the newest limit auto-run decisions.
func (j *SQLite) ListRecentAutoRuns(limit int) ([]AutoRunRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, run_id, time, stock, code, action_score, action, reward
		FROM auto_runs ORDER BY time DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AutoRunRecord
	for rows.Next() {
		var r AutoRunRecord
		var reward sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.RunID, &r.Time, &r.Stock, &r.Code, &r.ActionScore, &r.Action, &reward); err != nil {
			return nil, err
		}
		if reward.Valid {
			v := reward.Float64
			r.Reward = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (OrderRecord, error) {
	var o OrderRecord
	err := s.Scan(&o.ID, &o.Time, &o.StockCode, &o.StockName, &o.Side,
		&o.Quantity, &o.OrderPrice, &o.OrderAmount, &o.Status)
	return o, err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
