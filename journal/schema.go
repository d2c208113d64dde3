package journal

// Schema creates the journal tables. Idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	id           TEXT PRIMARY KEY,
	time         TIMESTAMP NOT NULL,
	stock_code   TEXT NOT NULL,
	stock_name   TEXT,
	side         TEXT NOT NULL,
	quantity     INTEGER NOT NULL,
	order_price  REAL,
	order_amount REAL,
	status       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_time ON orders(time);
CREATE INDEX IF NOT EXISTS idx_orders_stock ON orders(stock_code);

CREATE TABLE IF NOT EXISTS auto_runs (
	id           TEXT PRIMARY KEY,
	run_id       TEXT NOT NULL,
	time         TIMESTAMP NOT NULL,
	stock        TEXT,
	code         TEXT NOT NULL,
	action_score REAL NOT NULL,
	action       TEXT NOT NULL,
	reward       REAL
);
CREATE INDEX IF NOT EXISTS idx_auto_runs_run ON auto_runs(run_id);
CREATE INDEX IF NOT EXISTS idx_auto_runs_time ON auto_runs(time);
`
