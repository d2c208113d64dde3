package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('orders','auto_runs')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["orders"])
	assert.True(t, found["auto_runs"])
}

func TestSQLiteRecordOrderRoundtrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	rec := OrderRecord{
		ID:          "01J000000000000000000000ZZ",
		Time:        time.Date(2025, 8, 20, 1, 2, 3, 0, time.UTC),
		StockCode:   "005930",
		StockName:   "삼성전자",
		Side:        "BUY",
		Quantity:    2,
		OrderPrice:  70000,
		OrderAmount: 140000,
		Status:      "OK",
	}

	require.NoError(t, j.RecordOrder(rec))

	got, err := j.GetOrder(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.StockCode, got.StockCode)
	assert.Equal(t, rec.StockName, got.StockName)
	assert.Equal(t, rec.Quantity, got.Quantity)
	assert.InDelta(t, rec.OrderPrice, got.OrderPrice, 1e-6)
	assert.True(t, got.Time.Equal(rec.Time))

	_, err = j.GetOrder("missing")
	assert.Error(t, err)
}

func TestSQLiteListOrdersBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	day := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"A1", "A2", "A3"} {
		require.NoError(t, j.RecordOrder(OrderRecord{
			ID:        id,
			Time:      day.Add(time.Duration(i) * time.Hour),
			StockCode: "005930",
			Side:      "BUY",
			Quantity:  1,
			Status:    "OK",
		}))
	}
	// Outside the window.
	require.NoError(t, j.RecordOrder(OrderRecord{
		ID: "B1", Time: day.Add(25 * time.Hour), StockCode: "005930", Side: "SELL", Quantity: 1, Status: "OK",
	}))

	recs, err := j.ListOrdersBetween(day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "A1", recs[0].ID)
	assert.Equal(t, "A3", recs[2].ID)
}

func TestSQLiteAutoRunRoundtrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	reward := 1.2
	ts := time.Date(2025, 8, 21, 9, 30, 0, 0, time.UTC)
	recs := []AutoRunRecord{
		{ID: "R1", RunID: "RUN1", Time: ts, Stock: "삼성전자", Code: "005930", ActionScore: 0.4, Action: "BUY", Reward: &reward},
		{ID: "R2", RunID: "RUN1", Time: ts, Stock: "NAVER", Code: "035420", ActionScore: -0.1, Action: "HOLD"},
	}
	require.NoError(t, j.RecordAutoRun(recs))

	got, err := j.ListRecentAutoRuns(10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := map[string]AutoRunRecord{}
	for _, r := range got {
		byID[r.ID] = r
	}
	require.NotNil(t, byID["R1"].Reward)
	assert.InDelta(t, 1.2, *byID["R1"].Reward, 1e-9)
	assert.Nil(t, byID["R2"].Reward)
	assert.Equal(t, "HOLD", byID["R2"].Action)
}
