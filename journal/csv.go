package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV appends order and auto-run records to two plain CSV files.
// Append-only: no query support, use the sqlite backend for that.
type CSV struct {
	orders *csv.Writer
	runs   *csv.Writer
	of, rf *os.File
}

func NewCSV(ordersPath, runsPath string) (*CSV, error) {
	of, created, err := openAppend(ordersPath)
	if err != nil {
		return nil, err
	}
	rf, rCreated, err := openAppend(runsPath)
	if err != nil {
		of.Close()
		return nil, err
	}

	ow := csv.NewWriter(of)
	rw := csv.NewWriter(rf)

	if created {
		if err := ow.Write([]string{"id", "time", "stock_code", "stock_name", "side", "quantity", "order_price", "order_amount", "status"}); err != nil {
			return nil, err
		}
		ow.Flush()
		if err := ow.Error(); err != nil {
			return nil, err
		}
	}
	if rCreated {
		if err := rw.Write([]string{"id", "run_id", "time", "stock", "code", "action_score", "action", "reward"}); err != nil {
			return nil, err
		}
		rw.Flush()
		if err := rw.Error(); err != nil {
			return nil, err
		}
	}

	return &CSV{orders: ow, runs: rw, of: of, rf: rf}, nil
}

func openAppend(path string) (*os.File, bool, error) {
	_, statErr := os.Stat(path)
	created := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, false, err
	}
	return f, created, nil
}

func (j *CSV) RecordOrder(o OrderRecord) error {
	err := j.orders.Write([]string{
		o.ID,
		o.Time.Format(time.RFC3339),
		o.StockCode,
		o.StockName,
		o.Side,
		strconv.Itoa(o.Quantity),
		f(o.OrderPrice),
		f(o.OrderAmount),
		o.Status,
	})
	if err != nil {
		return err
	}

	j.orders.Flush()
	return j.orders.Error()
}

func (j *CSV) RecordAutoRun(recs []AutoRunRecord) error {
	for _, r := range recs {
		reward := ""
		if r.Reward != nil {
			reward = f(*r.Reward)
		}
		err := j.runs.Write([]string{
			r.ID,
			r.RunID,
			r.Time.Format(time.RFC3339),
			r.Stock,
			r.Code,
			f(r.ActionScore),
			r.Action,
			reward,
		})
		if err != nil {
			return err
		}
	}

	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSV) Close() error {
	j.orders.Flush()
	if err := j.orders.Error(); err != nil {
		return err
	}
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}

	if err := j.of.Close(); err != nil {
		return err
	}
	return j.rf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
