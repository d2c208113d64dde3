package backend

import (
	"context"
	"strconv"
)

// Holding is one position row from the provider balance output.
type Holding struct {
	StockCode  string
	StockName  string
	Quantity   float64
	AvgPrice   float64
	BuyAmount  float64
	EvalAmount float64
	PnL        float64
}

// BalanceSummary is the provider's account-level summary row.
type BalanceSummary struct {
	Cash      float64
	TotalEval float64
	NetAssets float64
}

// Balance is the parsed provider balance: holdings plus the summary row.
type Balance struct {
	Holdings []Holding
	Summary  BalanceSummary
}

type balanceResponse struct {
	Raw map[string]any `json:"raw"`
}

// Balance fetches and parses the provider-shaped balance. The provider
// returns two arrays: output1 holds the positions and the first element of
// output2 is the summary row. A missing or empty array is an empty result,
// never an error.
func (c *Client) Balance(ctx context.Context) (Balance, error) {
	var res balanceResponse
	if err := c.gw.Get(ctx, "/accounts/balance", nil, &res); err != nil {
		return Balance{}, err
	}
	return parseBalance(res.Raw), nil
}

func parseBalance(raw map[string]any) Balance {
	var bal Balance

	if rows, ok := raw["output1"].([]any); ok {
		for _, r := range rows {
			row, ok := r.(map[string]any)
			if !ok {
				continue
			}
			bal.Holdings = append(bal.Holdings, Holding{
				StockCode:  str(row["pdno"]),
				StockName:  str(row["prdt_name"]),
				Quantity:   num(row["hldg_qty"]),
				AvgPrice:   num(row["pchs_avg_pric"]),
				BuyAmount:  num(row["pchs_amt"]),
				EvalAmount: num(row["evlu_amt"]),
				PnL:        num(row["evlu_pfls_amt"]),
			})
		}
	}

	if rows, ok := raw["output2"].([]any); ok && len(rows) > 0 {
		if row, ok := rows[0].(map[string]any); ok {
			bal.Summary = BalanceSummary{
				Cash:      num(row["dnca_tot_amt"]),
				TotalEval: num(row["tot_evlu_amt"]),
				NetAssets: num(row["nass_amt"]),
			}
		}
	}

	return bal
}

// The provider encodes numbers as strings ("10", "70000.0"); some fields
// come back as plain JSON numbers depending on the endpoint version.
func num(v any) float64 {
	switch x := v.(type) {
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return f
	case float64:
		return x
	}
	return 0
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
