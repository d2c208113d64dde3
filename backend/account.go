package backend

import "context"

// AccountStatus reports whether the session has a usable brokerage-account
// configuration. The backend is authoritative; this is a cached copy.
// When HasConfig is false the remaining fields are empty.
type AccountStatus struct {
	HasConfig       bool   `json:"has_config"`
	AccountNoMasked string `json:"account_no_masked,omitempty"`
	AccountCode     string `json:"account_code,omitempty"`
	RealMode        bool   `json:"real_mode,omitempty"`
}

// AccountConfig is a brokerage-account registration: the provider account
// number and API credentials the backend trades through.
type AccountConfig struct {
	AccountNo   string `json:"account_no"`
	AccountCode string `json:"account_code"`
	AppKey      string `json:"app_key"`
	AppSecret   string `json:"app_secret"`
	RealMode    bool   `json:"real_mode"`
}

type savedAccount struct {
	AccountNoMasked string `json:"account_no_masked"`
	AccountCode     string `json:"account_code"`
	RealMode        bool   `json:"real_mode"`
}

// AccountStatus queries the current session's account configuration.
func (c *Client) AccountStatus(ctx context.Context) (AccountStatus, error) {
	var st AccountStatus
	if err := c.gw.Get(ctx, "/me/account", c.tokenQuery(), &st); err != nil {
		return AccountStatus{}, err
	}
	return st, nil
}

// SaveAccount registers or replaces the account configuration.
func (c *Client) SaveAccount(ctx context.Context, cfg AccountConfig) (AccountStatus, error) {
	var saved savedAccount
	if err := c.gw.Put(ctx, "/me/account", c.tokenQuery(), nil, cfg, &saved); err != nil {
		return AccountStatus{}, err
	}
	return AccountStatus{
		HasConfig:       true,
		AccountNoMasked: saved.AccountNoMasked,
		AccountCode:     saved.AccountCode,
		RealMode:        saved.RealMode,
	}, nil
}
