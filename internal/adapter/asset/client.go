package asset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trustlend-backend/internal/domain/asset"
)

// Client talks to the external asset issuer over HTTP. It implements
// asset.Transfer; the issuer owns custody, this service only instructs
// pull-based moves the borrower has pre-authorized.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ asset.Transfer = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type balanceResp struct {
	Balance uint64 `json:"balance"`
}

type allowanceResp struct {
	Allowance uint64 `json:"allowance"`
}

type transferReq struct {
	Spender string `json:"spender"`
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  uint64 `json:"amount"`
}

type errorResp struct {
	Error string `json:"error"`
}

func (c *Client) BalanceOf(ctx context.Context, owner string) (uint64, error) {
	var out balanceResp
	if err := c.getJSON(ctx, "/balances/"+url.PathEscape(owner), &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

func (c *Client) Allowance(ctx context.Context, owner, spender string) (uint64, error) {
	var out allowanceResp
	path := "/allowances/" + url.PathEscape(owner) + "/" + url.PathEscape(spender)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return 0, err
	}
	return out.Allowance, nil
}

func (c *Client) TransferFrom(ctx context.Context, spender, from, to string, amount uint64) error {
	body, err := json.Marshal(transferReq{Spender: spender, From: from, To: to, Amount: amount})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		return nil
	case res.StatusCode >= 400 && res.StatusCode < 500:
		// insufficient balance/allowance, unknown party: a decline, not an
		// outage
		var er errorResp
		_ = json.NewDecoder(res.Body).Decode(&er)
		if er.Error == "" {
			er.Error = res.Status
		}
		return fmt.Errorf("%w: %s", asset.ErrRejected, er.Error)
	default:
		return fmt.Errorf("asset issuer: unexpected status %s", res.Status)
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("asset issuer: %s: %s", res.Status, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(res.Body).Decode(out)
}
