package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"assetmanagement/internal/domain/models"
	"assetmanagement/internal/metrics"

	"golang.org/x/sync/singleflight"
)

// ErrNoValue is returned whenever the account service could not provide a value.
// Callers must treat it as "unknown", never as zero or empty.
var ErrNoValue = errors.New("account service returned no value")

// TokenSource provides the bearer token sent to the account service
type TokenSource interface {
	Token() (string, error)
}

// Client talks to the remote account service over HTTP.
// It implements services.AccountDirectory.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger

	// accounts coalesces identical in-flight account lookups; nothing is kept after they return.
	// Each caller waits on its own context.
	accounts singleflight.Group
}

// NewClient creates a new account service client
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// UsersForAccount returns the ids of the users associated with the account.
// GET {base}/cuenta/{id}/usuarios
func (c *Client) UsersForAccount(ctx context.Context, accountID int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/cuenta/%d/usuarios", c.baseURL, accountID)

	var users []models.AccountUser
	if err := c.getJSON(ctx, "users", endpoint, &users); err != nil {
		return nil, err
	}
	if users == nil {
		return nil, fmt.Errorf("users of account %d: %w", accountID, ErrNoValue)
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, strconv.FormatInt(u.ID, 10))
	}
	return ids, nil
}

// Account returns the account with its plan.
// GET {base}/cuenta?idCuenta={id}
func (c *Client) Account(ctx context.Context, accountID int) (*models.Account, error) {
	key := strconv.Itoa(accountID)
	flight := c.accounts.DoChan(key, func() (interface{}, error) {
		// The flight is shared: one caller's cancellation must not fail the others.
		// It stays bounded by the http.Client timeout.
		fetchCtx := context.WithoutCancel(ctx)
		endpoint := c.baseURL + "/cuenta?" + url.Values{"idCuenta": {key}}.Encode()

		var accounts []models.Account
		if err := c.getJSON(fetchCtx, "account", endpoint, &accounts); err != nil {
			return nil, err
		}
		if len(accounts) == 0 {
			return nil, fmt.Errorf("account %d: %w", accountID, ErrNoValue)
		}
		return &accounts[0], nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("account %d: %w: %w", accountID, ErrNoValue, ctx.Err())
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Account), nil
	}
}

// MaxAssets returns the plan's maxActivos limit
func (c *Client) MaxAssets(ctx context.Context, accountID int) (int, error) {
	acc, err := c.Account(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if acc.Plan == nil || acc.Plan.MaxAssets == nil {
		return 0, fmt.Errorf("asset limit of account %d: %w", accountID, ErrNoValue)
	}
	return *acc.Plan.MaxAssets, nil
}

// MaxCategories returns the plan's maxCategoriasActivos limit
func (c *Client) MaxCategories(ctx context.Context, accountID int) (int, error) {
	acc, err := c.Account(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if acc.Plan == nil || acc.Plan.MaxAssetCategories == nil {
		return 0, fmt.Errorf("category limit of account %d: %w", accountID, ErrNoValue)
	}
	return *acc.Plan.MaxAssetCategories, nil
}

// getJSON performs an authenticated GET and decodes the JSON body into dest.
// Every failure is wrapped with ErrNoValue.
func (c *Client) getJSON(ctx context.Context, name, endpoint string, dest interface{}) error {
	start := time.Now()
	err := c.doGetJSON(ctx, endpoint, dest)
	metrics.AccountLookupDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AccountLookups.WithLabelValues(name, "error").Inc()
		c.logger.Warn("account service request failed",
			"endpoint", name,
			"url", endpoint,
			"error", err,
		)
		return fmt.Errorf("%w: %v", ErrNoValue, err)
	}

	metrics.AccountLookups.WithLabelValues(name, "ok").Inc()
	return nil
}

func (c *Client) doGetJSON(ctx context.Context, endpoint string, dest interface{}) error {
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("issue service token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
