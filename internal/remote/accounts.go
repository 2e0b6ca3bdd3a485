package remote

import (
	"context"
	"net/http"

	"github.com/ganot/unolims/internal/domain/account"
	"github.com/ganot/unolims/internal/domain/dashboard"
)

// AccountRepository implements account.Repository over the API.
type AccountRepository struct {
	client *Client
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(client *Client) *AccountRepository {
	return &AccountRepository{client: client}
}

// Login returns the session. A success reply without a body is treated as a refusal.
func (r *AccountRepository) Login(ctx context.Context, creds account.Credentials) (*account.Session, error) {
	var out account.Session
	err := r.client.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   creds,
		out:    &out,
		single: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AccountRepository) Register(ctx context.Context, reg account.Registration) error {
	return r.client.post(ctx, "/auth/cadastrar", reg, nil)
}

// DashboardRepository implements dashboard.Repository over the API.
type DashboardRepository struct {
	client *Client
}

// NewDashboardRepository creates a new dashboard repository.
func NewDashboardRepository(client *Client) *DashboardRepository {
	return &DashboardRepository{client: client}
}

func (r *DashboardRepository) Get(ctx context.Context) (*dashboard.Summary, error) {
	var out dashboard.Summary
	err := r.client.do(ctx, call{method: http.MethodGet, path: "/dashboard", out: &out, single: true})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
