// Package supabase is the hosted store adapter. It speaks the Supabase
// PostgREST API directly: one table per entity, the same soft-delete
// status column as the relational adapter, filters expressed as query
// parameters. Services see the exact same store.Store contract.
package supabase

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

	"go.uber.org/zap"

	"github.com/roden1999/money-tracking-app/internal/store"
)

// Store implements store.Store against a Supabase project.
type Store struct {
	baseURL string
	key     string
	client  *http.Client
	log     *zap.SugaredLogger
}

// New validates the project coordinates and builds the adapter.
func New(baseURL, key string, log *zap.SugaredLogger) (*Store, error) {
	if baseURL == "" || key == "" {
		return nil, fmt.Errorf("supabase url and key are required")
	}
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}, nil
}

func (s *Store) Users() store.UserStore               { return &userStore{s} }
func (s *Store) Wallets() store.WalletStore           { return &walletStore{s} }
func (s *Store) Transactions() store.TransactionStore { return &transactionStore{s} }
func (s *Store) Outbox() store.OutboxStore            { return &outboxStore{s} }

func (s *Store) Close() error { return nil }

// do sends one PostgREST request. Writes ask for the stored
// representation back so generated ids reach the caller.
func (s *Store) do(ctx context.Context, method, table string, query url.Values, body interface{}, out interface{}) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", table, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, table, resp.StatusCode, msg)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", table, err)
	}
	return nil
}

// eq builds a PostgREST equality filter value.
func eq(v interface{}) string { return fmt.Sprintf("eq.%v", v) }

// in builds a PostgREST membership filter value.
func in(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "in.(" + strings.Join(parts, ",") + ")"
}
