package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roden1999/money-tracking-app/internal/store"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	s, err := New(srv.URL, "test-key", zap.NewNop().Sugar())
	require.NoError(t, err)
	return s
}

func TestFindByNameOrEmail(t *testing.T) {
	var queries []string
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		if r.URL.Query().Get("email") == "eq.roden@example.com" {
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{"id": 7, "user_name": "roden", "email": "roden@example.com", "status": "active"},
			})
			return
		}
		w.Write([]byte("[]"))
	})

	u, err := s.Users().FindByNameOrEmail(context.Background(), "roden@example.com", "roden@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u.ID)

	// username miss first, then the email hit, each a plain eq filter
	require.Len(t, queries, 2)
}

func TestFindByNameOrEmailFilterCharactersStayLiteral(t *testing.T) {
	hostile := "x,status.eq.deleted)"
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		// the hostile name must arrive as one opaque eq value, not as
		// extra filter clauses
		assert.Equal(t, "eq."+hostile, r.URL.Query().Get("user_name"))
		assert.Empty(t, r.URL.Query().Get("or"))
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 3, "user_name": hostile, "status": "active"},
		})
	})

	u, err := s.Users().FindByNameOrEmail(context.Background(), hostile, hostile)
	require.NoError(t, err)
	assert.Equal(t, hostile, u.UserName)
}

func TestFindByNameOrEmailNotFound(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})

	_, err := s.Users().FindByNameOrEmail(context.Background(), "ghost", "ghost@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
