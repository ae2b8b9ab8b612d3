package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/store"
)

const userTable = "users"

type userRow struct {
	ID           uint64 `json:"id,omitempty"`
	UserName     string `json:"user_name"`
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Status       string `json:"status"`
}

func (r userRow) toModel() model.User {
	return model.User{
		ID:           r.ID,
		UserName:     r.UserName,
		FirstName:    r.FirstName,
		MiddleName:   r.MiddleName,
		LastName:     r.LastName,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Status:       r.Status,
	}
}

type userStore struct {
	s *Store
}

func (us *userStore) Add(ctx context.Context, u *model.User) error {
	status := u.Status
	if status == "" {
		status = string(ledger.StatusActive)
	}
	row := userRow{
		UserName:     u.UserName,
		FirstName:    u.FirstName,
		MiddleName:   u.MiddleName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Status:       status,
	}
	var created []userRow
	if err := us.s.do(ctx, http.MethodPost, userTable, nil, []userRow{row}, &created); err != nil {
		return err
	}
	if len(created) == 1 {
		*u = created[0].toModel()
	}
	return nil
}

// FindByNameOrEmail looks up by username then email as two plain eq
// filters. Composing them into one or=() tree would let commas or
// parens in a registered name rewrite the filter, since PostgREST
// treats those as logic-tree syntax.
func (us *userStore) FindByNameOrEmail(ctx context.Context, name, email string) (*model.User, error) {
	if u, err := us.findOneBy(ctx, "user_name", name); err == nil {
		return u, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return us.findOneBy(ctx, "email", email)
}

func (us *userStore) findOneBy(ctx context.Context, column, value string) (*model.User, error) {
	q := url.Values{}
	q.Set(column, eq(value))
	q.Set("status", eq(ledger.StatusActive))
	var rows []userRow
	if err := us.s.do(ctx, http.MethodGet, userTable, q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	u := rows[0].toModel()
	return &u, nil
}

func (us *userStore) Get(ctx context.Context, id uint64) (*model.User, error) {
	q := url.Values{}
	q.Set("id", eq(id))
	q.Set("status", eq(ledger.StatusActive))
	var rows []userRow
	if err := us.s.do(ctx, http.MethodGet, userTable, q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	u := rows[0].toModel()
	return &u, nil
}

func (us *userStore) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	q := url.Values{}
	q.Set("id", eq(id))
	q.Set("status", eq(ledger.StatusActive))
	patch := map[string]interface{}{"password_hash": hash}
	var updated []userRow
	if err := us.s.do(ctx, http.MethodPatch, userTable, q, patch, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return store.ErrNotFound
	}
	return nil
}
