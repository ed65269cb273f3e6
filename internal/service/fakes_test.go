package service

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/deppfellow/go-invoicing/internal/model"
)

type insertCall struct {
	input model.InvoiceInput
	date  string
}

type updateCall struct {
	id    string
	input model.InvoiceInput
}

type fakeStore struct {
	inserts []insertCall
	updates []updateCall
	deletes []string
	lists   int

	affected int64
	rows     []model.InvoiceRow
	err      error
}

func (f *fakeStore) Insert(_ context.Context, in model.InvoiceInput, date string) error {
	f.inserts = append(f.inserts, insertCall{input: in, date: date})
	return f.err
}

func (f *fakeStore) Update(_ context.Context, id string, in model.InvoiceInput) (int64, error) {
	f.updates = append(f.updates, updateCall{id: id, input: in})
	if f.err != nil {
		return 0, f.err
	}
	return f.affected, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) (int64, error) {
	f.deletes = append(f.deletes, id)
	if f.err != nil {
		return 0, f.err
	}
	return f.affected, nil
}

func (f *fakeStore) List(_ context.Context, _ int) ([]model.InvoiceRow, error) {
	f.lists++
	return f.rows, f.err
}

type fakeCache struct {
	entries     map[string][]byte
	revalidated []string
	err         error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, path string, dest any) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	raw, ok := c.entries[path]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, path string, v any) error {
	if c.err != nil {
		return c.err
	}
	raw, err := json.Marshal(v)
	c.entries[path] = raw
	return err
}

func (c *fakeCache) Revalidate(_ context.Context, path string) error {
	c.revalidated = append(c.revalidated, path)
	delete(c.entries, path)
	return c.err
}

type fakeNotifier struct {
	activities []model.InvoiceActivity
	err        error
}

func (n *fakeNotifier) NotifyInvoiceActivity(_ context.Context, a model.InvoiceActivity) error {
	n.activities = append(n.activities, a)
	return n.err
}

type fakeSignIn struct {
	providerID string
	form       url.Values
	user       *model.User
	err        error
}

func (f *fakeSignIn) SignIn(_ context.Context, providerID string, form url.Values) (*model.User, error) {
	f.providerID, f.form = providerID, form
	return f.user, f.err
}
