package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/gabrielcpolitano/ponto/internal/store"
)

// binKey caches the bin ID in the local store so repeated pushes reuse the
// same bin.
const binKey = "remote:bin"

// Mirror replicates the local store to a bin.
type Mirror struct {
	client *Client
	store  store.Store
	goal   int
}

// NewMirror creates a Mirror over the given client and store.
func NewMirror(client *Client, st store.Store, goalMinutes int) *Mirror {
	return &Mirror{client: client, store: st, goal: goalMinutes}
}

// BinID returns the linked bin ID, if any.
func (m *Mirror) BinID() (string, bool, error) {
	data, ok, err := m.store.Get(binKey)
	if err != nil || !ok {
		return "", false, err
	}
	return string(data), true, nil
}

// Push uploads the current snapshot, creating a bin on first use and
// caching its ID. It returns the bin ID.
func (m *Mirror) Push(ctx context.Context) (string, error) {
	snap, err := Build(m.store, m.goal, time.Now())
	if err != nil {
		return "", err
	}

	id, ok, err := m.BinID()
	if err != nil {
		return "", err
	}
	if !ok {
		id, err = m.client.Create(ctx, snap)
		if err != nil {
			return "", err
		}
		if err := m.store.Set(binKey, []byte(id)); err != nil {
			return "", err
		}
		return id, nil
	}

	if err := m.client.Replace(ctx, id, snap); err != nil {
		return "", err
	}
	return id, nil
}

// Pull downloads the bin snapshot and writes its day records into the
// local store. It returns the number of days written.
func (m *Mirror) Pull(ctx context.Context) (int, error) {
	id, ok, err := m.BinID()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("no remote bin linked yet; run a push first")
	}

	snap, err := m.client.FetchLatest(ctx, id)
	if err != nil {
		return 0, err
	}
	return Apply(m.store, snap)
}
