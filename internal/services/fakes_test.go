package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/credvault/internal/store"
)

// ---- fake store ----

// memStore keeps records in memory and counts calls.
type memStore struct {
	records store.Records
	SaveErr error

	LoadCalls int
	SaveCalls int
}

func newMemStore(seed store.Records) *memStore {
	if seed == nil {
		seed = store.Records{}
	}
	return &memStore{records: seed}
}

func (m *memStore) Load(ctx context.Context) store.Records {
	m.LoadCalls++
	return m.records.Clone()
}

func (m *memStore) Save(ctx context.Context, records store.Records) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.records = records.Clone()
	return nil
}

func (m *memStore) Path() string { return "mem" }

// ---- fake prompter ----

type attempt struct {
	username, password string
}

type rejection struct {
	err       error
	remaining int
}

// scriptedPrompter replays attempts and fails with io.EOF-like Err once the
// script runs out.
type scriptedPrompter struct {
	attempts []attempt
	Err      error

	Calls      int
	Remaining  []int
	Rejections []rejection
}

var errScriptDone = errors.New("script exhausted")

func (p *scriptedPrompter) Credentials(ctx context.Context, remaining int) (string, string, error) {
	p.Calls++
	p.Remaining = append(p.Remaining, remaining)
	if p.Err != nil {
		return "", "", p.Err
	}
	if len(p.attempts) == 0 {
		return "", "", errScriptDone
	}
	a := p.attempts[0]
	p.attempts = p.attempts[1:]
	return a.username, a.password, nil
}

func (p *scriptedPrompter) Rejected(ctx context.Context, err error, remaining int) {
	p.Rejections = append(p.Rejections, rejection{err: err, remaining: remaining})
}
