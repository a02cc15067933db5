package application

import (
	"context"

	"github.com/ericfisherdev/noteclip/internal/domain/model"
	"github.com/ericfisherdev/noteclip/internal/domain/port/driven"
)

// --- Fake implementations shared by discovery and save tests ---

type fakeNotionClient struct {
	collections []model.Collection
	listErr     error
	listCalls   int

	detail     *model.CollectionDetail
	detailErr  error
	getCalls   int

	queryRecord *model.Record
	queryErr    error
	queryCalls  int
	queriedField string
	queriedTitle string

	created      *model.Record
	createErr    error
	createCalls  int
	createParams driven.CreateRecordParams

	appendErr      error
	appendCalls    int
	appendedID     string
	appendedBlocks []model.Block
}

func (f *fakeNotionClient) ListCollections(_ context.Context) ([]model.Collection, error) {
	f.listCalls++
	return f.collections, f.listErr
}

func (f *fakeNotionClient) GetCollection(_ context.Context, _ string) (*model.CollectionDetail, error) {
	f.getCalls++
	return f.detail, f.detailErr
}

func (f *fakeNotionClient) QueryRecordByTitle(_ context.Context, _, titleField, title string) (*model.Record, error) {
	f.queryCalls++
	f.queriedField = titleField
	f.queriedTitle = title
	return f.queryRecord, f.queryErr
}

func (f *fakeNotionClient) CreateRecord(_ context.Context, params driven.CreateRecordParams) (*model.Record, error) {
	f.createCalls++
	f.createParams = params
	return f.created, f.createErr
}

func (f *fakeNotionClient) AppendBlocks(_ context.Context, recordID string, blocks []model.Block) error {
	f.appendCalls++
	f.appendedID = recordID
	f.appendedBlocks = blocks
	return f.appendErr
}

type fakeCacheStore struct {
	entry  *model.CollectionCache
	getErr error
	puts   []model.CollectionCache
	putErr error
}

func (f *fakeCacheStore) Get(_ context.Context) (*model.CollectionCache, error) {
	return f.entry, f.getErr
}

func (f *fakeCacheStore) Put(_ context.Context, cache model.CollectionCache) error {
	f.puts = append(f.puts, cache)
	return f.putErr
}

type fakeSettingsStore struct {
	settings model.Settings
	getErr   error
}

func (f *fakeSettingsStore) Get(_ context.Context) (model.Settings, error) {
	return f.settings, f.getErr
}

func (f *fakeSettingsStore) Put(_ context.Context, settings model.Settings) error {
	f.settings = settings
	return nil
}
