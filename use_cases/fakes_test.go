package use_cases

import (
	"context"
	"fmt"
	"sync"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// fakeWordPressAPI records every call and serves canned responses.
type fakeWordPressAPI struct {
	mu sync.Mutex

	terms       map[models.TermType][]models.Term
	listErr     error
	createErr   error
	nextTermID  int
	uploadErr   error
	nextAssetID int64
	postErr     error
	fallbackOK  bool // when postErr is set, the retry without taxonomy succeeds
	postResult  *models.PostResult

	uploads     []*models.MediaUploadRequest
	created     []string
	posts       []models.PostRequest
	listCalls   int
	uploadCalls int
}

func newFakeWordPressAPI() *fakeWordPressAPI {
	return &fakeWordPressAPI{
		terms:       make(map[models.TermType][]models.Term),
		nextTermID:  100,
		nextAssetID: 500,
		postResult:  &models.PostResult{ID: 42, URL: "https://blog.example.com/?p=42"},
	}
}

func (f *fakeWordPressAPI) UploadMedia(ctx context.Context, req *models.MediaUploadRequest) (*models.MediaAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads = append(f.uploads, req)
	f.nextAssetID++
	return &models.MediaAsset{
		ID:  f.nextAssetID,
		URL: fmt.Sprintf("https://blog.example.com/wp-content/uploads/%s", req.Filename),
	}, nil
}

func (f *fakeWordPressAPI) ListTerms(ctx context.Context, termType models.TermType) ([]models.Term, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.terms[termType], nil
}

func (f *fakeWordPressAPI) CreateTerm(ctx context.Context, termType models.TermType, name string) (*models.Term, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextTermID++
	f.created = append(f.created, name)
	return &models.Term{ID: f.nextTermID, Name: name}, nil
}

func (f *fakeWordPressAPI) CreatePost(ctx context.Context, req models.PostRequest) (*models.PostResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, req)
	if f.postErr != nil {
		if f.fallbackOK && !req.HasTaxonomy() {
			return f.postResult, nil
		}
		return nil, f.postErr
	}
	return f.postResult, nil
}

var _ ports.WordPressAPI = (*fakeWordPressAPI)(nil)

// fakeFetcher serves fixed bytes per URL.
type fakeFetcher struct {
	mu      sync.Mutex
	data    map[string][]byte
	ctype   string
	err     error
	fetched []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{data: make(map[string][]byte), ctype: "image/jpeg"}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, url)
	if f.err != nil {
		return nil, "", f.err
	}
	if d, ok := f.data[url]; ok {
		return d, f.ctype, nil
	}
	return []byte("fake-image-bytes"), f.ctype, nil
}

var _ ports.ImageFetcherPort = (*fakeFetcher)(nil)

// fakeStorage - in-memory object store.
type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr map[string]error // per-key failures
	publicURL string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects:   make(map[string][]byte),
		uploadErr: make(map[string]error),
		publicURL: "https://cdn.example.com",
	}
}

func (f *fakeStorage) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.uploadErr[path]; err != nil {
		return err
	}
	f.objects[path] = data
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[path]
	return ok, nil
}

func (f *fakeStorage) GetPublicURL(path string) string {
	return f.publicURL + "/" + path
}

var _ ports.StoragePort = (*fakeStorage)(nil)

// fakeWebhookAPI records calls.
type fakeWebhookAPI struct {
	err    error
	url    string
	calls  int
	titles []string
}

func (f *fakeWebhookAPI) CreateContent(ctx context.Context, title, content, status string) (string, error) {
	f.calls++
	f.titles = append(f.titles, title)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

var _ ports.WebhookAPI = (*fakeWebhookAPI)(nil)

// countingPublisher is a router test double that counts Publish calls.
type countingPublisher struct {
	platform models.Platform
	supports map[models.SourceType]bool
	calls    int
	dest     *models.PublishedDestination
	err      error
}

func (c *countingPublisher) Platform() models.Platform { return c.platform }

func (c *countingPublisher) Supports(sourceType models.SourceType) bool {
	return c.supports[sourceType]
}

func (c *countingPublisher) Publish(ctx context.Context, item *models.ContentItem, channel *models.Channel) (*models.PublishedDestination, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.dest, nil
}

var _ ports.ChannelPublisherPort = (*countingPublisher)(nil)

// fakeMessenger collects progress traffic.
type fakeMessenger struct {
	mu        sync.Mutex
	progress  []*models.ProgressUpdate
	completed []string
	failed    []string
}

func (f *fakeMessenger) SendProgress(ctx context.Context, update *models.ProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.progress = append(f.progress, update)
	return nil
}

func (f *fakeMessenger) SendCompleted(ctx context.Context, workItemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, workItemID)
	return nil
}

func (f *fakeMessenger) SendFailed(ctx context.Context, workItemID string, cause error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = append(f.failed, workItemID)
	return nil
}

var _ ports.MessengerPort = (*fakeMessenger)(nil)

// fakeStore implements all three store ports over maps.
type fakeStore struct {
	mu sync.Mutex

	items    map[string]*models.ContentItem
	channels map[string]*models.Channel
	work     map[string]*models.WorkItem

	appended   []*models.PublishedDestination
	channelErr error
	itemErr    error
	workErr    error
	markErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:    make(map[string]*models.ContentItem),
		channels: make(map[string]*models.Channel),
		work:     make(map[string]*models.WorkItem),
	}
}

func (f *fakeStore) GetContentItem(ctx context.Context, id string, sourceType models.SourceType) (*models.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.itemErr != nil {
		return nil, f.itemErr
	}
	item, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("content item %s not found", id)
	}
	return item, nil
}

func (f *fakeStore) AppendDestination(ctx context.Context, itemID string, dest *models.PublishedDestination) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, dest)
	return nil
}

func (f *fakeStore) GetChannel(ctx context.Context, id string) (*models.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	ch, ok := f.channels[id]
	if !ok {
		return nil, fmt.Errorf("channel %s not found", id)
	}
	return ch, nil
}

func (f *fakeStore) CreateWorkItem(ctx context.Context, item *models.WorkItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.work[item.ID] = item
	return nil
}

func (f *fakeStore) GetWorkItem(ctx context.Context, id string) (*models.WorkItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.workErr != nil {
		return nil, f.workErr
	}
	w, ok := f.work[id]
	if !ok {
		return nil, fmt.Errorf("work item %s not found", id)
	}
	return w, nil
}

func (f *fakeStore) MarkPublishing(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	if w, ok := f.work[id]; ok {
		w.Status = models.WorkStatusPublishing
	}
	return nil
}

func (f *fakeStore) Complete(ctx context.Context, id string, status string, log string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.work[id]; ok {
		w.Status = status
		w.Log = log
	}
	return nil
}

var (
	_ ports.ContentStorePort = (*fakeStore)(nil)
	_ ports.ChannelStorePort = (*fakeStore)(nil)
	_ ports.QueueStorePort   = (*fakeStore)(nil)
)
