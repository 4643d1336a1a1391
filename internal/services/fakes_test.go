package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"rolereader/resume-matcher/internal/models"
	"rolereader/resume-matcher/internal/repositories"
)

type memoryRepo struct {
	mu      sync.Mutex
	nextID  uint
	rows    map[uint]models.Comparison
	listErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[uint]models.Comparison)}
}

func (r *memoryRepo) Create(_ context.Context, c *models.Comparison) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Date(2024, 1, 1, 0, 0, int(c.ID), 0, time.UTC)
	r.rows[c.ID] = *c
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id uint) (*models.Comparison, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrComparisonNotFound
	}
	return &c, nil
}

func (r *memoryRepo) FindByIDs(_ context.Context, ids []uint) ([]models.Comparison, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comparison
	for _, id := range ids {
		if c, ok := r.rows[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryRepo) sorted(desc bool) []models.Comparison {
	out := make([]models.Comparison, 0, len(r.rows))
	for _, c := range r.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memoryRepo) List(_ context.Context, limit, offset int) ([]models.Comparison, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	all := r.sorted(true)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repositories.ErrComparisonNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memoryRepo) MarkIndexed(_ context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return repositories.ErrComparisonNotFound
	}
	c.IndexedAt = &at
	r.rows[id] = c
	return nil
}

func (r *memoryRepo) FindUnindexed(_ context.Context, limit int) ([]models.Comparison, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comparison
	for _, c := range r.sorted(false) {
		if c.IndexedAt == nil {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memoryRepo) FindAfterID(_ context.Context, afterID uint, limit int) ([]models.Comparison, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comparison
	for _, c := range r.sorted(false) {
		if c.ID > afterID {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memoryRepo) indexedAt(id uint) *time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id].IndexedAt
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[uint]models.ComparisonResponse
	gets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[uint]models.ComparisonResponse)}
}

func (c *memoryCache) Get(_ context.Context, id uint) (*models.ComparisonResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	resp, ok := c.entries[id]
	if !ok {
		return nil, repositories.ErrCacheMiss
	}
	return &resp, nil
}

func (c *memoryCache) Set(_ context.Context, resp models.ComparisonResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[resp.ID] = resp
	return nil
}

func (c *memoryCache) Delete(_ context.Context, id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

func (c *memoryCache) has(id uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

type recordingQueue struct {
	mu   sync.Mutex
	jobs []IndexJob
}

func (q *recordingQueue) EnqueueJob(job IndexJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
}

func (q *recordingQueue) enqueued() []uint {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := make([]uint, 0, len(q.jobs))
	for _, job := range q.jobs {
		ids = append(ids, job.ComparisonID)
	}
	return ids
}

func (q *recordingQueue) enqueuedJobs() []IndexJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]IndexJob(nil), q.jobs...)
}

type stubEnhancer struct {
	suggestions []string
	err         error
	calls       int
}

func (e *stubEnhancer) Suggest(context.Context, string, string, []string) ([]string, error) {
	e.calls++
	return e.suggestions, e.err
}

type fakeIndex struct {
	mu       sync.Mutex
	hits     []SearchResult
	stored   map[uint][]float32
	indexed  []uint
	texts    map[uint]string
	embedded []string
	searched [][]float32
	removed  []uint
	err      error
}

func (f *fakeIndex) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedded = append(f.embedded, text)
	return []float32{1, 0, 0}, f.err
}

func (f *fakeIndex) Index(_ context.Context, c *models.Comparison, jobDescription string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.texts == nil {
		f.texts = make(map[uint]string)
	}
	f.indexed = append(f.indexed, c.ID)
	f.texts[c.ID] = jobDescription
	return nil
}

func (f *fakeIndex) Vector(_ context.Context, id uint) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored[id], nil
}

func (f *fakeIndex) Search(_ context.Context, vector []float32, _ int) ([]SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searched = append(f.searched, vector)
	return f.hits, f.err
}

func (f *fakeIndex) Remove(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) indexedIDs() []uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint(nil), f.indexed...)
}

func (f *fakeIndex) indexedText(id uint) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.texts[id]
}

type fakeGemini struct {
	vectors  map[string][]float32
	text     string
	textErr  error
	attempts int
}

func (g *fakeGemini) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if v, ok := g.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0}, nil
}

func (g *fakeGemini) GenerateText(context.Context, string, float32) (string, error) {
	return g.text, g.textErr
}

func (g *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	g.attempts++
	return g.GenerateText(ctx, prompt, temperature)
}
