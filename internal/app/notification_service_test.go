package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/example/ghnf/internal/core/filter"
	"github.com/example/ghnf/internal/ctxutil"
	"github.com/example/ghnf/internal/models"
	"github.com/example/ghnf/internal/ports/primary"
	"github.com/example/ghnf/internal/ports/secondary"
)

// mockGateway implements secondary.NotificationGateway for testing.
// It is safe for concurrent use.
type mockGateway struct {
	mu sync.Mutex

	pages   [][]*models.Subscription
	threads map[models.ThreadID]*models.Subscription
	details map[string]models.SubjectDetail

	lastPageErr   error
	pageErr       map[int]error
	unsubscribeFn func(id models.ThreadID) error
	markReadFn    func(id models.ThreadID) error
	mutationDelay time.Duration

	detailCalls  map[string]int
	unsubscribed []models.ThreadID
	markedRead   []models.ThreadID

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		threads:     make(map[models.ThreadID]*models.Subscription),
		details:     make(map[string]models.SubjectDetail),
		pageErr:     make(map[int]error),
		detailCalls: make(map[string]int),
	}
}

func (m *mockGateway) LastPage(ctx context.Context) (int, error) {
	if m.lastPageErr != nil {
		return 0, m.lastPageErr
	}
	return len(m.pages), nil
}

func (m *mockGateway) ListPage(ctx context.Context, page int) ([]*models.Subscription, error) {
	if err := m.pageErr[page]; err != nil {
		return nil, err
	}
	return m.pages[page-1], nil
}

func (m *mockGateway) GetThread(ctx context.Context, id models.ThreadID) (*models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.threads[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("thread %d not found", id)
}

func (m *mockGateway) GetSubjectDetail(ctx context.Context, url string) (models.SubjectDetail, error) {
	// widen the window for concurrent callers
	time.Sleep(time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.detailCalls[url]++
	d, ok := m.details[url]
	if !ok {
		return models.SubjectDetail{}, fmt.Errorf("no detail for %s", url)
	}
	return d, nil
}

func (m *mockGateway) Unsubscribe(ctx context.Context, id models.ThreadID) error {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		max := m.maxInFlight.Load()
		if n <= max || m.maxInFlight.CompareAndSwap(max, n) {
			break
		}
	}
	time.Sleep(m.mutationDelay)

	if m.unsubscribeFn != nil {
		if err := m.unsubscribeFn(id); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.unsubscribed = append(m.unsubscribed, id)
	return nil
}

func (m *mockGateway) MarkRead(ctx context.Context, id models.ThreadID) error {
	if m.markReadFn != nil {
		if err := m.markReadFn(id); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.markedRead = append(m.markedRead, id)
	return nil
}

func (m *mockGateway) Get(ctx context.Context, url string) (*secondary.RawResponse, error) {
	return &secondary.RawResponse{Status: 200, Body: "{}"}, nil
}

func (m *mockGateway) detailCallCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detailCalls[url]
}

func (m *mockGateway) totalDetailCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.detailCalls {
		total += n
	}
	return total
}

// mockReporter implements secondary.ProgressReporter for testing.
type mockReporter struct {
	mu           sync.Mutex
	candidates   []models.ThreadID
	noneMatched  int
	total        int
	unsubscribed []models.ThreadID
	opened       []models.ThreadID
}

func (r *mockReporter) Candidate(s *models.Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates = append(r.candidates, s.ThreadID)
}

func (r *mockReporter) NoneMatched() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.noneMatched++
}

func (r *mockReporter) Unsubscribing(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = total
}

func (r *mockReporter) Unsubscribed(s *models.Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unsubscribed = append(r.unsubscribed, s.ThreadID)
}

func (r *mockReporter) Opening(s *models.Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, s.ThreadID)
}

// mockPrompter implements secondary.Prompter for testing.
type mockPrompter struct {
	calls   int
	message string
	err     error
}

func (p *mockPrompter) Confirm(ctx context.Context, message string) error {
	p.calls++
	p.message = message
	return p.err
}

// mockBrowser implements secondary.Browser for testing.
type mockBrowser struct {
	mu     sync.Mutex
	opened []string
}

func (b *mockBrowser) Open(ctx context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opened = append(b.opened, url)
	return nil
}

// mockHistory implements secondary.MutationHistoryRepository for testing.
type mockHistory struct {
	mu      sync.Mutex
	records []*secondary.MutationRecord
}

func (h *mockHistory) Create(ctx context.Context, r *secondary.MutationRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *mockHistory) List(ctx context.Context, f secondary.MutationFilters) ([]*secondary.MutationRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.records, nil
}

type fixture struct {
	gateway  *mockGateway
	reporter *mockReporter
	prompter *mockPrompter
	browser  *mockBrowser
	history  *mockHistory
	service  *NotificationServiceImpl
}

func newFixture(chunkSize int) *fixture {
	f := &fixture{
		gateway:  newMockGateway(),
		reporter: &mockReporter{},
		prompter: &mockPrompter{},
		browser:  &mockBrowser{},
		history:  &mockHistory{},
	}
	f.service = NewNotificationService(f.gateway, f.history, f.prompter, f.browser, f.reporter, NotificationServiceConfig{
		ChunkSize: chunkSize,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

func detailURL(id models.ThreadID) string {
	return fmt.Sprintf("https://api.github.com/repos/o/r/issues/%d", id)
}

func newSub(id models.ThreadID, title string, kind models.SubjectKind) *models.Subscription {
	s := &models.Subscription{
		ThreadID:  id,
		Title:     title,
		Kind:      kind,
		RepoName:  "o/r",
		UpdatedAt: "2026-01-21T00:00:00Z",
	}
	if kind != models.KindDiscussion {
		s.DetailURL = detailURL(id)
	}
	return s
}

func (f *fixture) setState(id models.ThreadID, state *models.SubjectState) {
	f.gateway.details[detailURL(id)] = models.SubjectDetail{
		HTMLURL: fmt.Sprintf("https://github.com/o/r/issues/%d", id),
		State:   state,
	}
}

func threadIDs(ss []*models.Subscription) []models.ThreadID {
	out := make([]models.ThreadID, 0, len(ss))
	for _, s := range ss {
		out = append(out, s.ThreadID)
	}
	return out
}

func statePtr(s models.SubjectState) *models.SubjectState {
	return &s
}

func TestFetchUnread(t *testing.T) {
	f := newFixture(0)
	f.gateway.pages = [][]*models.Subscription{
		{newSub(1, "a", models.KindIssue), newSub(2, "b", models.KindIssue)},
		{newSub(3, "c", models.KindPullRequest), newSub(2, "b", models.KindIssue)},
		{newSub(4, "d", models.KindCommit)},
	}

	got, err := f.service.FetchUnread(context.Background())
	if err != nil {
		t.Fatalf("FetchUnread() error = %v", err)
	}
	if diff := cmp.Diff([]models.ThreadID{1, 2, 3, 4}, threadIDs(got)); diff != "" {
		t.Errorf("FetchUnread() mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchUnread_PageFailureFailsWholeFetch(t *testing.T) {
	f := newFixture(0)
	f.gateway.pages = [][]*models.Subscription{
		{newSub(1, "a", models.KindIssue)},
		{newSub(2, "b", models.KindIssue)},
	}
	f.gateway.pageErr[2] = errors.New("boom")

	got, err := f.service.FetchUnread(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got != nil {
		t.Errorf("expected no partial results, got %d", len(got))
	}
}

func TestFetchUnread_LastPageError(t *testing.T) {
	f := newFixture(0)
	f.gateway.lastPageErr = errors.New("no link")

	if _, err := f.service.FetchUnread(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestFetchThreads(t *testing.T) {
	f := newFixture(0)
	f.gateway.threads[5] = newSub(5, "e", models.KindIssue)
	f.gateway.threads[6] = newSub(6, "f", models.KindIssue)

	got, err := f.service.FetchThreads(context.Background(), []models.ThreadID{6, 5})
	if err != nil {
		t.Fatalf("FetchThreads() error = %v", err)
	}
	if diff := cmp.Diff([]models.ThreadID{6, 5}, threadIDs(got)); diff != "" {
		t.Errorf("FetchThreads() mismatch (-want +got):\n%s", diff)
	}

	if _, err := f.service.FetchThreads(context.Background(), []models.ThreadID{99}); err == nil {
		t.Error("expected error for unknown thread")
	}
}

func TestResolveDetail_ConcurrentCallersFetchOnce(t *testing.T) {
	f := newFixture(0)
	sub := newSub(1, "a", models.KindIssue)
	f.setState(1, statePtr(models.SubjectStateClosed))

	const callers = 50
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := f.service.ResolveDetail(context.Background(), sub)
			if err != nil {
				t.Errorf("ResolveDetail() error = %v", err)
				return
			}
			if d.State == nil || *d.State != models.SubjectStateClosed {
				t.Errorf("State = %v, want closed", d.State)
			}
		}()
	}
	wg.Wait()

	if got := f.gateway.detailCallCount(detailURL(1)); got != 1 {
		t.Errorf("detail fetched %d times, want 1", got)
	}
}

func TestResolveDetail_Discussion(t *testing.T) {
	f := newFixture(0)
	_, err := f.service.ResolveDetail(context.Background(), newSub(1, "a", models.KindDiscussion))
	if !errors.Is(err, ErrNoDetailEndpoint) {
		t.Fatalf("error = %v, want ErrNoDetailEndpoint", err)
	}
}

func TestApplyFilters_ClosedOnly(t *testing.T) {
	f := newFixture(0)
	ss := []*models.Subscription{
		newSub(1, "open issue", models.KindIssue),
		newSub(2, "closed issue", models.KindIssue),
		newSub(3, "commit", models.KindCommit),
		newSub(4, "discussion", models.KindDiscussion),
		newSub(5, "closed pr", models.KindPullRequest),
		newSub(6, "release", models.KindUnknown("Release")),
	}
	f.setState(1, statePtr(models.SubjectStateOpen))
	f.setState(2, statePtr(models.SubjectStateClosed))
	f.setState(5, statePtr(models.SubjectStateClosed))

	got, err := f.service.ApplyFilters(context.Background(), ss, filter.Filters{ClosedOnly: true})
	if err != nil {
		t.Fatalf("ApplyFilters() error = %v", err)
	}
	if diff := cmp.Diff([]models.ThreadID{2, 3, 5}, threadIDs(got)); diff != "" {
		t.Errorf("ApplyFilters() mismatch (-want +got):\n%s", diff)
	}

	// Only issues and pull requests are looked up
	if got := f.gateway.totalDetailCalls(); got != 3 {
		t.Errorf("detail calls = %d, want 3", got)
	}
}

func TestApplyFilters_StateStageRunsAfterCheapStages(t *testing.T) {
	f := newFixture(0)
	ss := []*models.Subscription{
		newSub(1, "bump deps", models.KindPullRequest),
		newSub(2, "crash", models.KindIssue),
		newSub(3, "bump more deps", models.KindPullRequest),
		newSub(4, "bump ignored", models.KindPullRequest),
	}
	for _, id := range []models.ThreadID{1, 2, 3, 4} {
		f.setState(id, statePtr(models.SubjectStateClosed))
	}

	re, _ := filter.CompileRegex([]string{"^bump"})
	got, err := f.service.ApplyFilters(context.Background(), ss, filter.Filters{
		Regex:      re,
		Ignore:     filter.IgnoreSet([]models.ThreadID{4}),
		ClosedOnly: true,
		Limit:      1,
	})
	if err != nil {
		t.Fatalf("ApplyFilters() error = %v", err)
	}
	if diff := cmp.Diff([]models.ThreadID{1}, threadIDs(got)); diff != "" {
		t.Errorf("ApplyFilters() mismatch (-want +got):\n%s", diff)
	}
	if n := f.gateway.detailCallCount(detailURL(2)); n != 0 {
		t.Errorf("regex-rejected thread was fetched %d times", n)
	}
	if n := f.gateway.detailCallCount(detailURL(4)); n != 0 {
		t.Errorf("ignored thread was fetched %d times", n)
	}
}

func TestApplyFilters_DetailErrorFails(t *testing.T) {
	f := newFixture(0)
	ss := []*models.Subscription{newSub(1, "a", models.KindIssue)}

	if _, err := f.service.ApplyFilters(context.Background(), ss, filter.Filters{ClosedOnly: true}); err == nil {
		t.Fatal("expected error when detail can't be fetched")
	}
}

func TestApplyFilters_Idempotent(t *testing.T) {
	f := newFixture(0)
	f.gateway.pages = [][]*models.Subscription{
		{newSub(1, "bump a", models.KindIssue), newSub(2, "bump b", models.KindIssue)},
		{newSub(3, "bump c", models.KindCommit), newSub(4, "other", models.KindIssue)},
	}
	f.setState(1, statePtr(models.SubjectStateClosed))
	f.setState(2, statePtr(models.SubjectStateOpen))

	re, _ := filter.CompileRegex([]string{"bump"})
	filters := filter.Filters{Regex: re, ClosedOnly: true}

	run := func() []models.ThreadID {
		ss, err := f.service.FetchUnread(context.Background())
		if err != nil {
			t.Fatalf("FetchUnread() error = %v", err)
		}
		out, err := f.service.ApplyFilters(context.Background(), ss, filters)
		if err != nil {
			t.Fatalf("ApplyFilters() error = %v", err)
		}
		return threadIDs(out)
	}

	first, second := run(), run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("pipeline not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]models.ThreadID{1, 3}, first); diff != "" {
		t.Errorf("pipeline mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsubscribeAll_Empty(t *testing.T) {
	for _, mode := range []primary.MutationMode{primary.ModeDry, primary.ModeConfirm, primary.ModeExecute} {
		t.Run(mode.String(), func(t *testing.T) {
			f := newFixture(0)
			if err := f.service.UnsubscribeAll(context.Background(), nil, mode); err != nil {
				t.Fatalf("UnsubscribeAll() error = %v", err)
			}
			if f.reporter.noneMatched != 1 {
				t.Errorf("NoneMatched called %d times, want 1", f.reporter.noneMatched)
			}
			if len(f.gateway.unsubscribed) != 0 || len(f.gateway.markedRead) != 0 {
				t.Error("no mutation expected")
			}
			if f.prompter.calls != 0 {
				t.Error("no prompt expected")
			}
		})
	}
}

func TestUnsubscribeAll_Dry(t *testing.T) {
	f := newFixture(0)
	batch := []*models.Subscription{newSub(1, "a", models.KindIssue), newSub(2, "b", models.KindCommit)}

	if err := f.service.UnsubscribeAll(context.Background(), batch, primary.ModeDry); err != nil {
		t.Fatalf("UnsubscribeAll() error = %v", err)
	}
	if diff := cmp.Diff([]models.ThreadID{1, 2}, f.reporter.candidates); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
	if len(f.gateway.unsubscribed) != 0 || len(f.gateway.markedRead) != 0 {
		t.Error("dry run must not mutate")
	}
}

func TestUnsubscribeAll_Confirm(t *testing.T) {
	f := newFixture(0)
	batch := []*models.Subscription{newSub(1, "a", models.KindIssue)}

	if err := f.service.UnsubscribeAll(context.Background(), batch, primary.ModeConfirm); err != nil {
		t.Fatalf("UnsubscribeAll() error = %v", err)
	}
	if f.prompter.calls != 1 || f.prompter.message != ConfirmMessage {
		t.Errorf("prompter calls = %d, message = %q", f.prompter.calls, f.prompter.message)
	}
	if diff := cmp.Diff([]models.ThreadID{1}, f.gateway.unsubscribed); diff != "" {
		t.Errorf("unsubscribed mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsubscribeAll_ConfirmReadErrorAborts(t *testing.T) {
	f := newFixture(0)
	f.prompter.err = io.ErrUnexpectedEOF
	batch := []*models.Subscription{newSub(1, "a", models.KindIssue)}

	err := f.service.UnsubscribeAll(context.Background(), batch, primary.ModeConfirm)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("error = %v, want io.ErrUnexpectedEOF", err)
	}
	if len(f.gateway.unsubscribed) != 0 {
		t.Error("nothing should be unsubscribed after a failed confirmation")
	}
}

func TestUnsubscribeAll_ExecuteThree(t *testing.T) {
	f := newFixture(DefaultChunkSize)
	batch := []*models.Subscription{
		newSub(1, "a", models.KindIssue),
		newSub(2, "b", models.KindPullRequest),
		newSub(3, "c", models.KindCommit),
	}

	ctx := ctxutil.WithRunID(context.Background(), "run-1")
	if err := f.service.UnsubscribeAll(ctx, batch, primary.ModeExecute); err != nil {
		t.Fatalf("UnsubscribeAll() error = %v", err)
	}

	if len(f.gateway.unsubscribed) != 3 || len(f.gateway.markedRead) != 3 {
		t.Errorf("unsubscribed %d, marked read %d; want 3 and 3", len(f.gateway.unsubscribed), len(f.gateway.markedRead))
	}
	if len(f.reporter.unsubscribed) != 3 || f.reporter.total != 3 {
		t.Errorf("reported %d of %d, want 3 of 3", len(f.reporter.unsubscribed), f.reporter.total)
	}
	if got := f.gateway.maxInFlight.Load(); got > DefaultChunkSize {
		t.Errorf("max in flight = %d, exceeds %d", got, DefaultChunkSize)
	}
	if f.prompter.calls != 0 {
		t.Error("execute mode must not prompt")
	}

	if len(f.history.records) != 3 {
		t.Fatalf("history has %d records, want 3", len(f.history.records))
	}
	for _, r := range f.history.records {
		if r.RunID != "run-1" || r.Action != secondary.ActionUnsubscribed {
			t.Errorf("record = %+v", r)
		}
	}
}

func TestUnsubscribeAll_BoundedConcurrency(t *testing.T) {
	const chunk = 3
	f := newFixture(chunk)
	f.gateway.mutationDelay = 5 * time.Millisecond

	var batch []*models.Subscription
	for i := 1; i <= 20; i++ {
		batch = append(batch, newSub(models.ThreadID(i), "x", models.KindIssue))
	}

	if err := f.service.UnsubscribeAll(context.Background(), batch, primary.ModeExecute); err != nil {
		t.Fatalf("UnsubscribeAll() error = %v", err)
	}
	if got := f.gateway.maxInFlight.Load(); got > chunk {
		t.Errorf("max in flight = %d, want <= %d", got, chunk)
	}
	if len(f.gateway.unsubscribed) != 20 {
		t.Errorf("unsubscribed %d, want 20", len(f.gateway.unsubscribed))
	}
}

func TestUnsubscribeAll_DuplicateThreadsMutatedOnce(t *testing.T) {
	f := newFixture(0)
	sub := newSub(1, "a", models.KindIssue)

	if err := f.service.UnsubscribeAll(context.Background(), []*models.Subscription{sub, sub}, primary.ModeExecute); err != nil {
		t.Fatalf("UnsubscribeAll() error = %v", err)
	}
	if diff := cmp.Diff([]models.ThreadID{1}, f.gateway.unsubscribed); diff != "" {
		t.Errorf("unsubscribed mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsubscribeAll_PartialFailure(t *testing.T) {
	f := newFixture(1)
	boom := errors.New("boom")
	f.gateway.unsubscribeFn = func(id models.ThreadID) error {
		if id == 3 {
			return boom
		}
		return nil
	}

	var batch []*models.Subscription
	for i := 1; i <= 5; i++ {
		batch = append(batch, newSub(models.ThreadID(i), "x", models.KindIssue))
	}

	err := f.service.UnsubscribeAll(context.Background(), batch, primary.ModeExecute)

	var partial *PartialMutationError
	if !errors.As(err, &partial) {
		t.Fatalf("error = %v, want *PartialMutationError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error chain lost cause: %v", err)
	}
	if partial.Total != 5 || partial.Done != 2 {
		t.Errorf("Done/Total = %d/%d, want 2/5", partial.Done, partial.Total)
	}
	// With one slot, threads before the failure stay mutated and none after start
	if diff := cmp.Diff([]models.ThreadID{1, 2}, f.gateway.unsubscribed); diff != "" {
		t.Errorf("unsubscribed mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsubscribeAll_MarkReadFailureCountsUnsubscribed(t *testing.T) {
	f := newFixture(1)
	f.gateway.markReadFn = func(id models.ThreadID) error {
		if id == 2 {
			return errors.New("mark read failed")
		}
		return nil
	}

	batch := []*models.Subscription{
		newSub(1, "a", models.KindIssue),
		newSub(2, "b", models.KindIssue),
		newSub(3, "c", models.KindIssue),
	}

	err := f.service.UnsubscribeAll(context.Background(), batch, primary.ModeExecute)

	var partial *PartialMutationError
	if !errors.As(err, &partial) {
		t.Fatalf("error = %v, want *PartialMutationError", err)
	}
	if partial.Done != 1 || partial.UnsubscribedOnly != 1 || partial.Total != 3 {
		t.Errorf("Done/UnsubscribedOnly/Total = %d/%d/%d, want 1/1/3", partial.Done, partial.UnsubscribedOnly, partial.Total)
	}
	// Thread 2 lost its subscription even though it is still unread
	if diff := cmp.Diff([]models.ThreadID{1, 2}, f.gateway.unsubscribed); diff != "" {
		t.Errorf("unsubscribed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]models.ThreadID{1}, f.reporter.unsubscribed); diff != "" {
		t.Errorf("reported mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(err.Error(), "1 more without marking read") {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestOpen(t *testing.T) {
	f := newFixture(0)
	f.setState(1, statePtr(models.SubjectStateOpen))

	if err := f.service.Open(context.Background(), []*models.Subscription{newSub(1, "a", models.KindIssue)}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if diff := cmp.Diff([]string{"https://github.com/o/r/issues/1"}, f.browser.opened); diff != "" {
		t.Errorf("opened mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]models.ThreadID{1}, f.reporter.opened); diff != "" {
		t.Errorf("reported mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory(t *testing.T) {
	f := newFixture(0)
	f.history.records = []*secondary.MutationRecord{{ThreadID: 1}}

	got, err := f.service.History(context.Background(), 10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("History() returned %d records, want 1", len(got))
	}
}
