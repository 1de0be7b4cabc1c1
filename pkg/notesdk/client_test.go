package notesdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/aussiebroadwan/notes/pkg/jwtx"
	"github.com/aussiebroadwan/notes/pkg/sessionstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer is a minimal notes service backed by a real HS256 codec and a
// clock the test can move forward.
type fakeServer struct {
	t     *testing.T
	srv   *httptest.Server
	codec *jwtx.HS256Codec

	mu  sync.Mutex
	now time.Time

	refreshCalls atomic.Int32
	unauthorized atomic.Int32

	// beforeRefresh runs inside the refresh handler, before tokens are minted.
	beforeRefresh func()
	// alwaysUnauthorized makes every protected request fail.
	alwaysUnauthorized atomic.Bool

	lastBody atomic.Value
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	fs := &fakeServer{t: t, now: time.Now()}
	codec, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), jwtx.HS256Options{Now: fs.clock})
	require.NoError(t, err)
	fs.codec = codec

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/sign-in", fs.handleSignIn)
	mux.HandleFunc("POST /auth/refresh", fs.handleRefresh)
	mux.Handle("/api/notes", httpx.AuthnMiddleware(codec)(http.HandlerFunc(fs.handleNotes)))
	fs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		mux.ServeHTTP(rec, r)
		if rec.status == http.StatusUnauthorized {
			fs.unauthorized.Add(1)
		}
	}))
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *fakeServer) onRefresh(fn func()) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.beforeRefresh = fn
}

func (fs *fakeServer) clock() time.Time {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.now
}

func (fs *fakeServer) advance(d time.Duration) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.now = fs.now.Add(d)
}

func (fs *fakeServer) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		ErrInvalidRequest.WriteError(w)
		return
	}
	if creds.Username != "alice" || creds.Password != "pw" {
		ErrInvalidCredentials.WriteError(w)
		return
	}

	access, _ := fs.codec.Sign("alice", jwtx.KindAccess)
	refresh, _ := fs.codec.Sign("alice", jwtx.KindRefresh)
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{AccessToken: access, RefreshToken: refresh})
}

func (fs *fakeServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	fs.refreshCalls.Add(1)
	fs.mu.Lock()
	hook := fs.beforeRefresh
	fs.mu.Unlock()
	if hook != nil {
		hook()
	}

	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrInvalidRequest.WriteError(w)
		return
	}
	claims, err := fs.codec.Verify(req.RefreshToken, jwtx.KindRefresh)
	if err != nil {
		ErrInvalidRefreshToken.WriteError(w)
		return
	}

	access, _ := fs.codec.Sign(claims.Subject, jwtx.KindAccess)
	httpx.WriteJSON(w, http.StatusOK, RefreshResponse{AccessToken: access})
}

func (fs *fakeServer) handleNotes(w http.ResponseWriter, r *http.Request) {
	if fs.alwaysUnauthorized.Load() {
		httpx.WriteError(w, http.StatusUnauthorized, CodeUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		fs.lastBody.Store(string(body))

		var in CreateNoteRequest
		if err := json.Unmarshal(body, &in); err != nil {
			ErrInvalidRequest.WriteError(w)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, Note{ID: 1, Title: in.Title, Content: in.Content, Categories: in.Categories})
	default:
		httpx.WriteJSON(w, http.StatusOK, []Note{{ID: 1, Title: "hello"}})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

type loginSignal struct {
	calls atomic.Int32
	last  atomic.Value
}

func (l *loginSignal) fn(err error) {
	l.calls.Add(1)
	l.last.Store(err)
}

func newTestClient(t *testing.T, fs *fakeServer) (*Client, sessionstore.Store, *loginSignal) {
	t.Helper()
	store := sessionstore.NewMemoryStore()
	login := &loginSignal{}
	c := New(fs.srv.URL, store, WithLoginRequired(login.fn))
	return c, store, login
}

func TestClient_SignInThenProtected(t *testing.T) {
	ctx := context.Background()
	fs := newFakeServer(t)
	c, store, _ := newTestClient(t, fs)

	require.False(t, c.IsAuthenticated(ctx))

	_, err := c.SignIn(ctx, "alice", "pw")
	require.NoError(t, err)
	require.True(t, c.IsAuthenticated(ctx))

	sess, err := store.Get(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sess.AccessToken)
	require.NotEmpty(t, sess.RefreshToken)

	notes, err := c.ListNotes(ctx, ListNotesOptions{})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Zero(t, fs.refreshCalls.Load())
}

func TestClient_SignInBadCredentials(t *testing.T) {
	ctx := context.Background()
	fs := newFakeServer(t)
	c, _, _ := newTestClient(t, fs)

	_, err := c.SignIn(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.False(t, c.IsAuthenticated(ctx))
}

func TestClient_ExpiredAccessIsRefreshedAndRetried(t *testing.T) {
	ctx := context.Background()
	fs := newFakeServer(t)
	c, store, login := newTestClient(t, fs)

	_, err := c.SignIn(ctx, "alice", "pw")
	require.NoError(t, err)
	before, err := c.AccessToken(ctx)
	require.NoError(t, err)

	fs.advance(16 * time.Minute)

	notes, err := c.ListNotes(ctx, ListNotesOptions{})
	require.NoError(t, err)
	require.Len(t, notes, 1)

	require.EqualValues(t, 1, fs.unauthorized.Load())
	require.EqualValues(t, 1, fs.refreshCalls.Load())
	require.Zero(t, login.calls.Load())

	sess, err := store.Get(ctx)
	require.NoError(t, err)
	require.NotEqual(t, before, sess.AccessToken)
	require.NotEmpty(t, sess.RefreshToken)
}

func TestClient_RetryReplaysBody(t *testing.T) {
	ctx := context.Background()
	fs := newFakeServer(t)
	c, _, _ := newTestClient(t, fs)

	_, err := c.SignIn(ctx, "alice", "pw")
	require.NoError(t, err)
	fs.advance(16 * time.Minute)

	note, err := c.CreateNote(ctx, CreateNoteRequest{Title: "t", Content: "body", Categories: []string{"work"}})
	require.NoError(t, err)
	require.Equal(t, "t", note.Title)
	require.Equal(t, []string{"work"}, note.Categories)
	require.JSONEq(t, `{"title":"t","content":"body","category":["work"]}`, fs.lastBody.Load().(string))
}

func TestClient_ExpiredRefreshSignalsLogin(t *testing.T) {
	ctx := context.Background()
	fs := newFakeServer(t)
	c, store, login := newTestClient(t, fs)

	_, err := c.SignIn(ctx, "alice", "pw")
	require.NoError(t, err)

	fs.advance(8 * 24 * time.Hour)

	_, err = c.ListNotes(ctx, ListNotesOptions{})
	require.ErrorIs(t, err, ErrRefreshFailed)
	require.EqualValues(t, 1, fs.refreshCalls.Load())

	sess, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, sess.Empty())
	require.False(t, c.IsAuthenticated(ctx))

	require.EqualValues(t, 1, login.calls.Load())
	require.ErrorIs(t, login.last.Load().(error), ErrRefreshFailed)
}

func TestClient_NoRefreshTokenSignalsLogin(t *testing.T) {
	ctx := context.Background()
	fs := newFakeServer(t)
	c, _, login := newTestClient(t, fs)

	_, err := c.ListNotes(ctx, ListNotesOptions{})
	require.ErrorIs(t, err, ErrNoRefreshToken)
	require.Zero(t, fs.refreshCalls.Load())
	require.EqualValues(t, 1, login.calls.Load())
}

func TestClient_SecondUnauthorizedReturnedAsIs(t *testing.T) {
	ctx := context.Background()
	fs := newFakeServer(t)
	c, _, login := newTestClient(t, fs)

	_, err := c.SignIn(ctx, "alice", "pw")
	require.NoError(t, err)
	fs.alwaysUnauthorized.Store(true)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fs.srv.URL+"/api/notes", nil)
	require.NoError(t, err)
	tok, _ := c.AccessToken(ctx)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.EqualValues(t, 1, fs.refreshCalls.Load(), "no second refresh")
	require.Zero(t, login.calls.Load())

	_, err = c.ListNotes(ctx, ListNotesOptions{})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_ConcurrentRequestsShareOneRefresh(t *testing.T) {
	const n = 20
	ctx := context.Background()
	fs := newFakeServer(t)
	c, _, _ := newTestClient(t, fs)

	_, err := c.SignIn(ctx, "alice", "pw")
	require.NoError(t, err)
	fs.advance(16 * time.Minute)

	// Hold the refresh until every request has queued behind it.
	fs.onRefresh(func() {
		assert.Eventually(t, func() bool { return c.refresher.pending() == n }, 5*time.Second, time.Millisecond)
	})

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.ListNotes(ctx, ListNotesOptions{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.EqualValues(t, 1, fs.refreshCalls.Load())
}

func TestClient_LogoutTwice(t *testing.T) {
	ctx := context.Background()
	fs := newFakeServer(t)
	c, store, _ := newTestClient(t, fs)

	_, err := c.SignIn(ctx, "alice", "pw")
	require.NoError(t, err)

	require.NoError(t, c.Logout(ctx))
	require.NoError(t, c.Logout(ctx))

	sess, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, sess.Empty())
}

func TestClient_NetworkFailure(t *testing.T) {
	fs := newFakeServer(t)
	c, _, _ := newTestClient(t, fs)
	fs.srv.Close()

	_, err := c.SignIn(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, ErrNetworkFailure)
}

func TestAPIErrorIs(t *testing.T) {
	err := error(&APIError{StatusCode: http.StatusNotFound, Code: CodeNotFound})

	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, err, ErrNoteNotFound)
	require.NotErrorIs(t, err, ErrUnauthorized)
	require.NotErrorIs(t, err, &APIError{StatusCode: http.StatusNotFound, Code: "other"})
}

func TestClient_UnexpectedSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/sign-up":
			httpx.WriteJSON(w, http.StatusOK, TokenResponse{AccessToken: "a", RefreshToken: "r"})
		default:
			httpx.WriteJSON(w, http.StatusOK, Note{ID: 1, Title: "still here"})
		}
	}))
	t.Cleanup(srv.Close)

	store := sessionstore.NewMemoryStore()
	c := New(srv.URL, store)
	ctx := context.Background()

	_, err := c.SignUp(ctx, "alice", "pw")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusOK, apiErr.StatusCode)
	require.False(t, c.IsAuthenticated(ctx))

	require.NoError(t, store.Set(ctx, "a", "r"))
	err = c.DeleteNote(ctx, 1)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusOK, apiErr.StatusCode)
}

func TestListNotesOptionsQuery(t *testing.T) {
	archived := true
	require.Empty(t, ListNotesOptions{}.query())
	require.Equal(t, "?archived=true&category=work", ListNotesOptions{Archived: &archived, Category: "work"}.query())
}
