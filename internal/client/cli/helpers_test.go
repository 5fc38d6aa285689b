package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docsession/internal/client/client"
	"github.com/dmitrijs2005/docsession/internal/client/config"
	"github.com/dmitrijs2005/docsession/internal/client/models"
	"github.com/dmitrijs2005/docsession/internal/client/services"
	"github.com/dmitrijs2005/docsession/internal/cryptox"
	"github.com/dmitrijs2005/docsession/internal/devstore"
	"github.com/dmitrijs2005/docsession/internal/logging"
)

const (
	testDB   = "app"
	testColl = "users"
	testKey  = "test-key"
)

// memSessions is an in-memory sessionStore.
type memSessions struct {
	mu      sync.Mutex
	state   *models.SessionState
	saves   int
	clears  int
	saveErr error
	loadErr error
}

func (m *memSessions) SaveSession(_ context.Context, s models.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	cp := models.SessionState{Active: s.Active, User: s.User.Clone()}
	m.state = &cp
	return nil
}

func (m *memSessions) LoadSession(context.Context) (models.SessionState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return models.SessionState{}, false, m.loadErr
	}
	if m.state == nil {
		return models.SessionState{}, false, nil
	}
	return models.SessionState{Active: m.state.Active, User: m.state.User.Clone()}, true, nil
}

func (m *memSessions) ClearSession(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.state = nil
	return nil
}

func (m *memSessions) saved() *models.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

type testEnv struct {
	app      *App
	store    *devstore.Store
	sessions *memSessions
	srv      *httptest.Server
}

// newTestEnv builds an App over a devstore emulator. input feeds the prompts.
func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()

	ds := devstore.NewStore()
	srv := httptest.NewServer(devstore.NewHandler(ds, testKey, logging.Discard()).Routes())
	t.Cleanup(srv.Close)

	hs, err := client.NewHTTPStore(srv.URL, testDB, testColl, testKey)
	require.NoError(t, err)

	mem := &memSessions{}
	app := &App{
		config:   &config.Config{},
		session:  services.NewSession(hs, logging.Discard()),
		sessions: mem,
		log:      logging.Discard(),
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      io.Discard,
	}
	return &testEnv{app: app, store: ds, sessions: mem, srv: srv}
}

func (e *testEnv) seed(name, password string, extra models.Record) {
	rec := extra.Clone()
	if rec == nil {
		rec = models.Record{}
	}
	rec[models.FieldName] = name
	rec[models.FieldPassword] = cryptox.Digest([]byte(password))
	e.store.Insert(testDB, testColl, rec)
}

// captureOutput swaps printlnFn for the duration of t and returns the
// collected lines.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var (
		mu    sync.Mutex
		lines []string
	)
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func stubFields(t *testing.T, lines ...string) {
	t.Helper()
	orig := getFields
	getFields = func(*bufio.Reader, io.Writer) ([]string, error) { return lines, nil }
	t.Cleanup(func() { getFields = orig })
}
