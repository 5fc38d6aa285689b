package devstore

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docsession/internal/logging"
)

const testKey = "k3y"

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	store := NewStore()
	srv := httptest.NewServer(NewHandler(store, testKey, logging.Discard()).Routes())
	t.Cleanup(srv.Close)
	return srv, store
}

func call(t *testing.T, method, rawURL, body string) (int, string) {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, rawURL, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, strings.TrimSpace(string(b))
}

func collURL(srv *httptest.Server, q url.Values) string {
	return srv.URL + "/databases/app/collections/users?" + q.Encode()
}

func TestHandler_RejectsBadKey(t *testing.T) {
	srv, _ := newTestServer(t)

	code, _ := call(t, http.MethodGet, collURL(srv, url.Values{"apiKey": {"wrong"}}), "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call(t, http.MethodGet, srv.URL+"/databases/app/collections/users", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestHandler_InsertThenFindOne(t *testing.T) {
	srv, _ := newTestServer(t)

	code, body := call(t, http.MethodPost, collURL(srv, url.Values{"apiKey": {testKey}}), `{"name":"alice","password":"d"}`)
	require.Equal(t, http.StatusOK, code)

	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.Contains(t, created, "_id")

	code, body = call(t, http.MethodGet, collURL(srv, url.Values{
		"apiKey": {testKey}, "q": {`{"name":"alice"}`}, "fo": {"true"},
	}), "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, mustJSON(t, created), body)
}

func TestHandler_FindOneMissReturnsNull(t *testing.T) {
	srv, _ := newTestServer(t)

	code, body := call(t, http.MethodGet, collURL(srv, url.Values{
		"apiKey": {testKey}, "q": {`{"name":"bob"}`}, "fo": {"true"},
	}), "")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", body)
}

func TestHandler_FindListAndCount(t *testing.T) {
	srv, store := newTestServer(t)
	store.Insert("app", "users", map[string]any{"name": "a"})
	store.Insert("app", "users", map[string]any{"name": "b"})

	code, body := call(t, http.MethodGet, collURL(srv, url.Values{"apiKey": {testKey}}), "")
	require.Equal(t, http.StatusOK, code)
	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &docs))
	assert.Len(t, docs, 2)

	code, body = call(t, http.MethodGet, collURL(srv, url.Values{"apiKey": {testKey}, "q": {"{}"}, "c": {"true"}}), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2", body)
}

func TestHandler_BadFilter(t *testing.T) {
	srv, _ := newTestServer(t)

	code, _ := call(t, http.MethodGet, collURL(srv, url.Values{"apiKey": {testKey}, "q": {"{nope"}}), "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_UpdateSet(t *testing.T) {
	srv, store := newTestServer(t)
	stored := store.Insert("app", "users", map[string]any{"name": "alice"})

	code, body := call(t, http.MethodPut, collURL(srv, url.Values{
		"apiKey": {testKey},
		"q":      {`{"_id":{"$oid":"` + stored.ID() + `"}}`},
		"u":      {"true"},
	}), `{"$set":{"color":"blue"}}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"n":1,"upserted":false}`, body)

	got, err := store.FindOne("app", "users", map[string]any{"name": "alice"})
	require.NoError(t, err)
	assert.Equal(t, "blue", got["color"])
}

func TestHandler_UpdateConflictingPath(t *testing.T) {
	srv, store := newTestServer(t)
	store.Insert("app", "users", map[string]any{"name": "alice", "age": float64(30)})

	code, _ := call(t, http.MethodPut, collURL(srv, url.Values{
		"apiKey": {testKey},
		"q":      {`{"name":"alice"}`},
	}), `{"$set":{"age.years":31}}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_UpdateRequiresSet(t *testing.T) {
	srv, _ := newTestServer(t)

	code, _ := call(t, http.MethodPut, collURL(srv, url.Values{"apiKey": {testKey}, "q": {"{}"}}), `{"color":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	code, _ := call(t, http.MethodDelete, collURL(srv, url.Values{"apiKey": {testKey}}), "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
