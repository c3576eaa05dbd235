package anki

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeAnki is a scriptable AnkiConnect stand-in. Responses are keyed by
// action name; a stub returns a result value or an error string.
type fakeAnki struct {
	t   *testing.T
	srv *httptest.Server

	mu    sync.Mutex
	stubs map[string]func(params map[string]any) (any, string)
	calls []fakeCall
}

type fakeCall struct {
	action string
	params map[string]any
}

func newFakeAnki(t *testing.T) *fakeAnki {
	t.Helper()
	f := &fakeAnki{
		t:     t,
		stubs: map[string]func(map[string]any) (any, string){},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAnki) handle(w http.ResponseWriter, r *http.Request) {
	var env envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{action: env.Action, params: env.Params})
	stub, ok := f.stubs[env.Action]
	f.mu.Unlock()

	var out reply
	if !ok {
		msg := "unsupported action: " + env.Action
		out.Error = &msg
	} else if result, errMsg := stub(env.Params); errMsg != "" {
		out.Error = &errMsg
	} else {
		raw, err := json.Marshal(result)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out.Result = raw
	}

	if err := json.NewEncoder(w).Encode(out); err != nil {
		f.t.Errorf("encode fake reply: %v", err)
	}
}

// stub registers a response for an action.
func (f *fakeAnki) stub(action string, fn func(params map[string]any) (any, string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stubs[action] = fn
}

// stubResult registers a fixed successful result for an action.
func (f *fakeAnki) stubResult(action string, result any) {
	f.stub(action, func(map[string]any) (any, string) { return result, "" })
}

// stubError registers a fixed upstream error for an action.
func (f *fakeAnki) stubError(action, msg string) {
	f.stub(action, func(map[string]any) (any, string) { return nil, msg })
}

func (f *fakeAnki) client() *Client {
	return NewClient(f.srv.URL, time.Second)
}

// actions returns the invoked action names in call order.
func (f *fakeAnki) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.calls))
	for i, c := range f.calls {
		names[i] = c.action
	}
	return names
}

// paramsFor returns the params of the first call with the given action.
func (f *fakeAnki) paramsFor(action string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.action == action {
			return c.params
		}
	}
	return nil
}
