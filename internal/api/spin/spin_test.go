package spin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"
	spinserv "wheel_backend/internal/service/spin"

	"github.com/go-chi/chi/v5"
)

// fakeSpinService отдаёт заранее заданные ответы движка
type fakeSpinService struct {
	registerID  int
	registerErr error
	session     *model.SpinSession
	selectErr   error
	result      *model.SpinResult
	spinErr     error

	spunSession string
}

func (f *fakeSpinService) Register(_ context.Context, _ string) (int, error) {
	return f.registerID, f.registerErr
}

func (f *fakeSpinService) SelectUser(_ context.Context, _ int) (*model.SpinSession, error) {
	return f.session, f.selectErr
}

func (f *fakeSpinService) Spin(_ context.Context, sessionID string) (*model.SpinResult, error) {
	f.spunSession = sessionID
	return f.result, f.spinErr
}

func (f *fakeSpinService) Reset(_ context.Context) error { return nil }

func (f *fakeSpinService) Board(_ context.Context) (*model.BoardData, error) {
	return &model.BoardData{}, nil
}

func (f *fakeSpinService) Wheel(_ context.Context, _ string) (*model.WheelData, error) {
	return &model.WheelData{}, nil
}

func newTestRouter(serv *fakeSpinService) chi.Router {
	h := NewHandler(HandlerDeps{Serv: serv})
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/select/{userID}", h.Select)
	r.Post("/spin", h.Spin)
	return r
}

func TestRegisterHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r := newTestRouter(&fakeSpinService{registerID: 7})

		req := httptest.NewRequest("POST", "/register", strings.NewReader(`{"name":"Alice"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body struct {
			ID int `json:"id"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body.ID != 7 {
			t.Errorf("expected id 7, got %d", body.ID)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		r := newTestRouter(&fakeSpinService{registerErr: repository.ErrAlreadyExists})

		req := httptest.NewRequest("POST", "/register", strings.NewReader(`{"name":"Alice"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", w.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		r := newTestRouter(&fakeSpinService{})

		req := httptest.NewRequest("POST", "/register", strings.NewReader("{"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestSelectHandler(t *testing.T) {
	t.Run("sets session cookie", func(t *testing.T) {
		r := newTestRouter(&fakeSpinService{
			session: &model.SpinSession{ID: "session-1", UserID: 7},
		})

		req := httptest.NewRequest("POST", "/select/7", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var found bool
		for _, c := range w.Result().Cookies() {
			if c.Name == "spin_session" && c.Value == "session-1" {
				found = true
			}
		}
		if !found {
			t.Error("expected spin_session cookie to be set")
		}
	})

	t.Run("ineligible user", func(t *testing.T) {
		r := newTestRouter(&fakeSpinService{selectErr: spinserv.ErrIneligible})

		req := httptest.NewRequest("POST", "/select/7", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", w.Code)
		}
	})

	t.Run("bad user id", func(t *testing.T) {
		r := newTestRouter(&fakeSpinService{})

		req := httptest.NewRequest("POST", "/select/abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestSpinHandler(t *testing.T) {
	t.Run("prize won and cookie cleared", func(t *testing.T) {
		serv := &fakeSpinService{result: &model.SpinResult{WonAmount: 2500}}
		r := newTestRouter(serv)

		req := httptest.NewRequest("POST", "/spin", nil)
		req.AddCookie(&http.Cookie{Name: "spin_session", Value: "session-1"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if serv.spunSession != "session-1" {
			t.Errorf("expected spin on session-1, got %q", serv.spunSession)
		}

		body, _ := io.ReadAll(w.Body)
		if !strings.Contains(string(body), `"prize":2500`) {
			t.Errorf("unexpected body: %s", body)
		}

		var cleared bool
		for _, c := range w.Result().Cookies() {
			if c.Name == "spin_session" && c.MaxAge < 0 {
				cleared = true
			}
		}
		if !cleared {
			t.Error("expected spin_session cookie to be cleared")
		}
	})

	t.Run("no cookie", func(t *testing.T) {
		r := newTestRouter(&fakeSpinService{})

		req := httptest.NewRequest("POST", "/spin", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("pool drained", func(t *testing.T) {
		r := newTestRouter(&fakeSpinService{spinErr: spinserv.ErrNoPrizesLeft})

		req := httptest.NewRequest("POST", "/spin", nil)
		req.AddCookie(&http.Cookie{Name: "spin_session", Value: "session-1"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", w.Code)
		}
	})
}
