package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/config"
	internalhttp "github.com/taskhive/taskhive/internal/http"
	"github.com/taskhive/taskhive/internal/logging"
	"github.com/taskhive/taskhive/internal/ratelimit"
	"github.com/taskhive/taskhive/internal/todo"
	"github.com/taskhive/taskhive/internal/token"
	"github.com/taskhive/taskhive/internal/user"
)

// memUserRepo is an in-memory user.Repository with the same uniqueness
// semantics as the Postgres implementation.
type memUserRepo struct {
	seq   int64
	users map[int64]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*user.User)}
}

func (r *memUserRepo) Create(ctx context.Context, username, email, passwordHash string) (*user.User, error) {
	// Email first: a record colliding on both reports the email conflict.
	for _, u := range r.users {
		if u.Email == email {
			return nil, user.ErrDuplicateEmail
		}
	}
	for _, u := range r.users {
		if u.Username == username {
			return nil, user.ErrDuplicateUsername
		}
	}

	r.seq++
	now := time.Now()
	u := &user.User{
		ID:           r.seq,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) List(ctx context.Context, offset, limit int) ([]user.User, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]user.User, 0)
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(result) >= limit {
			break
		}
		result = append(result, *r.users[id])
	}
	return result, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *memUserRepo) Update(ctx context.Context, u *user.User) (*user.User, error) {
	existing, ok := r.users[u.ID]
	if !ok {
		return nil, user.ErrNotFound
	}
	for _, other := range r.users {
		if other.ID == u.ID {
			continue
		}
		if other.Email == u.Email {
			return nil, user.ErrDuplicateEmail
		}
		if other.Username == u.Username {
			return nil, user.ErrDuplicateUsername
		}
	}
	existing.Username = u.Username
	existing.Email = u.Email
	existing.PasswordHash = u.PasswordHash
	existing.UpdatedAt = time.Now()
	copied := *existing
	return &copied, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// memTodoRepo is an in-memory todo.Repository with owner scoping, filtering
// and id-ordered pagination.
type memTodoRepo struct {
	seq   int64
	todos map[int64]*todo.Todo
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{todos: make(map[int64]*todo.Todo)}
}

func (r *memTodoRepo) Create(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	r.seq++
	created := *t
	created.ID = r.seq
	r.todos[created.ID] = &created
	copied := created
	return &copied, nil
}

func (r *memTodoRepo) List(ctx context.Context, ownerID int64, filter todo.Filter, offset, limit int) ([]todo.Todo, error) {
	ids := make([]int64, 0, len(r.todos))
	for id := range r.todos {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	matched := make([]todo.Todo, 0)
	for _, id := range ids {
		t := r.todos[id]
		if t.UserID != ownerID {
			continue
		}
		if filter.Title != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.Description != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(filter.Description)) {
			continue
		}
		if filter.State != "" && t.State != filter.State {
			continue
		}
		matched = append(matched, *t)
	}

	if offset >= len(matched) {
		return []todo.Todo{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *memTodoRepo) Update(ctx context.Context, ownerID, id int64, patch todo.Patch) (*todo.Todo, error) {
	existing, ok := r.todos[id]
	if !ok || existing.UserID != ownerID {
		return nil, todo.ErrNotFound
	}
	patch.Apply(existing)
	copied := *existing
	return &copied, nil
}

func (r *memTodoRepo) Delete(ctx context.Context, ownerID, id int64) error {
	t, ok := r.todos[id]
	if !ok || t.UserID != ownerID {
		return todo.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

// testEnv wires the full router over in-memory repositories.
type testEnv struct {
	t      *testing.T
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Env: "prod"},
	}
	logger := logging.NewLogger(false)

	tokens := token.NewJWTService([]byte("test-secret-key-for-hs256-tokens"), 30*time.Minute)

	userService := user.NewService(newMemUserRepo())
	todoService := todo.NewService(newMemTodoRepo())
	authService := auth.NewService(userService, tokens)
	limiter := ratelimit.Disabled()

	router := internalhttp.NewRouter(
		cfg,
		auth.NewHandler(authService, limiter),
		auth.NewMiddleware(tokens, userService),
		user.NewHandler(userService, limiter),
		todo.NewHandler(todoService),
		logger,
	)

	return &testEnv{t: t, router: router}
}

func (e *testEnv) do(method, path, bearer string, body []byte, contentType string) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(method, path, bearer string, payload any) *httptest.ResponseRecorder {
	e.t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		e.t.Fatalf("failed to marshal payload: %v", err)
	}
	return e.do(method, path, bearer, body, "application/json")
}

func (e *testEnv) register(username, email, password string) {
	e.t.Helper()

	rec := e.doJSON(http.MethodPost, "/users/", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusCreated {
		e.t.Fatalf("register %s: expected 201, got %d (%s)", email, rec.Code, rec.Body.String())
	}
}

func (e *testEnv) login(email, password string) string {
	e.t.Helper()

	form := url.Values{"username": {email}, "password": {password}}
	rec := e.do(http.MethodPost, "/auth/token", "", []byte(form.Encode()), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusOK {
		e.t.Fatalf("login %s: expected 200, got %d (%s)", email, rec.Code, rec.Body.String())
	}

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		e.t.Fatalf("failed to decode token response: %v", err)
	}
	if body.TokenType != "Bearer" {
		e.t.Fatalf("expected token_type Bearer, got %q", body.TokenType)
	}
	return body.AccessToken
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
}

func wantDetail(t *testing.T, rec *httptest.ResponseRecorder, status int, detail string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d (%s)", status, rec.Code, rec.Body.String())
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["detail"] != detail {
		t.Fatalf("expected detail %q, got %q", detail, body["detail"])
	}
}

func TestUserRegistration(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/users/", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var created map[string]any
	decodeBody(t, rec, &created)
	if created["id"] != float64(1) || created["username"] != "alice" || created["email"] != "alice@example.com" {
		t.Fatalf("unexpected public user: %v", created)
	}
	if _, ok := created["password"]; ok {
		t.Fatal("password echoed in response")
	}

	t.Run("duplicate email wins over duplicate username", func(t *testing.T) {
		rec := env.doJSON(http.MethodPost, "/users/", "", map[string]string{
			"username": "alice", "email": "alice@example.com", "password": "secret123",
		})
		wantDetail(t, rec, http.StatusBadRequest, "Email already exists")
	})

	t.Run("duplicate email, fresh username", func(t *testing.T) {
		rec := env.doJSON(http.MethodPost, "/users/", "", map[string]string{
			"username": "alice2", "email": "alice@example.com", "password": "secret123",
		})
		wantDetail(t, rec, http.StatusBadRequest, "Email already exists")
	})

	t.Run("duplicate username, fresh email", func(t *testing.T) {
		rec := env.doJSON(http.MethodPost, "/users/", "", map[string]string{
			"username": "alice", "email": "alice2@example.com", "password": "secret123",
		})
		wantDetail(t, rec, http.StatusBadRequest, "Username already exists")
	})
}

func TestUserListingAndGet(t *testing.T) {
	env := newTestEnv(t)

	t.Run("empty directory", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/users/", "", nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var body struct {
			Users []user.Public `json:"users"`
		}
		decodeBody(t, rec, &body)
		if len(body.Users) != 0 {
			t.Fatalf("expected no users, got %d", len(body.Users))
		}
	})

	env.register("alice", "alice@example.com", "secret123")
	env.register("bob", "bob@example.com", "secret123")

	t.Run("lists in id order without auth", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/users/", "", nil, "")
		var body struct {
			Users []user.Public `json:"users"`
		}
		decodeBody(t, rec, &body)
		if len(body.Users) != 2 || body.Users[0].Username != "alice" || body.Users[1].Username != "bob" {
			t.Fatalf("unexpected listing: %+v", body.Users)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/users/1", "", nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var got user.Public
		decodeBody(t, rec, &got)
		if got.ID != 1 || got.Username != "alice" {
			t.Fatalf("unexpected user: %+v", got)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/users/99", "", nil, "")
		wantDetail(t, rec, http.StatusNotFound, "User not found")
	})
}

func TestUserUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "secret123")
	env.register("bob", "bob@example.com", "secret123")
	aliceToken := env.login("alice@example.com", "secret123")

	t.Run("cannot update another user", func(t *testing.T) {
		rec := env.doJSON(http.MethodPut, "/users/2", aliceToken, map[string]string{
			"username": "evil", "email": "evil@example.com", "password": "newpassword",
		})
		wantDetail(t, rec, http.StatusForbidden, "Not enough permission")
	})

	t.Run("cannot delete another user", func(t *testing.T) {
		rec := env.do(http.MethodDelete, "/users/2", aliceToken, nil, "")
		wantDetail(t, rec, http.StatusForbidden, "Not enough permission")
	})

	t.Run("updates own record", func(t *testing.T) {
		rec := env.doJSON(http.MethodPut, "/users/1", aliceToken, map[string]string{
			"username": "alice2", "email": "alice2@example.com", "password": "newpassword123",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var got user.Public
		decodeBody(t, rec, &got)
		if got.ID != 1 || got.Username != "alice2" || got.Email != "alice2@example.com" {
			t.Fatalf("unexpected updated user: %+v", got)
		}

		// New credentials work, old ones do not.
		env.login("alice2@example.com", "newpassword123")
		form := url.Values{"username": {"alice@example.com"}, "password": {"secret123"}}
		loginRec := env.do(http.MethodPost, "/auth/token", "", []byte(form.Encode()), "application/x-www-form-urlencoded")
		wantDetail(t, loginRec, http.StatusNotFound, "Incorrect email or password")
	})

	t.Run("deletes own record", func(t *testing.T) {
		token := env.login("alice2@example.com", "newpassword123")
		rec := env.do(http.MethodDelete, "/users/1", token, nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var body map[string]string
		decodeBody(t, rec, &body)
		if body["message"] != "User deleted" {
			t.Fatalf("unexpected message: %q", body["message"])
		}

		getRec := env.do(http.MethodGet, "/users/1", "", nil, "")
		wantDetail(t, getRec, http.StatusNotFound, "User not found")
	})
}

func TestAuthToken(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "secret123")

	t.Run("wrong password", func(t *testing.T) {
		form := url.Values{"username": {"alice@example.com"}, "password": {"wrong"}}
		rec := env.do(http.MethodPost, "/auth/token", "", []byte(form.Encode()), "application/x-www-form-urlencoded")
		wantDetail(t, rec, http.StatusNotFound, "Incorrect email or password")
	})

	t.Run("unknown email reports the same failure", func(t *testing.T) {
		form := url.Values{"username": {"nobody@example.com"}, "password": {"secret123"}}
		rec := env.do(http.MethodPost, "/auth/token", "", []byte(form.Encode()), "application/x-www-form-urlencoded")
		wantDetail(t, rec, http.StatusNotFound, "Incorrect email or password")
	})

	t.Run("issued token authorizes protected routes", func(t *testing.T) {
		token := env.login("alice@example.com", "secret123")
		rec := env.do(http.MethodGet, "/todos/", token, nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
	})

	t.Run("refresh issues a working token", func(t *testing.T) {
		token := env.login("alice@example.com", "secret123")
		rec := env.do(http.MethodGet, "/auth/refresh_token", token, nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var body struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
		decodeBody(t, rec, &body)
		if body.AccessToken == "" || body.TokenType != "Bearer" {
			t.Fatalf("unexpected refresh response: %+v", body)
		}

		listRec := env.do(http.MethodGet, "/todos/", body.AccessToken, nil, "")
		if listRec.Code != http.StatusOK {
			t.Fatalf("refreshed token rejected: %d", listRec.Code)
		}
	})

	t.Run("refresh fails after the user is deleted", func(t *testing.T) {
		token := env.login("alice@example.com", "secret123")

		delRec := env.do(http.MethodDelete, "/users/1", token, nil, "")
		if delRec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", delRec.Code, delRec.Body.String())
		}

		// The token is still cryptographically valid but its subject is gone.
		rec := env.do(http.MethodGet, "/auth/refresh_token", token, nil, "")
		wantDetail(t, rec, http.StatusUnauthorized, "Could not validate credentials")
	})
}

func TestTodoEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "secret123")
	token := env.login("alice@example.com", "secret123")

	rec := env.doJSON(http.MethodPost, "/todos/", token, map[string]string{
		"title": "buy milk", "description": "2 liters",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created todo.Todo
	decodeBody(t, rec, &created)
	if created.State != todo.StateDraft {
		t.Fatalf("expected state to default to draft, got %q", created.State)
	}

	listRec := env.do(http.MethodGet, "/todos/", token, nil, "")
	var listing struct {
		Todos []todo.Todo `json:"todos"`
	}
	decodeBody(t, listRec, &listing)
	if len(listing.Todos) != 1 {
		t.Fatalf("expected exactly one todo, got %d", len(listing.Todos))
	}
	got := listing.Todos[0]
	if got.Title != "buy milk" || got.Description != "2 liters" || got.State != todo.StateDraft {
		t.Fatalf("unexpected todo: %+v", got)
	}

	t.Run("patching only the title preserves the rest", func(t *testing.T) {
		rec := env.doJSON(http.MethodPatch, fmt.Sprintf("/todos/%d", created.ID), token, map[string]string{
			"title": "buy oat milk",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var patched todo.Todo
		decodeBody(t, rec, &patched)
		if patched.Title != "buy oat milk" {
			t.Errorf("title not patched: %q", patched.Title)
		}
		if patched.Description != "2 liters" || patched.State != todo.StateDraft {
			t.Errorf("untouched fields changed: %+v", patched)
		}
	})

	t.Run("delete then listing is empty", func(t *testing.T) {
		rec := env.do(http.MethodDelete, fmt.Sprintf("/todos/%d", created.ID), token, nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var body map[string]string
		decodeBody(t, rec, &body)
		if body["message"] != "Task has been deleted successfully." {
			t.Fatalf("unexpected message: %q", body["message"])
		}

		delAgain := env.do(http.MethodDelete, fmt.Sprintf("/todos/%d", created.ID), token, nil, "")
		wantDetail(t, delAgain, http.StatusNotFound, "Task not found.")
	})
}

func TestTodoOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "secret123")
	env.register("bob", "bob@example.com", "secret123")
	aliceToken := env.login("alice@example.com", "secret123")
	bobToken := env.login("bob@example.com", "secret123")

	rec := env.doJSON(http.MethodPost, "/todos/", aliceToken, map[string]string{
		"title": "alice's secret plan", "description": "classified",
	})
	var created todo.Todo
	decodeBody(t, rec, &created)

	t.Run("not visible in the other user's listing", func(t *testing.T) {
		listRec := env.do(http.MethodGet, "/todos/", bobToken, nil, "")
		var listing struct {
			Todos []todo.Todo `json:"todos"`
		}
		decodeBody(t, listRec, &listing)
		if len(listing.Todos) != 0 {
			t.Fatalf("cross-owner leakage in listing: %+v", listing.Todos)
		}
	})

	t.Run("patch reports not found, not forbidden", func(t *testing.T) {
		rec := env.doJSON(http.MethodPatch, fmt.Sprintf("/todos/%d", created.ID), bobToken, map[string]string{
			"title": "hijacked",
		})
		wantDetail(t, rec, http.StatusNotFound, "Task not found.")
	})

	t.Run("delete reports not found, not forbidden", func(t *testing.T) {
		rec := env.do(http.MethodDelete, fmt.Sprintf("/todos/%d", created.ID), bobToken, nil, "")
		wantDetail(t, rec, http.StatusNotFound, "Task not found.")
	})

	t.Run("owner still sees the todo untouched", func(t *testing.T) {
		listRec := env.do(http.MethodGet, "/todos/", aliceToken, nil, "")
		var listing struct {
			Todos []todo.Todo `json:"todos"`
		}
		decodeBody(t, listRec, &listing)
		if len(listing.Todos) != 1 || listing.Todos[0].Title != "alice's secret plan" {
			t.Fatalf("owner's todo affected: %+v", listing.Todos)
		}
	})
}

func TestTodoListFilteringAndPagination(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice", "alice@example.com", "secret123")
	token := env.login("alice@example.com", "secret123")

	states := []todo.State{todo.StateDraft, todo.StateTodo, todo.StateDoing, todo.StateDone}
	for i := 0; i < 20; i++ {
		payload := map[string]any{
			"title":       fmt.Sprintf("Task %02d", i),
			"description": fmt.Sprintf("description %02d", i),
			"state":       states[i%len(states)],
		}
		rec := env.doJSON(http.MethodPost, "/todos/", token, payload)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed todo %d: expected 201, got %d", i, rec.Code)
		}
	}

	listTodos := func(t *testing.T, query string) []todo.Todo {
		t.Helper()
		rec := env.do(http.MethodGet, "/todos/"+query, token, nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var listing struct {
			Todos []todo.Todo `json:"todos"`
		}
		decodeBody(t, rec, &listing)
		return listing.Todos
	}

	t.Run("default limit is 10", func(t *testing.T) {
		if got := len(listTodos(t, "")); got != 10 {
			t.Fatalf("expected 10 todos, got %d", got)
		}
	})

	t.Run("offset past most rows returns the remainder", func(t *testing.T) {
		todos := listTodos(t, "?offset=18&limit=5")
		if len(todos) != 2 {
			t.Fatalf("expected 2 todos, got %d", len(todos))
		}
	})

	t.Run("limit zero returns nothing", func(t *testing.T) {
		if got := len(listTodos(t, "?limit=0")); got != 0 {
			t.Fatalf("expected 0 todos, got %d", got)
		}
	})

	t.Run("title filter is case-insensitive", func(t *testing.T) {
		todos := listTodos(t, "?title=task%2001")
		if len(todos) != 1 || todos[0].Title != "Task 01" {
			t.Fatalf("unexpected filter result: %+v", todos)
		}
	})

	t.Run("state filter is exact", func(t *testing.T) {
		todos := listTodos(t, "?state=done&limit=20")
		if len(todos) != 5 {
			t.Fatalf("expected 5 done todos, got %d", len(todos))
		}
		for _, td := range todos {
			if td.State != todo.StateDone {
				t.Fatalf("state filter leaked %q", td.State)
			}
		}
	})

	t.Run("identical queries return identical results", func(t *testing.T) {
		first := listTodos(t, "?offset=3&limit=7")
		second := listTodos(t, "?offset=3&limit=7")
		if len(first) != len(second) {
			t.Fatalf("result size changed between identical queries")
		}
		for i := range first {
			if first[i].ID != second[i].ID {
				t.Fatalf("result order changed between identical queries")
			}
		}
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/refresh_token"},
		{http.MethodPut, "/users/1"},
		{http.MethodDelete, "/users/1"},
		{http.MethodPost, "/todos/"},
		{http.MethodGet, "/todos/"},
		{http.MethodPatch, "/todos/1"},
		{http.MethodDelete, "/todos/1"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := env.do(p.method, p.path, "", nil, "")
			wantDetail(t, rec, http.StatusUnauthorized, "Could not validate credentials")
		})
	}
}
