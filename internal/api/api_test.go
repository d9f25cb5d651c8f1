package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/shouta256/todo-next-spring/internal/auth"
	"github.com/shouta256/todo-next-spring/internal/db"
	"github.com/shouta256/todo-next-spring/internal/folder"
	"github.com/shouta256/todo-next-spring/internal/model"
	"github.com/shouta256/todo-next-spring/internal/todo"
	"github.com/shouta256/todo-next-spring/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T, opts Options) *echo.Echo {
	t.Helper()
	database, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	tokens, err := auth.NewTokens()
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	validator, err := validate.New()
	if err != nil {
		t.Fatalf("validate.New: %v", err)
	}

	logger := log.New(io.Discard)
	svc := Services{
		Auth:      auth.NewService(database, auth.NewBcryptHasher(bcrypt.MinCost), tokens, logger),
		Folders:   folder.NewService(database, logger),
		Todos:     todo.NewService(database, database, logger),
		Validator: validator,
	}
	if opts.AllowedOrigins == nil {
		opts.AllowedOrigins = []string{"http://localhost:3000"}
	}
	return New(svc, opts, logger)
}

func do(t *testing.T, e *echo.Echo, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, status int, body string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, status, rec.Body.String())
	}
	if body != "" && rec.Body.String() != body {
		t.Errorf("body = %q, want %q", rec.Body.String(), body)
	}
}

func registerUser(t *testing.T, e *echo.Echo, username string) authResponse {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/auth/register", `{"username":"`+username+`","password":"secret1"}`)
	expect(t, rec, http.StatusOK, "")
	var resp authResponse
	decode(t, rec, &resp)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	e := newTestServer(t, Options{})

	registered := registerUser(t, e, "alice")
	if registered.ID == 0 || registered.Username != "alice" || registered.Token == "" {
		t.Fatalf("unexpected register response %+v", registered)
	}

	rec := do(t, e, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"secret1"}`)
	expect(t, rec, http.StatusOK, "")
	var loggedIn authResponse
	decode(t, rec, &loggedIn)
	if loggedIn.ID != registered.ID || loggedIn.Token == "" {
		t.Errorf("unexpected login response %+v", loggedIn)
	}
}

func TestRegisterDuplicateIsServerError(t *testing.T) {
	e := newTestServer(t, Options{})
	registerUser(t, e, "alice")

	rec := do(t, e, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"another1"}`)
	expect(t, rec, http.StatusInternalServerError, "An error occurred: username already exists")
}

func TestLoginFailuresAreIdentical(t *testing.T) {
	e := newTestServer(t, Options{})
	registerUser(t, e, "alice")

	wrongPassword := do(t, e, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong-pass"}`)
	unknownUser := do(t, e, http.MethodPost, "/api/auth/login", `{"username":"bob","password":"secret1"}`)

	expect(t, wrongPassword, http.StatusInternalServerError, "An error occurred: invalid credentials")
	expect(t, unknownUser, http.StatusInternalServerError, "An error occurred: invalid credentials")
}

func TestAuthValidation(t *testing.T) {
	e := newTestServer(t, Options{})

	rec := do(t, e, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"123"}`)
	expect(t, rec, http.StatusBadRequest, "Validation error: password: Password must be at least 6 characters")
}

func TestFolderLifecycle(t *testing.T) {
	e := newTestServer(t, Options{})
	user := registerUser(t, e, "alice")

	rec := do(t, e, http.MethodPost, "/api/folders", `{"name":"Work","userId":`+itoa(user.ID)+`}`)
	expect(t, rec, http.StatusOK, "")
	var created model.Folder
	decode(t, rec, &created)
	if created.ID == 0 || created.Name != "Work" || created.UserID == nil || *created.UserID != user.ID {
		t.Fatalf("unexpected folder %+v", created)
	}

	rec = do(t, e, http.MethodPut, "/api/folders/"+itoa(created.ID), `{"name":"Office"}`)
	expect(t, rec, http.StatusOK, "")

	rec = do(t, e, http.MethodGet, "/api/folders?userId="+itoa(user.ID), "")
	expect(t, rec, http.StatusOK, "")
	var folders []model.Folder
	decode(t, rec, &folders)
	if len(folders) != 1 || folders[0].Name != "Office" {
		t.Fatalf("unexpected folders %+v", folders)
	}

	rec = do(t, e, http.MethodGet, "/api/folders", "")
	expect(t, rec, http.StatusOK, "[]\n")

	rec = do(t, e, http.MethodDelete, "/api/folders/"+itoa(created.ID), "")
	expect(t, rec, http.StatusNoContent, "")

	rec = do(t, e, http.MethodPut, "/api/folders/"+itoa(created.ID), `{"name":"Gone"}`)
	expect(t, rec, http.StatusInternalServerError, "An error occurred: folder not found with id: "+itoa(created.ID))
}

func TestFolderCreateRequiresOwner(t *testing.T) {
	e := newTestServer(t, Options{})

	rec := do(t, e, http.MethodPost, "/api/folders", `{"name":" "}`)
	expect(t, rec, http.StatusBadRequest,
		"Validation error: name: Folder name must not be blank, userId: User ID is required")
}

func TestTodoLifecycle(t *testing.T) {
	e := newTestServer(t, Options{})
	user := registerUser(t, e, "alice")
	uid := itoa(user.ID)

	rec := do(t, e, http.MethodPost, "/api/todos", `{"title":"ab","userId":`+uid+
		`,"taskType":"coding","priority":"high","startTime":"2024-05-01T09:00","frequency":"daily","context":"office"}`)
	expect(t, rec, http.StatusOK, "")
	var created model.Todo
	decode(t, rec, &created)
	if created.PredictedCompletionTime != 29 {
		t.Errorf("predicted = %d, want 29", created.PredictedCompletionTime)
	}
	if created.Completed || created.FolderID != nil {
		t.Errorf("unexpected new todo %+v", created)
	}
	if !strings.Contains(rec.Body.String(), `"startTime":"2024-05-01T09:00:00"`) {
		t.Errorf("startTime not serialized as local date-time: %s", rec.Body.String())
	}

	id := itoa(created.ID)
	rec = do(t, e, http.MethodPut, "/api/todos/"+id, `{"title":"abcd"}`)
	expect(t, rec, http.StatusOK, "")
	var updated model.Todo
	decode(t, rec, &updated)
	if updated.Title != "abcd" || updated.PredictedCompletionTime != 33 {
		t.Errorf("updated = %q/%d, want abcd/33", updated.Title, updated.PredictedCompletionTime)
	}

	for i := 0; i < 2; i++ {
		rec = do(t, e, http.MethodPut, "/api/todos/"+id+"/complete", "")
		expect(t, rec, http.StatusOK, "")
		var completed model.Todo
		decode(t, rec, &completed)
		if !completed.Completed || completed.PredictedCompletionTime != 33 {
			t.Errorf("complete #%d: %+v", i+1, completed)
		}
	}

	rec = do(t, e, http.MethodPut, "/api/todos/"+id+"/incomplete", "")
	expect(t, rec, http.StatusOK, "")
	var reopened model.Todo
	decode(t, rec, &reopened)
	if reopened.Completed {
		t.Error("todo should be incomplete")
	}

	rec = do(t, e, http.MethodDelete, "/api/todos/"+id, "")
	expect(t, rec, http.StatusNoContent, "")

	rec = do(t, e, http.MethodGet, "/api/todos?userId="+uid+"&all=true", "")
	expect(t, rec, http.StatusOK, "[]\n")
}

func TestTodoListScopes(t *testing.T) {
	e := newTestServer(t, Options{})
	user := registerUser(t, e, "alice")
	uid := itoa(user.ID)

	rec := do(t, e, http.MethodPost, "/api/folders", `{"name":"Work","userId":`+uid+`}`)
	var f model.Folder
	decode(t, rec, &f)
	fid := itoa(f.ID)

	create := func(title, folderID string) {
		body := `{"title":"` + title + `","userId":` + uid + `,"taskType":"study","priority":"low","startTime":"2024-05-01T12:00:30"`
		if folderID != "" {
			body += `,"folderId":` + folderID
		}
		expect(t, do(t, e, http.MethodPost, "/api/todos", body+`}`), http.StatusOK, "")
	}
	create("loose", "")
	create("filed", fid)

	list := func(query string) []model.Todo {
		rec := do(t, e, http.MethodGet, "/api/todos?"+query, "")
		expect(t, rec, http.StatusOK, "")
		var todos []model.Todo
		decode(t, rec, &todos)
		return todos
	}

	if todos := list("userId=" + uid); len(todos) != 1 || todos[0].Title != "loose" {
		t.Errorf("unassigned = %+v", todos)
	}
	if todos := list("userId=" + uid + "&folderId=" + fid); len(todos) != 1 || todos[0].Title != "filed" {
		t.Errorf("folder = %+v", todos)
	}
	if todos := list("userId=" + uid + "&folderId=" + fid + "&all=true"); len(todos) != 2 {
		t.Errorf("all = %+v", todos)
	}

	expect(t, do(t, e, http.MethodDelete, "/api/folders/"+fid, ""), http.StatusNoContent, "")
	if todos := list("userId=" + uid + "&all=true"); len(todos) != 1 || todos[0].Title != "loose" {
		t.Errorf("after folder delete = %+v", todos)
	}
}

func TestTodoListRequiresUserID(t *testing.T) {
	e := newTestServer(t, Options{})

	rec := do(t, e, http.MethodGet, "/api/todos", "")
	expect(t, rec, http.StatusBadRequest, "userId: required field value is empty")
}

func TestTodoCreateFailures(t *testing.T) {
	tests := []struct {
		name     string
		distinct bool
		body     string
		status   int
		want     string
	}{
		{
			name:   "blank fields",
			body:   `{"title":"","taskType":" ","priority":"high","startTime":"2024-05-01T09:00"}`,
			status: http.StatusBadRequest,
			want: "Validation error: taskType: Task type is required, " +
				"title: Task description must not be blank, userId: User ID is required",
		},
		{
			name:   "bad start time",
			body:   `{"title":"a","userId":1,"taskType":"x","priority":"y","startTime":"tomorrow"}`,
			status: http.StatusInternalServerError,
			want:   "An error occurred: invalid startTime format: tomorrow",
		},
		{
			name:     "bad start time distinct",
			distinct: true,
			body:     `{"title":"a","userId":1,"taskType":"x","priority":"y","startTime":"tomorrow"}`,
			status:   http.StatusBadRequest,
			want:     "An error occurred: invalid startTime format: tomorrow",
		},
		{
			name:   "missing folder",
			body:   `{"title":"a","userId":1,"taskType":"x","priority":"y","startTime":"2024-05-01T09:00","folderId":99}`,
			status: http.StatusInternalServerError,
			want:   "An error occurred: folder not found with id: 99",
		},
		{
			name:     "missing folder distinct",
			distinct: true,
			body:     `{"title":"a","userId":1,"taskType":"x","priority":"y","startTime":"2024-05-01T09:00","folderId":99}`,
			status:   http.StatusNotFound,
			want:     "An error occurred: folder not found with id: 99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(t, Options{DistinctErrors: tt.distinct})
			expect(t, do(t, e, http.MethodPost, "/api/todos", tt.body), tt.status, tt.want)

			rec := do(t, e, http.MethodGet, "/api/todos?userId=1&all=true", "")
			expect(t, rec, http.StatusOK, "[]\n")
		})
	}
}

func TestDistinctErrors(t *testing.T) {
	e := newTestServer(t, Options{DistinctErrors: true})
	registerUser(t, e, "alice")

	expect(t, do(t, e, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"secret1"}`),
		http.StatusConflict, "An error occurred: username already exists")
	expect(t, do(t, e, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"nope-nope"}`),
		http.StatusUnauthorized, "An error occurred: invalid credentials")
	expect(t, do(t, e, http.MethodPut, "/api/todos/42/complete", ""),
		http.StatusNotFound, "An error occurred: todo not found with id: 42")
}

func TestBadPathID(t *testing.T) {
	e := newTestServer(t, Options{})

	rec := do(t, e, http.MethodDelete, "/api/todos/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRequireToken(t *testing.T) {
	e := newTestServer(t, Options{RequireToken: true})
	user := registerUser(t, e, "alice")
	target := "/api/todos?userId=" + itoa(user.ID)

	expect(t, do(t, e, http.MethodGet, target, ""), http.StatusUnauthorized, "invalid JWT token")
	expect(t, do(t, e, http.MethodGet, target, "", echo.HeaderAuthorization, "Bearer garbage"),
		http.StatusUnauthorized, "invalid JWT token")
	expect(t, do(t, e, http.MethodGet, target, "", echo.HeaderAuthorization, "Bearer "+user.Token),
		http.StatusOK, "[]\n")
}

func TestCORSPreflight(t *testing.T) {
	e := newTestServer(t, Options{})

	rec := do(t, e, http.MethodOptions, "/api/todos", "",
		echo.HeaderOrigin, "http://localhost:3000",
		echo.HeaderAccessControlRequestMethod, http.MethodPost)
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}
}

func TestRequestIDHeader(t *testing.T) {
	e := newTestServer(t, Options{})

	rec := do(t, e, http.MethodGet, "/api/folders", "")
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Error("expected a request id header")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
