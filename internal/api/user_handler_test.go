package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"exercise-tracker/internal/config"
	"exercise-tracker/internal/dates"
	"exercise-tracker/internal/moderation"
	"exercise-tracker/internal/repository/memory"
	"exercise-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testEnv struct {
	router      *gin.Engine
	userService service.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	formatter, err := dates.New(config.DatesConfig{
		Timezone:      "America/Chicago",
		StorageLayout: "2006-01-02",
		DisplayLayout: "Mon Jan 02 2006",
	})
	require.NoError(t, err)

	filter := moderation.New([]string{"hitler", "stalin", "mussolini", "kim jong-un", "holocaust"})
	users := memory.NewUserRepository()
	exercises := memory.NewExerciseRepository()
	userService := service.NewUserService(users, exercises, filter, formatter)
	logService := service.NewLogService(users, exercises, formatter)

	router := gin.New()
	SetupRoutes(router, config.ServerConfig{
		PlainTextErrors: true,
		StaticDir:       t.TempDir(),
		IndexFile:       "testdata/index.html",
	}, userService, logService, formatter)

	return &testEnv{router: router, userService: userService}
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestCreateUserReturnsIDAndUsername(t *testing.T) {
	env := newTestEnv(t)

	rr := env.postForm("/api/users", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, "alice", body.Username)
}

func TestCreateUserAcceptsJSONBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"bob"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"bob"`)
}

func TestCreateUserDuplicateIsPlainText(t *testing.T) {
	env := newTestEnv(t)

	rr := env.postForm("/api/users", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.postForm("/api/users", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "This username is already taken", rr.Body.String())
}

func TestCreateUserProfaneIsPlainText(t *testing.T) {
	env := newTestEnv(t)

	rr := env.postForm("/api/users", url.Values{"username": {"Stalin"}})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Please choose an appropiate username", rr.Body.String())
}

func TestCreateUserMissingUsername(t *testing.T) {
	env := newTestEnv(t)

	rr := env.postForm("/api/users", url.Values{})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "username is required", rr.Body.String())
}

func TestListUsersIncludesRevisionCounter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.userService.Register(ctx, "alice")
	require.NoError(t, err)
	_, _, err = env.userService.LogExercise(ctx, user.ID, "run", 30, "2023-01-10")
	require.NoError(t, err)

	rr := env.get("/api/users")
	require.Equal(t, http.StatusOK, rr.Code)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, user.ID.Hex(), body[0]["_id"])
	assert.Equal(t, "alice", body[0]["username"])
	assert.Equal(t, float64(1), body[0]["__v"])
}

func TestLogExerciseResponseShape(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.userService.Register(context.Background(), "alice")
	require.NoError(t, err)

	rr := env.postForm("/api/users/"+user.ID.Hex()+"/exercises", url.Values{
		"description": {"run"},
		"duration":    {"30"},
		"date":        {"2023-01-10"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	assert.JSONEq(t, `{
		"_id": "`+user.ID.Hex()+`",
		"username": "alice",
		"date": "Tue Jan 10 2023",
		"duration": 30,
		"description": "run"
	}`, rr.Body.String())
}

func TestLogExerciseUnknownUserIsPlainText(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID().Hex()

	rr := env.postForm("/api/users/"+id+"/exercises", url.Values{
		"description": {"run"},
		"duration":    {"30"},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "A user with an _id of "+id+" was not found", rr.Body.String())
}

func TestLogExerciseInvalidDuration(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.userService.Register(context.Background(), "alice")
	require.NoError(t, err)

	rr := env.postForm("/api/users/"+user.ID.Hex()+"/exercises", url.Values{
		"description": {"run"},
		"duration":    {"lots"},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "duration must be a positive whole number", rr.Body.String())
}

func TestGetLogsDateRangeScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.userService.Register(ctx, "alice")
	require.NoError(t, err)
	_, _, err = env.userService.LogExercise(ctx, user.ID, "run", 30, "2023-01-10")
	require.NoError(t, err)

	rr := env.get("/api/users/" + user.ID.Hex() + "/logs?from=2023-01-01&to=2023-01-31")
	require.Equal(t, http.StatusOK, rr.Code)

	expected := `{"_id":"` + user.ID.Hex() + `","from":"Sun Jan 01 2023","to":"Tue Jan 31 2023","username":"alice","count":1,"log":[{"description":"run","duration":30,"date":"Tue Jan 10 2023"}]}`
	assert.Equal(t, expected, rr.Body.String())
}

func TestGetLogsLimitReturnsPrefix(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.userService.Register(ctx, "alice")
	require.NoError(t, err)
	for _, desc := range []string{"first", "second", "third"} {
		_, _, err = env.userService.LogExercise(ctx, user.ID, desc, 10, "2023-01-10")
		require.NoError(t, err)
	}

	rr := env.get("/api/users/" + user.ID.Hex() + "/logs?limit=1")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Count int `json:"count"`
		Log   []struct {
			Description string `json:"description"`
		} `json:"log"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Log, 1)
	assert.Equal(t, "first", body.Log[0].Description)
}

func TestGetLogsNoParametersOmitsBounds(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.userService.Register(context.Background(), "alice")
	require.NoError(t, err)

	rr := env.get("/api/users/" + user.ID.Hex() + "/logs")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.NotContains(t, body, "from")
	assert.NotContains(t, body, "to")
	assert.Equal(t, float64(0), body["count"])
}

func TestGetLogsUnknownUserIsPlainText(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID().Hex()

	rr := env.get("/api/users/" + id + "/logs")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "A user with an _id of "+id+" was not found", rr.Body.String())
	assert.False(t, json.Valid(rr.Body.Bytes()), "not-found response must be plain text, not JSON")
}

func TestGetLogsMalformedIDIsPlainText(t *testing.T) {
	env := newTestEnv(t)

	rr := env.get("/api/users/not-an-id/logs")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "A user with an _id of not-an-id was not found", rr.Body.String())
}

func TestStructuredErrorModeUsesStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	formatter, err := dates.New(config.DatesConfig{
		Timezone:      "America/Chicago",
		StorageLayout: "2006-01-02",
		DisplayLayout: "Mon Jan 02 2006",
	})
	require.NoError(t, err)

	users := memory.NewUserRepository()
	exercises := memory.NewExerciseRepository()
	userService := service.NewUserService(users, exercises, moderation.New(nil), formatter)
	logService := service.NewLogService(users, exercises, formatter)

	router := gin.New()
	SetupRoutes(router, config.ServerConfig{
		PlainTextErrors: false,
		StaticDir:       t.TempDir(),
		IndexFile:       "testdata/index.html",
	}, userService, logService, formatter)

	id := primitive.NewObjectID().Hex()
	req := httptest.NewRequest(http.MethodGet, "/api/users/"+id+"/logs", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error"`)
}
