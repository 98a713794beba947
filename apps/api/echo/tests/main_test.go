package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/nossauesc/agenda/apps/api/echo"
	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
	"github.com/nossauesc/agenda/core/appointment"
	"github.com/nossauesc/agenda/core/course"
	cachesvc "github.com/nossauesc/agenda/services/cache"
	emailsvc "github.com/nossauesc/agenda/services/email"
	logsvc "github.com/nossauesc/agenda/services/logger"
	"github.com/nossauesc/agenda/storage/database/inmem"
	"github.com/nossauesc/agenda/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type env struct {
	app   Server
	conf  *core.Config
	store *inmemdb.DB
}

func testConf() *core.Config {
	return &core.Config{
		Env:       "TEST",
		TestMode:  true,
		AppName:   "Nossa UESC",
		SecretKey: "test-secret",
	}
}

func setup(t *testing.T, submissionsPerMin ...int) env {
	conf := testConf()
	conf.Server.JWTExpirationDelta = time.Hour
	conf.Server.DisableRequestLogs = true
	conf.Server.SubmissionsPerMin = 100
	if len(submissionsPerMin) > 0 {
		conf.Server.SubmissionsPerMin = submissionsPerMin[0]
	}

	emailsvc.ResetSentMessages()
	store := inmemdb.Open()
	testutil.SeedCourses(t, store)
	validate, translator := testutil.NewValidator()
	logger := logsvc.NewNopLogger()
	courseSvc := course.NewService(store)

	app := NewServer(ServerDeps{
		Conf:   conf,
		Logger: logger,
		AccountSvc: account.NewService(account.Deps{
			Store:    store,
			Cache:    cachesvc.NewMemoryCache(time.Hour),
			Courses:  courseSvc,
			MailSvc:  emailsvc.NewConsoleServiceMock(conf, logger),
			Validate: validate,
			Logger:   logger,
		}),
		AppointmentSvc: appointment.NewService(appointment.Deps{
			Store:    store,
			Courses:  courseSvc,
			Validate: validate,
			Logger:   logger,
		}),
		CourseSvc:  courseSvc,
		Validate:   validate,
		Translator: translator,
	})
	return env{app: app, conf: conf, store: store}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, uid, role string) string {
	id := account.Identity{UID: uid, DisplayName: "User " + uid, Email: uid + "@uesc.br", ProviderID: "google.com"}
	token, err := GenerateToken(conf, GetUserClaims(conf, id, role))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func unmarchallObj(t *testing.T, data []byte, obj interface{}) {
	if err := json.Unmarshal(data, obj); err != nil {
		t.Fatalf("unmarchallObj() failed: %v; data %s", err, data)
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqualValues(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHttpTests(t *testing.T, e env, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			e.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestServer_home(t *testing.T) {
	e := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	e.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Nossa UESC API!", rec.Body.String())
}
