package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nossauesc/agenda/core/account"
	"github.com/nossauesc/agenda/core/course"
	emailsvc "github.com/nossauesc/agenda/services/email"
	"github.com/nossauesc/agenda/tests"
)

func Test_accountApi_register(t *testing.T) {
	e := setup(t)
	token := getToken(t, e.conf, "u1", "")

	runHttpTests(t, e, []httpTest{
		{
			name:     "no token",
			method:   http.MethodPost,
			path:     "/v1/accounts",
			body:     marchallObj(t, account.NewProfile{}),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/v1/accounts",
			body:     marchallObj(t, account.NewProfile{IsTeacher: true}),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"registration": "this field is required",
				"course":       "this field is required",
				"department":   "this field is required",
				"search_area":  "this field is required",
			}),
		},
		{
			name:     "unknown course",
			method:   http.MethodPost,
			path:     "/v1/accounts",
			body:     marchallObj(t, account.NewProfile{Registration: "2018", Course: course.Course{ID: "nope"}}),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"course": account.ErrUnknownCourse.Error()}),
		},
	})

	t.Run("student", func(t *testing.T) {
		body := marchallObj(t, account.NewProfile{Registration: "2018", Course: course.Course{ID: "cic"}})
		req, rec := newAuthRequest(http.MethodPost, "/v1/accounts", token, body)
		e.app.ServeHTTP(rec, req)
		if !assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String()) {
			return
		}
		var prof account.Profile
		unmarchallObj(t, rec.Body.Bytes(), &prof)
		assert.Equal(t, "u1", prof.ID)
		assert.Equal(t, "User u1", prof.DisplayName)
		assert.Equal(t, account.RoleStudent, prof.Role)
		assert.Equal(t, "Ciência da Computação", prof.Course.String)
		assert.Empty(t, emailsvc.SentMessages)
	})

	t.Run("teacher waits for authorization", func(t *testing.T) {
		teacherToken := getToken(t, e.conf, "t1", "")
		body := marchallObj(t, account.NewProfile{
			IsTeacher:    true,
			Registration: "77",
			Department:   "DCET",
			SearchArea:   "Redes",
			Course:       course.Course{ID: "cic"},
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/accounts", teacherToken, body)
		e.app.ServeHTTP(rec, req)
		if !assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String()) {
			return
		}
		var prof account.Profile
		unmarchallObj(t, rec.Body.Bytes(), &prof)
		assert.Equal(t, account.RoleWaitingAuthorization, prof.Role)
		assert.Equal(t, "DCET", prof.Department.String)
	})
}

func Test_accountApi_retrieveMe(t *testing.T) {
	e := setup(t)
	prof := testutil.CreateProfile(t, e.store, "u1", "Ana", account.RoleStudent)

	runHttpTests(t, e, []httpTest{
		{
			name:     "no token",
			method:   http.MethodGet,
			path:     "/v1/accounts/me",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "not registered",
			method:   http.MethodGet,
			path:     "/v1/accounts/me",
			token:    getToken(t, e.conf, "ghost", ""),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account not registered"}),
		},
		{
			name:     "registered",
			method:   http.MethodGet,
			path:     "/v1/accounts/me",
			token:    getToken(t, e.conf, "u1", ""),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, prof),
		},
	})
}
