package services_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/employee-desk/v2/internal/testutil/fakeapi"
	"github.com/employee-desk/v2/services"
)

type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Token() (string, error) {
	return s.token, s.err
}

func newClient(t *testing.T, srv *fakeapi.Server, tokens services.TokenSource) *services.ApiClient {
	t.Helper()
	c, err := services.NewApiClient(srv.APIURL(), srv.Client(), tokens)
	require.NoError(t, err)
	return c
}

func TestRequestHeaders(t *testing.T) {
	h := services.RequestHeaders("abc", "")
	assert.Equal(t, "Bearer abc", h.Get("Authorization"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, "application/json", h.Get("Accept"))

	h = services.RequestHeaders("", "multipart/form-data; boundary=x")
	assert.Empty(t, h.Values("Authorization"))
	assert.Equal(t, "multipart/form-data; boundary=x", h.Get("Content-Type"))
}

func TestNewApiClient_Validation(t *testing.T) {
	_, err := services.NewApiClient("", nil, nil)
	require.Error(t, err)

	_, err = services.NewApiClient("/relative/api", nil, nil)
	require.Error(t, err)

	c, err := services.NewApiClient("https://ems.example.com/api", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://ems.example.com/api", c.BaseURL())
}

// every wrapper, called once with and once without a stored token
func allOperations() map[string]func(ctx context.Context, c *services.ApiClient) error {
	form := services.Form{Fields: map[string]string{"name": "Ada"}}
	return map[string]func(ctx context.Context, c *services.ApiClient) error{
		"register": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewAuthService(c).Register(ctx, form)
			return err
		},
		"employees list": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewEmployeeService(c).List(ctx)
			return err
		},
		"employees get": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewEmployeeService(c).Get(ctx, "7")
			return err
		},
		"employees update": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewEmployeeService(c).Update(ctx, "7", form)
			return err
		},
		"employees delete": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewEmployeeService(c).Delete(ctx, "7")
			return err
		},
		"employees status": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewEmployeeService(c).SetStatus(ctx, "7", false)
			return err
		},
		"leave apply": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewLeaveService(c).Apply(ctx, map[string]string{"reason": "trip"})
			return err
		},
		"leave all": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewLeaveService(c).List(ctx)
			return err
		},
		"leave by employee": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewLeaveService(c).ListByEmployee(ctx, "7")
			return err
		},
		"leave status": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewLeaveService(c).UpdateStatus(ctx, "l1", "Approved")
			return err
		},
		"attendance mark": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewAttendanceService(c).Mark(ctx, map[string]string{"status": "Present"})
			return err
		},
		"attendance list": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewAttendanceService(c).List(ctx)
			return err
		},
		"timesheets add": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewTimesheetService(c).Add(ctx, map[string]any{"hours": 8})
			return err
		},
		"timesheets list": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewTimesheetService(c).List(ctx)
			return err
		},
		"timesheets by employee": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewTimesheetService(c).ListByEmployee(ctx, "7")
			return err
		},
		"payrolls list": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewPayrollService(c).List(ctx)
			return err
		},
		"payrolls create": func(ctx context.Context, c *services.ApiClient) error {
			_, err := services.NewPayrollService(c).Create(ctx, map[string]any{"amount": 100})
			return err
		},
	}
}

func TestEveryRequestCarriesTheStoredToken(t *testing.T) {
	ctx := context.Background()
	for name, op := range allOperations() {
		t.Run(name, func(t *testing.T) {
			srv := fakeapi.New(t)
			tokens := &staticTokens{token: "abc"}
			c := newClient(t, srv, tokens)

			require.NoError(t, op(ctx, c))
			assert.Equal(t, "Bearer abc", srv.Last().Authorization)
			assert.NotEmpty(t, srv.Last().RequestID)

			tokens.token = ""
			require.NoError(t, op(ctx, c))
			assert.Empty(t, srv.Last().Authorization)
		})
	}
}

func TestTokenReadFailureSendsUnauthenticated(t *testing.T) {
	srv := fakeapi.New(t)
	c := newClient(t, srv, &staticTokens{token: "abc", err: errors.New("disk on fire")})

	_, err := services.NewEmployeeService(c).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, srv.Last().Authorization)
}

func TestNilTokenSource(t *testing.T) {
	srv := fakeapi.New(t)
	c := newClient(t, srv, nil)

	_, err := services.NewPayrollService(c).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, srv.Last().Authorization)
}

func TestEndpointsAndEncodings(t *testing.T) {
	srv := fakeapi.New(t)
	c := newClient(t, srv, &staticTokens{})
	ctx := context.Background()

	cases := map[string]struct {
		op          func() error
		method      string
		path        string
		contentType string
		body        string
	}{
		"admin signup": {
			op: func() error {
				_, err := services.NewAuthService(c).AdminSignup(ctx, typesSignup())
				return err
			},
			method: http.MethodPost, path: "/api/adminSignup", contentType: "application/json",
			body: `{"name":"Ada","email":"ada@x.com","password":"secret1"}`,
		},
		"toggle status": {
			op: func() error {
				_, err := services.NewEmployeeService(c).SetStatus(ctx, "42", true)
				return err
			},
			method: http.MethodPatch, path: "/api/employees/42/status", contentType: "application/json",
			body: `{"isActive":true}`,
		},
		"leave status": {
			op: func() error {
				_, err := services.NewLeaveService(c).UpdateStatus(ctx, "9", "Rejected")
				return err
			},
			method: http.MethodPut, path: "/api/leave/update-status/9", contentType: "application/json",
			body: `{"status":"Rejected"}`,
		},
		"delete employee": {
			op: func() error {
				_, err := services.NewEmployeeService(c).Delete(ctx, "42")
				return err
			},
			method: http.MethodDelete, path: "/api/employees/42", contentType: "application/json",
		},
		"timesheets by employee": {
			op: func() error {
				_, err := services.NewTimesheetService(c).ListByEmployee(ctx, "e 1")
				return err
			},
			method: http.MethodGet, path: "/api/timesheets/e 1", contentType: "application/json",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, tc.op())
			last := srv.Last()
			assert.Equal(t, tc.method, last.Method)
			assert.Equal(t, tc.path, last.Path)
			assert.Equal(t, tc.contentType, last.ContentType)
			if tc.body != "" {
				assert.JSONEq(t, tc.body, string(last.Body))
			}
		})
	}
}

func TestMultipartUpdate(t *testing.T) {
	srv := fakeapi.New(t)
	c := newClient(t, srv, &staticTokens{token: "abc"})

	form := services.Form{
		Fields: map[string]string{"name": "Ada", "department": "R&D"},
		Files:  []services.FormFile{{Field: "image", FileName: "ada.png", Data: []byte("png-bytes")}},
	}
	resp, err := services.NewEmployeeService(c).Update(context.Background(), "42", form)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	last := srv.Last()
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/api/employees/42", last.Path)
	assert.True(t, strings.HasPrefix(last.ContentType, "multipart/form-data; boundary="))
	assert.Equal(t, "Ada", last.FormFields["name"])
	assert.Equal(t, "R&D", last.FormFields["department"])
	assert.Equal(t, []byte("png-bytes"), last.FormFiles["image"])
	assert.Equal(t, "Bearer abc", last.Authorization)
}

func TestResponsesAndBodies(t *testing.T) {
	srv := fakeapi.New(t)
	c := newClient(t, srv, &staticTokens{})
	ctx := context.Background()

	resp, err := services.NewEmployeeService(c).Get(ctx, "42")
	require.NoError(t, err)
	var employee struct {
		ID string `json:"_id"`
	}
	require.NoError(t, resp.Decode(&employee))
	assert.Equal(t, "42", employee.ID)

	body, err := services.NewTimesheetService(c).List(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"_id":"1"},{"_id":"2"}]`, string(body))
}

func TestNonSuccessStatusIsAnAPIError(t *testing.T) {
	srv := fakeapi.New(t)
	srv.FailWith("/api/payrolls", http.StatusForbidden)
	c := newClient(t, srv, &staticTokens{token: "abc"})

	_, err := services.NewPayrollService(c).List(context.Background())
	require.Error(t, err)

	var apiErr *services.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Forbidden", apiErr.Message)
	assert.JSONEq(t, `{"message":"Forbidden"}`, string(apiErr.Payload))
	assert.False(t, errors.Is(err, services.ErrTransport))
	assert.Len(t, srv.Requests(), 1, "no retry")
}

func TestTransportFailure(t *testing.T) {
	srv := fakeapi.New(t)
	c := newClient(t, srv, &staticTokens{})
	srv.Close()

	_, err := services.NewAttendanceService(c).List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrTransport))
}

func TestIDsAreEscapedAsOneSegment(t *testing.T) {
	srv := fakeapi.New(t)
	c := newClient(t, srv, &staticTokens{})
	employees := services.NewEmployeeService(c)
	ctx := context.Background()

	cases := map[string]struct {
		call    func() error
		method  string
		path    string
		escaped string
	}{
		"bare percent": {
			call:    func() error { _, err := employees.Delete(ctx, "100%"); return err },
			method:  http.MethodDelete,
			path:    "/api/employees/100%",
			escaped: "/api/employees/100%25",
		},
		"encoded slash": {
			call:    func() error { _, err := employees.Get(ctx, "a%2Fb"); return err },
			method:  http.MethodGet,
			path:    "/api/employees/a%2Fb",
			escaped: "/api/employees/a%252Fb",
		},
		"encoded dots": {
			call:    func() error { _, err := employees.Get(ctx, "%2E%2E"); return err },
			method:  http.MethodGet,
			path:    "/api/employees/%2E%2E",
			escaped: "/api/employees/%252E%252E",
		},
		"status suffix stays after the id": {
			call:    func() error { _, err := employees.SetStatus(ctx, "a%2Fstatus", true); return err },
			method:  http.MethodPatch,
			path:    "/api/employees/a%2Fstatus/status",
			escaped: "/api/employees/a%252Fstatus/status",
		},
		"leave id with space": {
			call: func() error {
				_, err := services.NewLeaveService(c).UpdateStatus(ctx, "l 1", "Approved")
				return err
			},
			method:  http.MethodPut,
			path:    "/api/leave/update-status/l 1",
			escaped: "/api/leave/update-status/l%201",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, tc.call())
			last := srv.Last()
			assert.Equal(t, tc.method, last.Method)
			assert.Equal(t, tc.path, last.Path)
			assert.Equal(t, tc.escaped, last.EscapedPath)
		})
	}
}

func TestInvalidIDsAreRejectedBeforeSending(t *testing.T) {
	srv := fakeapi.New(t)
	c := newClient(t, srv, &staticTokens{})
	ctx := context.Background()

	_, err := services.NewEmployeeService(c).Get(ctx, " ")
	require.Error(t, err)
	_, err = services.NewEmployeeService(c).Delete(ctx, "../payrolls")
	require.Error(t, err)
	_, err = services.NewEmployeeService(c).Get(ctx, "..")
	require.Error(t, err)
	_, err = services.NewLeaveService(c).UpdateStatus(ctx, "1", "")
	require.Error(t, err)

	assert.Empty(t, srv.Requests())
}
