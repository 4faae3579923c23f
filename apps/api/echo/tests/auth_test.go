package tests

import (
	"context"
	"net/http"
	"testing"

	. "github.com/mergington/highschool/apps/api/echo"
)

func Test_authApi_login(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	rodriguez, err := env.teacherRepo.GetTeacherByUsername(ctx, "ms_rodriguez")
	if err != nil {
		t.Fatalf("GetTeacherByUsername(): %v", err)
	}
	smith, err := env.teacherRepo.GetTeacherByUsername(ctx, "mr_smith")
	if err != nil {
		t.Fatalf("GetTeacherByUsername(): %v", err)
	}

	tests := []httpTest{
		{
			name:     "login ok",
			path:     "/auth/login",
			body:     marchallObj(t, LoginRequest{Username: "ms_rodriguez", Password: "SecurePass123"}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, rodriguez), // password hash never serialized
		},
		{
			name:     "username is case-insensitive",
			path:     "/auth/login",
			body:     marchallObj(t, LoginRequest{Username: " MS_Rodriguez ", Password: "SecurePass123"}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, rodriguez),
		},
		{
			name:     "credentials via query params",
			path:     "/auth/login?username=mr_smith&password=TeacherPass456",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, smith),
		},
		{
			name:     "body wins over query",
			path:     "/auth/login?username=ms_rodriguez&password=wrong",
			body:     marchallObj(t, LoginRequest{Username: "ms_rodriguez", Password: "SecurePass123"}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, rodriguez),
		},
		{
			name:     "wrong password",
			path:     "/auth/login",
			body:     marchallObj(t, LoginRequest{Username: "ms_rodriguez", Password: "WrongPass"}),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errInvalidLogin),
		},
		{
			// unknown accounts get the exact same response as a bad password
			name:     "unknown username",
			path:     "/auth/login",
			body:     marchallObj(t, LoginRequest{Username: "mr_nobody", Password: "SecurePass123"}),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errInvalidLogin),
		},
		{
			name:     "missing password",
			path:     "/auth/login",
			body:     marchallObj(t, LoginRequest{Username: "ms_rodriguez"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password": "this field is required"}),
		},
		{
			name:     "missing credentials",
			path:     "/auth/login",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": "this field is required",
				"password": "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, tt.path, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_checkSession(t *testing.T) {
	env := setup(t)

	rodriguez, err := env.teacherRepo.GetTeacherByUsername(context.Background(), "ms_rodriguez")
	if err != nil {
		t.Fatalf("GetTeacherByUsername(): %v", err)
	}

	tests := []httpTest{
		{
			name:     "known username",
			path:     "/auth/check-session?username=ms_rodriguez",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, rodriguez),
		},
		{
			name:     "unknown username",
			path:     "/auth/check-session?username=mr_nobody",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Teacher not found"}),
		},
		{
			name:     "missing username",
			path:     "/auth/check-session",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Teacher not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
