package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/mergington/highschool/apps/api/echo"
	"github.com/mergington/highschool/core/activity"
	"github.com/mergington/highschool/core/announcement"
	"github.com/mergington/highschool/core/bootstrap"
	"github.com/mergington/highschool/core/teacher"
	dummydb "github.com/mergington/highschool/storage/database/dummy"
)

var (
	errAuthRequired   = httpErr{Error: "Authentication required for this action"}
	errInvalidTeacher = httpErr{Error: "Invalid teacher credentials"}
	errInvalidLogin   = httpErr{Error: "Invalid username or password"}
)

type testEnv struct {
	app Server

	teacherRepo teacher.Repository
	actRepo     activity.Repository
	annRepo     announcement.Repository
}

// setup builds a server over fresh in-memory stores holding the initial dataset.
func setup(t *testing.T) *testEnv {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}

	env := &testEnv{
		teacherRepo: dummydb.NewTeacherRepository(db),
		actRepo:     dummydb.NewActivityRepository(db),
		annRepo:     dummydb.NewAnnouncementRepository(db),
	}

	seeder := bootstrap.NewSeeder(env.teacherRepo, env.actRepo, env.annRepo, nil)
	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("setup(): %v", err)
	}

	tchrSvc := teacher.NewService(env.teacherRepo)
	env.app = NewServer(&Options{
		TestMode:       true,
		DisableReqLogs: true,

		TeacherSvc:      tchrSvc,
		ActivitySvc:     activity.NewService(env.actRepo, tchrSvc),
		AnnouncementSvc: announcement.NewService(env.annRepo, tchrSvc),
	})
	return env
}

type httpErr struct {
	Error string `json:"error"`
}

type httpMsg struct {
	Message string `json:"message"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
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
	return assert.ObjectsAreEqual(j1, j2), nil
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
