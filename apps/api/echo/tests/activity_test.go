package tests

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	. "github.com/mergington/highschool/apps/api/echo"
	"github.com/mergington/highschool/core/activity"
)

func activityMapJSON(t *testing.T, env *testEnv, filter activity.QueryFilter) []byte {
	t.Helper()

	acts, err := env.actRepo.FilterActivities(context.Background(), filter)
	if err != nil {
		t.Fatalf("FilterActivities(): %v", err)
	}
	byName := make(map[string]activity.Activity, len(acts))
	for _, act := range acts {
		byName[act.Name] = act
	}
	return marchallObj(t, byName)
}

func hasParticipant(t *testing.T, env *testEnv, name, email string) bool {
	t.Helper()

	act, err := env.actRepo.GetActivityByName(context.Background(), name)
	if err != nil {
		t.Fatalf("GetActivityByName(): %v", err)
	}
	return act.HasParticipant(email)
}

func Test_activityApi_query(t *testing.T) {
	env := setup(t)

	tests := []httpTest{
		{
			name:     "all activities",
			path:     "/activities",
			wantCode: http.StatusOK,
			wantData: activityMapJSON(t, env, activity.QueryFilter{}),
		},
		{
			name:     "trailing slash tolerated",
			path:     "/activities/",
			wantCode: http.StatusOK,
			wantData: activityMapJSON(t, env, activity.QueryFilter{}),
		},
		{
			name:     "filter by day",
			path:     "/activities?day=Monday",
			wantCode: http.StatusOK,
			wantData: activityMapJSON(t, env, activity.QueryFilter{Day: "Monday"}),
		},
		{
			name:     "filter by time window",
			path:     "/activities?start_time=15:00&end_time=17:00",
			wantCode: http.StatusOK,
			wantData: activityMapJSON(t, env, activity.QueryFilter{StartTime: "15:00", EndTime: "17:00"}),
		},
		{
			name:     "all filters combined",
			path:     "/activities?day=Friday&start_time=15:00&end_time=17:00",
			wantCode: http.StatusOK,
			wantData: activityMapJSON(t, env, activity.QueryFilter{Day: "Friday", StartTime: "15:00", EndTime: "17:00"}),
		},
		{
			name:     "no matches is an empty object",
			path:     "/activities?day=Sunday",
			wantCode: http.StatusOK,
			wantData: []byte(`{}`),
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

func Test_activityApi_queryDays(t *testing.T) {
	env := setup(t)

	tt := httpTest{
		name:     "sorted distinct days",
		path:     "/activities/days",
		wantCode: http.StatusOK,
		wantData: marchallObj(t, []string{"Friday", "Monday", "Thursday", "Tuesday", "Wednesday"}),
	}
	req, rec := newRequest(http.MethodGet, tt.path)
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_activityApi_signup(t *testing.T) {
	tests := []httpTest{
		{
			name:     "signup ok",
			path:     "/activities/Chess%20Club/signup?email=newkid@mergington.edu&teacher_username=ms_rodriguez",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, httpMsg{Message: "Successfully signed up newkid@mergington.edu for Chess Club"}),
			extra:    "newkid@mergington.edu",
		},
		{
			name:     "email in body",
			path:     "/activities/Chess%20Club/signup?teacher_username=mr_smith",
			body:     marchallObj(t, RosterRequest{Email: "bodykid@mergington.edu"}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, httpMsg{Message: "Successfully signed up bodykid@mergington.edu for Chess Club"}),
			extra:    "bodykid@mergington.edu",
		},
		{
			name:     "missing teacher username",
			path:     "/activities/Chess%20Club/signup?email=newkid@mergington.edu",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errAuthRequired),
		},
		{
			name:     "unknown teacher username",
			path:     "/activities/Chess%20Club/signup?email=newkid@mergington.edu&teacher_username=mr_nobody",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errInvalidTeacher),
		},
		{
			// the email is validated before the caller identity is looked at
			name:     "invalid email without caller",
			path:     "/activities/Chess%20Club/signup?email=not-an-email",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "invalid email format"}),
		},
		{
			name:     "unknown activity",
			path:     "/activities/Knitting%20Club/signup?email=newkid@mergington.edu&teacher_username=ms_rodriguez",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Activity not found"}),
		},
		{
			name:     "duplicate signup",
			path:     "/activities/Chess%20Club/signup?email=michael@mergington.edu&teacher_username=ms_rodriguez",
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "Already signed up for this activity"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)

			req, rec := newRequest(http.MethodPost, tt.path, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if email, ok := tt.extra.(string); ok {
				if !hasParticipant(t, env, "Chess Club", email) {
					t.Errorf("participant %q missing from roster", email)
				}
			}
		})
	}
}

func Test_activityApi_signupConflictLeavesRosterUnchanged(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	before, err := env.actRepo.GetActivityByName(ctx, "Chess Club")
	if err != nil {
		t.Fatalf("GetActivityByName(): %v", err)
	}

	path := "/activities/Chess%20Club/signup?email=michael@mergington.edu&teacher_username=ms_rodriguez"
	req, rec := newRequest(http.MethodPost, path)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %v; want %v", rec.Code, http.StatusConflict)
	}

	after, err := env.actRepo.GetActivityByName(ctx, "Chess Club")
	if err != nil {
		t.Fatalf("GetActivityByName(): %v", err)
	}
	if fmt.Sprint(before.Participants) != fmt.Sprint(after.Participants) {
		t.Errorf("roster changed: %v -> %v", before.Participants, after.Participants)
	}
}

func Test_activityApi_unregister(t *testing.T) {
	tests := []httpTest{
		{
			name:     "cancel signup",
			method:   http.MethodDelete,
			path:     "/activities/Chess%20Club/signup?email=michael@mergington.edu&teacher_username=ms_rodriguez",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, httpMsg{Message: "Canceled signup for michael@mergington.edu from Chess Club"}),
			extra:    "michael@mergington.edu",
		},
		{
			name:     "unregister",
			method:   http.MethodPost,
			path:     "/activities/Chess%20Club/unregister?email=michael@mergington.edu&teacher_username=ms_rodriguez",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, httpMsg{Message: "Unregistered michael@mergington.edu from Chess Club"}),
			extra:    "michael@mergington.edu",
		},
		{
			name:     "missing teacher username",
			method:   http.MethodDelete,
			path:     "/activities/Chess%20Club/signup?email=michael@mergington.edu",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errAuthRequired),
		},
		{
			name:     "unknown activity",
			method:   http.MethodDelete,
			path:     "/activities/Knitting%20Club/signup?email=michael@mergington.edu&teacher_username=ms_rodriguez",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Activity not found"}),
		},
		{
			name:     "not registered",
			method:   http.MethodDelete,
			path:     "/activities/Chess%20Club/signup?email=stranger@mergington.edu&teacher_username=ms_rodriguez",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Not registered for this activity"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)

			req, rec := newRequest(tt.method, tt.path, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if email, ok := tt.extra.(string); ok {
				if hasParticipant(t, env, "Chess Club", email) {
					t.Errorf("participant %q still on roster", email)
				}
			}
		})
	}
}
