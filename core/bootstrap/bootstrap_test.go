package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mergington/highschool/core/activity"
	"github.com/mergington/highschool/core/announcement"
	"github.com/mergington/highschool/core/bootstrap"
	"github.com/mergington/highschool/core/teacher"
	dummydb "github.com/mergington/highschool/storage/database/dummy"
)

func newRepos(t *testing.T) (teacher.Repository, activity.Repository, announcement.Repository) {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)
	return dummydb.NewTeacherRepository(db), dummydb.NewActivityRepository(db), dummydb.NewAnnouncementRepository(db)
}

func TestSeederRun(t *testing.T) {
	tchrRepo, actRepo, annRepo := newRepos(t)
	ctx := context.Background()

	seeder := bootstrap.NewSeeder(tchrRepo, actRepo, annRepo, nil)
	require.NoError(t, seeder.Run(ctx))

	teachers, err := tchrRepo.QueryAllTeachers(ctx)
	require.NoError(t, err)
	assert.Len(t, teachers, 2)

	tchr, err := tchrRepo.GetTeacherByUsername(ctx, "ms_rodriguez")
	require.NoError(t, err)
	assert.Equal(t, "Ms. Rodriguez", tchr.DisplayName)
	assert.Equal(t, teacher.RoleTeacher, tchr.Role)
	assert.True(t, tchr.CheckPassword("SecurePass123"))
	assert.NotEqual(t, "SecurePass123", tchr.PasswordHash)

	acts, err := actRepo.FilterActivities(ctx, activity.QueryFilter{})
	require.NoError(t, err)
	assert.Len(t, acts, 8)

	chess, err := actRepo.GetActivityByName(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday", "Friday"}, chess.ScheduleDetails.Days)
	assert.Equal(t, "15:15", chess.ScheduleDetails.StartTime)
	assert.Equal(t, "16:45", chess.ScheduleDetails.EndTime)
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.True(t, chess.HasParticipant("michael@mergington.edu"))

	anns, err := annRepo.QueryAllAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, anns, 1)
	assert.NotEmpty(t, anns[0].ID)
	assert.NotEmpty(t, anns[0].ExpirationDate)
	assert.Empty(t, anns[0].StartDate)
}

func TestSeederRunIsIdempotent(t *testing.T) {
	tchrRepo, actRepo, annRepo := newRepos(t)
	ctx := context.Background()

	seeder := bootstrap.NewSeeder(tchrRepo, actRepo, annRepo, nil)
	require.NoError(t, seeder.Run(ctx))

	// mutate live data between runs
	changed, err := actRepo.AddParticipant(ctx, "Chess Club", "newkid@mergington.edu")
	require.NoError(t, err)
	require.True(t, changed)

	require.NoError(t, seeder.Run(ctx))

	teachers, err := tchrRepo.QueryAllTeachers(ctx)
	require.NoError(t, err)
	assert.Len(t, teachers, 2)

	acts, err := actRepo.FilterActivities(ctx, activity.QueryFilter{})
	require.NoError(t, err)
	assert.Len(t, acts, 8)

	// the reseed did not roll back live mutations
	chess, err := actRepo.GetActivityByName(ctx, "Chess Club")
	require.NoError(t, err)
	assert.True(t, chess.HasParticipant("newkid@mergington.edu"))

	anns, err := annRepo.QueryAllAnnouncements(ctx)
	require.NoError(t, err)
	assert.Len(t, anns, 1)
}

func TestSeederSkipsExistingAnnouncements(t *testing.T) {
	tchrRepo, actRepo, annRepo := newRepos(t)
	ctx := context.Background()

	custom, err := annRepo.CreateAnnouncement(ctx, announcement.Announcement{
		Message: "Handwritten", ExpirationDate: "2030-01-01",
	})
	require.NoError(t, err)

	seeder := bootstrap.NewSeeder(tchrRepo, actRepo, annRepo, nil)
	require.NoError(t, seeder.Run(ctx))

	anns, err := annRepo.QueryAllAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, anns, 1)
	assert.Equal(t, custom.ID, anns[0].ID)
}
