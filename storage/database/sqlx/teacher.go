package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mergington/highschool/core/teacher"
)

type teacherRepository struct {
	db *sqlx.DB
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *sqlx.DB) teacher.Repository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) GetTeacherByUsername(ctx context.Context, username string) (teacher.Teacher, error) {
	var tchr teacher.Teacher
	err := repo.db.GetContext(ctx, &tchr,
		`SELECT username, display_name, password_hash, role FROM teacher WHERE username = $1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher")
	}
	return tchr, nil
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	teachers := make([]teacher.Teacher, 0)
	err := repo.db.SelectContext(ctx, &teachers,
		`SELECT username, display_name, password_hash, role FROM teacher ORDER BY username`)
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}
	return teachers, nil
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, tchr teacher.Teacher) (teacher.Teacher, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO teacher (username, display_name, password_hash, role) VALUES ($1, $2, $3, $4)`,
		tchr.Username, tchr.DisplayName, tchr.PasswordHash, tchr.Role)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "creating teacher")
	}
	return tchr, nil
}
