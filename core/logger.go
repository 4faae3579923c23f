package core

// Logger is any service that can log messages at the usual levels.
// Extra args are appended to the entry; a teacher.Teacher arg is reported
// as the acting person where the backend supports it.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
