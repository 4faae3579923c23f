package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DateFormat is the wire format for all calendar dates (ISO, zero-padded).
const DateFormat = "2006-01-02"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ParseDate parses a strict zero-padded `YYYY-MM-DD` date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// Today returns the current local date as a `YYYY-MM-DD` string.
// Date strings in this format compare chronologically with plain string
// comparison, which the stores rely on.
func Today() string {
	return time.Now().Format(DateFormat)
}

// Getwd tries to find the project root (the dir holding go.mod).
// go-test changes the working directory to the test package being run during tests... this breaks our code...
// see: https://stackoverflow.com/questions/23847003/golang-tests-and-working-directory
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
