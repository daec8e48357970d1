// Package envx reads configuration overrides from the process environment.
// An optional .env file in the working directory is loaded first; variables
// already set in the environment win over the file.
package envx

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the given files (".env" when none are given) into the
// process environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// String overwrites *dst when key is set.
func String(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// Int overwrites *dst when key is set to a valid integer.
func Int(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return &Error{Key: key, Err: err}
	}
	*dst = parsed
	return nil
}

// Bool overwrites *dst when key is set to a valid boolean.
func Bool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return &Error{Key: key, Err: err}
	}
	*dst = parsed
	return nil
}

// Duration overwrites *dst when key is set to a valid time.Duration string.
func Duration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return &Error{Key: key, Err: err}
	}
	*dst = parsed
	return nil
}

// Error reports an environment variable that could not be parsed.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string {
	return "invalid value for " + e.Key + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
