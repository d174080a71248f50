package exportlog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("export entry not found")

// Entry records one attendance export produced by a user.
type Entry struct {
	ID        uuid.UUID
	Filename  string
	Format    string
	Layout    string
	Scope     string
	Rows      int
	Username  string
	CreatedAt time.Time
}
