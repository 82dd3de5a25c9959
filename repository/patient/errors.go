package patient

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

const (
	mysqlDuplicateEntry   = 1062
	postgresUniqueViolate = "23505"
)

// ConflictError reports that a write would break a uniqueness constraint.
type ConflictError struct {
	Field string
	Value string
	Err   error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("patient with %s %q already exists", e.Field, e.Value)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// classifyWriteError turns driver level unique violations into *ConflictError.
// email is the only unique column besides the primary key.
func classifyWriteError(err error, email string) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return &ConflictError{Field: "email", Value: email, Err: err}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == postgresUniqueViolate {
		return &ConflictError{Field: "email", Value: email, Err: err}
	}

	return err
}
