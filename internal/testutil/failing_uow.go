package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/db"
)

// FailingUoW is a test UnitOfWork that injects Err into a transaction's
// writes, so rollback paths of multi-write operations can be exercised.
//
// With FailOn set, the FailOn-th ExecContext call (counted from 1) fails.
// With FailMatching set, any ExecContext whose query contains the substring
// fails. Reads pass through untouched.
type FailingUoW struct {
	DB           *sql.DB
	FailOn       int32
	FailMatching string
	Err          error

	calls atomic.Int32
}

// Calls reports how many ExecContext calls the last transaction issued.
func (u *FailingUoW) Calls() int32 {
	return u.calls.Load()
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	u.calls.Store(0)
	wrapped := &failingExec{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingExec struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.uow.calls.Add(1)
	if f.uow.FailOn > 0 && n == f.uow.FailOn {
		return nil, f.uow.Err
	}
	if f.uow.FailMatching != "" && strings.Contains(query, f.uow.FailMatching) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
