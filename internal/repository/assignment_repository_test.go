package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"skill-matrix/internal/database"
	"skill-matrix/internal/domain/allocation"
	"skill-matrix/internal/domain/project"

	"github.com/google/uuid"
)

type fakeDB struct {
	tx *fakeTx
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }
func (f *fakeDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("unexpected exec outside tx")
}
func (f *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("unexpected query outside tx")
}
func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row {
	return fakeRow{err: errors.New("unexpected query outside tx")}
}
func (f *fakeDB) Begin(context.Context) (database.Tx, error) { return f.tx, nil }

// fakeTx records every statement so tests can assert what ran, and in which
// order, inside the guarded transaction.
type fakeTx struct {
	userID uuid.UUID
	active []allocation.Assignment

	statements []string
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	t.statements = append(t.statements, query)
	return 1, nil
}

func (t *fakeTx) Query(_ context.Context, query string, _ ...any) (database.Rows, error) {
	t.statements = append(t.statements, query)
	return &fakeRows{items: t.active}, nil
}

func (t *fakeTx) QueryRow(_ context.Context, query string, _ ...any) database.Row {
	t.statements = append(t.statements, query)
	return fakeRow{id: t.userID}
}

func (t *fakeTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error { t.rolledBack = true; return nil }

type fakeRow struct {
	id  uuid.UUID
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) == 1 {
		if p, ok := dest[0].(*uuid.UUID); ok {
			*p = r.id
		}
	}
	return nil
}

type fakeRows struct {
	items []allocation.Assignment
	pos   int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Next() bool {
	if r.pos >= len(r.items) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	a := r.items[r.pos-1]
	*dest[0].(*uuid.UUID) = a.ID
	*dest[1].(*uuid.UUID) = a.ProjectID
	*dest[2].(*int) = a.Percentage
	return nil
}

func statementIndex(statements []string, substrs ...string) int {
	for i, s := range statements {
		ok := true
		for _, sub := range substrs {
			if !strings.Contains(s, sub) {
				ok = false
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

func TestCreateGuarded_LocksProfileBeforeReadingAllocations(t *testing.T) {
	userID := uuid.New()
	tx := &fakeTx{userID: userID, active: []allocation.Assignment{
		{ID: uuid.New(), ProjectID: uuid.New(), Percentage: 50},
	}}
	repo := NewPostgresAssignmentRepository(&fakeDB{tx: tx})

	var seen []allocation.Assignment
	err := repo.CreateGuarded(context.Background(), project.Assignment{
		ID: uuid.New(), ProjectID: uuid.New(), UserID: userID, AllocationPercentage: 25,
	}, func(existing []allocation.Assignment) error {
		seen = existing
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	lock := statementIndex(tx.statements, "FROM profiles", "FOR UPDATE")
	read := statementIndex(tx.statements, "FROM project_assignments pa")
	insert := statementIndex(tx.statements, "INSERT INTO project_assignments")
	if lock == -1 {
		t.Fatalf("expected a profile row lock, got statements: %v", tx.statements)
	}
	if read == -1 || lock > read {
		t.Fatalf("allocations must be read under the profile lock, got statements: %v", tx.statements)
	}
	if insert == -1 || read > insert {
		t.Fatalf("insert must follow the admission read, got statements: %v", tx.statements)
	}
	if len(seen) != 1 || seen[0].Percentage != 50 {
		t.Fatalf("admit must see the allocations read under the lock, got %v", seen)
	}
	if !tx.committed {
		t.Fatal("expected commit")
	}
}

func TestCreateGuarded_RejectedAdmissionWritesNothing(t *testing.T) {
	userID := uuid.New()
	tx := &fakeTx{userID: userID, active: []allocation.Assignment{
		{ID: uuid.New(), ProjectID: uuid.New(), Percentage: 75},
	}}
	repo := NewPostgresAssignmentRepository(&fakeDB{tx: tx})

	err := repo.CreateGuarded(context.Background(), project.Assignment{
		ID: uuid.New(), ProjectID: uuid.New(), UserID: userID, AllocationPercentage: 50,
	}, func(existing []allocation.Assignment) error {
		return allocation.Admit(existing, 50)
	})
	if !errors.Is(err, allocation.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	if statementIndex(tx.statements, "INSERT INTO project_assignments") != -1 {
		t.Fatal("no insert may run when admission fails")
	}
	if tx.committed || !tx.rolledBack {
		t.Fatal("rejected admission must roll back")
	}
}

func TestUpdateAllocationGuarded_LocksProfileBeforeReadingAllocations(t *testing.T) {
	userID := uuid.New()
	assignmentID := uuid.New()
	tx := &fakeTx{userID: userID, active: []allocation.Assignment{
		{ID: assignmentID, ProjectID: uuid.New(), Percentage: 50},
	}}
	repo := NewPostgresAssignmentRepository(&fakeDB{tx: tx})

	err := repo.UpdateAllocationGuarded(context.Background(), assignmentID, 75, func(existing []allocation.Assignment) error {
		return allocation.AdmitEdit(existing, assignmentID, 75)
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	lock := statementIndex(tx.statements, "FROM profiles", "FOR UPDATE")
	read := statementIndex(tx.statements, "FROM project_assignments pa")
	update := statementIndex(tx.statements, "UPDATE project_assignments")
	if lock == -1 || read == -1 || lock > read {
		t.Fatalf("allocations must be read under the profile lock, got statements: %v", tx.statements)
	}
	if update == -1 || read > update {
		t.Fatalf("update must follow the admission read, got statements: %v", tx.statements)
	}
	if !tx.committed {
		t.Fatal("expected commit")
	}
}
