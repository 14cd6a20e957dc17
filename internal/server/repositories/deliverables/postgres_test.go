package deliverables

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/ssrdocs/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestList_OrderedByPosition(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "team", "position"}).
		AddRow("1", "Plano General", "Ingeniería", 0).
		AddRow("2", "Memoria Técnica", "", 1)
	mock.ExpectQuery(`SELECT\s+id,\s*name,\s*team,\s*position\s+FROM\s+deliverables\s+ORDER\s+BY\s+position`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Plano General" || got[1].Position != 1 {
		t.Fatalf("unexpected items: %+v", got)
	}
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("db down"))

	if _, err := repo.List(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestReplace_RunsInTransaction(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE\s+FROM\s+deliverables`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT\s+INTO\s+deliverables`).
		WithArgs("Plano General", "Ingeniería", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+deliverables`).
		WithArgs("Memoria Técnica", "", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	items := []*models.Deliverable{
		{Name: "Plano General", Team: "Ingeniería"},
		{Name: "Memoria Técnica"},
	}
	if err := repo.Replace(context.Background(), items); err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReplace_RollbackOnInsertError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE\s+FROM\s+deliverables`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT\s+INTO\s+deliverables`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), []*models.Deliverable{{Name: "Plano General"}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
