package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"orderapi/internal/model"
	"orderapi/internal/repository"
)

func TestCustomerPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	cust := &model.Customer{
		ID:        "test-uuid",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("success writes row and outbox event", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at", "updated_at"}).
			AddRow(cust.ID, cust.Name, cust.Email, cust.CreatedAt, cust.UpdatedAt)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO customers").
			WithArgs(cust.ID, cust.Name, cust.Email, cust.CreatedAt, cust.UpdatedAt).
			WillReturnRows(rows)
		mock.ExpectExec("INSERT INTO outbox_events").
			WithArgs("customer.created", "customer", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		result, err := repo.Create(ctx, cust, model.NewCustomerCreatedEvent(cust))

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, cust.ID, result.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO customers").
			WithArgs(cust.ID, cust.Name, cust.Email, cust.CreatedAt, cust.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		result, err := repo.Create(ctx, cust, model.NewCustomerCreatedEvent(cust))

		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at", "updated_at"}).
			AddRow("test-id", "Jane Doe", "jane@example.com", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM customers WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		cust, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, cust)
		assert.Equal(t, "test-id", cust.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM customers WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		cust, err := repo.FindByID(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, IsNoRowsError(err))
		assert.Nil(t, cust)
	})
}

func TestCustomerPostgres_ExistsByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("test-id").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		ok, err := repo.ExistsByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		ok, err := repo.ExistsByID(ctx, "missing")

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCustomerPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM customers").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at", "updated_at"}).
			AddRow("test-id", "Jane Doe", "jane@example.com", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM customers ORDER BY").
			WithArgs(10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})
}

func TestCustomerPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	cust := &model.Customer{
		ID:        "test-id",
		Name:      "Jane Updated",
		Email:     "jane.updated@example.com",
		UpdatedAt: now,
	}

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "created_at", "updated_at"}).
			AddRow(cust.ID, cust.Name, cust.Email, now, now)

		mock.ExpectQuery("UPDATE customers SET").
			WithArgs(cust.ID, cust.Name, cust.Email, cust.UpdatedAt).
			WillReturnRows(rows)

		result, err := repo.Update(ctx, cust)

		assert.NoError(t, err)
		assert.Equal(t, cust.Name, result.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE customers SET").
			WithArgs(cust.ID, cust.Name, cust.Email, cust.UpdatedAt).
			WillReturnError(sql.ErrNoRows)

		result, err := repo.Update(ctx, cust)

		assert.True(t, IsNoRowsError(err))
		assert.Nil(t, result)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("UPDATE customers SET").
			WithArgs(cust.ID, cust.Name, cust.Email, cust.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		result, err := repo.Update(ctx, cust)

		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
		assert.Nil(t, result)
	})
}

func TestCustomerPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	t.Run("removed row writes outbox event", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM customers WHERE id = ?").
			WithArgs("test-id").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO outbox_events").
			WithArgs("customer.deleted", "customer", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, "test-id", model.NewCustomerDeletedEvent("test-id"))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row skips outbox event", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM customers WHERE id = ?").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Delete(ctx, "missing", model.NewCustomerDeletedEvent("missing"))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func IsNoRowsError(err error) bool {
	return err == sql.ErrNoRows
}
