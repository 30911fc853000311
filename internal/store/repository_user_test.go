package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db: &DB{
			DB:                 db,
			driver:             "pgx",
			builder:            sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
		},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Username:     "john",
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleUser,
	}

	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"user_id", "username", "password_hash", "role", "created_at"}).
		AddRow(1, user.Username, user.PasswordHash, string(user.Role), now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.PasswordHash, string(user.Role)).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Username != user.Username {
		t.Errorf("expected username %s, got %s", user.Username, created.Username)
	}
	if created.Role != models.RoleUser {
		t.Errorf("expected role %s, got %s", models.RoleUser, created.Role)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Username: "john", Role: models.RoleUser}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, username, password_hash, role, created_at FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"user_id", "username", "password_hash", "role", "created_at"}).
		AddRow(7, "alice", "$2a$10$hash", "admin", now)

	mock.ExpectQuery("SELECT user_id, username, password_hash, role, created_at FROM users").
		WithArgs("alice").
		WillReturnRows(rows)

	found, err := repo.FindUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %s", found.Role)
	}
	if found.UserID != 7 {
		t.Errorf("expected UserID=7, got %d", found.UserID)
	}
}

func TestFindUserByUsername_InvalidStoredRole(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"user_id", "username", "password_hash", "role", "created_at"}).
		AddRow(7, "alice", "$2a$10$hash", "superuser", time.Now())

	mock.ExpectQuery("SELECT user_id, username, password_hash, role, created_at FROM users").
		WithArgs("alice").
		WillReturnRows(rows)

	_, err := repo.FindUserByUsername(context.Background(), "alice")
	if !errors.Is(err, ErrInvalidRoleStored) {
		t.Fatalf("expected ErrInvalidRoleStored, got %v", err)
	}
}

func TestUpdatePassword_NoSuchUser(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("$2a$10$newhash", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), "ghost", "$2a$10$newhash")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestDeleteUser_LastAdminProtected(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, username, password_hash, role, created_at FROM users").
		WithArgs("root").
		WillReturnRows(sqlmock.
			NewRows([]string{"user_id", "username", "password_hash", "role", "created_at"}).
			AddRow(1, "root", "$2a$10$hash", "admin", now))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.DeleteUser(context.Background(), "root")
	if !errors.Is(err, ErrLastAdminProtected) {
		t.Fatalf("expected ErrLastAdminProtected, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteUser_AdminWithAnotherAdmin(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, username, password_hash, role, created_at FROM users").
		WithArgs("root").
		WillReturnRows(sqlmock.
			NewRows([]string{"user_id", "username", "password_hash", "role", "created_at"}).
			AddRow(1, "root", "$2a$10$hash", "admin", now))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec("DELETE FROM users").
		WithArgs("root").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteUser(context.Background(), "root"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteUser_RegularUser(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, username, password_hash, role, created_at FROM users").
		WithArgs("bob").
		WillReturnRows(sqlmock.
			NewRows([]string{"user_id", "username", "password_hash", "role", "created_at"}).
			AddRow(3, "bob", "$2a$10$hash", "user", now))
	mock.ExpectExec("DELETE FROM users").
		WithArgs("bob").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteUser(context.Background(), "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id, username, password_hash, role, created_at FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.DeleteUser(context.Background(), "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestListUsers_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"user_id", "username", "password_hash", "role", "created_at"}).
		AddRow(1, "alice", "h1", "admin", now).
		AddRow(2, "bob", "h2", "user", now)

	mock.ExpectQuery("SELECT user_id, username, password_hash, role, created_at FROM users").
		WillReturnRows(rows)

	users, err := repo.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Role != models.RoleAdmin || users[1].Role != models.RoleUser {
		t.Errorf("unexpected roles: %s, %s", users[0].Role, users[1].Role)
	}
}

func TestCountByRole(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByRole(context.Background(), models.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 admins, got %d", count)
	}
}
