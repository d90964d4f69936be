package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a disposable Postgres and applies the embedded migrations.
func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	logger.Initialize("debug")
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunMigrations(ctx, db.DB))
	return db
}

func TestPostgres_UserLifecycle(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	writer := NewUserWriteRepository(db, nil)
	reader := NewUserReadRepository(db, nil)

	created, err := writer.Create(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)
	assert.False(t, created.CreatedAt.IsZero())

	byName, err := reader.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, created.UserID, byName.UserID)

	// usernames are case-sensitive
	upper, err := reader.GetByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Nil(t, upper)

	_, err = writer.Create(ctx, "alice", "other@example.com", "hash")
	assert.ErrorIs(t, err, models.ErrUsernameConflict)

	_, err = writer.Create(ctx, "bob", "alice@example.com", "hash")
	assert.ErrorIs(t, err, models.ErrEmailConflict)

	email := "alice2@example.com"
	updated, err := writer.Update(ctx, created.UserID, models.UserUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, email, updated.Email)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "hash", updated.PasswordHash)

	byEmail, err := reader.GetByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.UserID, byEmail.UserID)
}

func TestPostgres_NoteOwnership(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	users := NewUserWriteRepository(db, nil)
	notes := NewNoteRepository(db)

	owner, err := users.Create(ctx, "owner", "owner@example.com", "hash")
	require.NoError(t, err)
	stranger, err := users.Create(ctx, "stranger", "stranger@example.com", "hash")
	require.NoError(t, err)

	first, err := notes.Create(ctx, owner.UserID, "first", "a")
	require.NoError(t, err)
	second, err := notes.Create(ctx, owner.UserID, "second", "b")
	require.NoError(t, err)

	_, err = notes.Update(ctx, first.NoteID, owner.UserID, "first", "a2")
	require.NoError(t, err)

	list, err := notes.ListByOwner(ctx, owner.UserID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.NoteID, list[0].NoteID)
	assert.Equal(t, second.NoteID, list[1].NoteID)

	other, err := notes.GetByID(ctx, first.NoteID, stranger.UserID)
	require.NoError(t, err)
	assert.Nil(t, other)

	ok, err := notes.Delete(ctx, first.NoteID, stranger.UserID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = notes.Delete(ctx, first.NoteID, owner.UserID)
	require.NoError(t, err)
	assert.True(t, ok)

	empty, err := notes.ListByOwner(ctx, stranger.UserID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
