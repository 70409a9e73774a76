package repository_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/Astemirdum/elibrary-service/library/internal/model"
	"github.com/Astemirdum/elibrary-service/library/internal/repository"
	"github.com/Astemirdum/elibrary-service/library/migrations"
	"github.com/Astemirdum/elibrary-service/pkg/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newPostgres connects to PG_DSN and starts from empty tables.
func newPostgres(t *testing.T) repository.Repository {
	t.Helper()
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN is not set")
	}
	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, postgres.Migrate(db, migrations.MigrationFiles))
	_, err = db.Exec(`TRUNCATE printouts, borrow_records, issued_copies, books, users`)
	require.NoError(t, err)

	repo, err := repository.NewRepository(db, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func TestPostgres_BorrowLastCopy(t *testing.T) {
	repo := newPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	one := 1
	book := model.NewBook(model.CreateBookRequest{
		Title: "Dune", Author: "Herbert", Genre: "Sci-Fi", PublicationYear: 1965, TotalCopies: &one,
	}, now)
	require.NoError(t, repo.CreateBook(ctx, book))

	const n = 8
	users := make([]model.User, n)
	for i := range users {
		users[i] = model.NewUser("user", string(rune('a'+i))+"@example.com", "hash", model.RoleUser, now)
		require.NoError(t, repo.CreateUser(ctx, users[i]))
	}

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		ok, unavail int
	)
	for _, u := range users {
		u := u
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Atomic(ctx, func(s repository.Store) error {
				b, err := s.GetBookForUpdate(ctx, book.ID)
				if err != nil {
					return err
				}
				usr, err := s.GetUserForUpdate(ctx, u.ID)
				if err != nil {
					return err
				}
				issued, err := b.Issue(usr, time.Now())
				if err != nil {
					return err
				}
				if err := s.InsertIssuedCopy(ctx, issued); err != nil {
					return err
				}
				if err := s.UpdateBook(ctx, b); err != nil {
					return err
				}
				return s.InsertBorrowRecord(ctx, usr.Borrow(issued))
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, errs.ErrUnavailable):
				unavail++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, ok)
	require.Equal(t, n-1, unavail)

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.AvailableCopies)
	require.Len(t, got.ActiveIssuedCopies(), 1)
}

func TestPostgres_UniqueAndCheck(t *testing.T) {
	repo := newPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC()

	u := model.NewUser("Alice", "alice@example.com", "hash", model.RoleUser, now)
	require.NoError(t, repo.CreateUser(ctx, u))
	dup := model.NewUser("Alice 2", "alice@example.com", "hash", model.RoleUser, now)
	require.ErrorIs(t, repo.CreateUser(ctx, dup), errs.ErrConflict)

	b := model.NewBook(model.CreateBookRequest{Title: "t", Author: "a", Genre: "g", PublicationYear: 2000}, now)
	require.NoError(t, repo.CreateBook(ctx, b))
	b.AvailableCopies = 5
	require.ErrorIs(t, repo.UpdateBook(ctx, b), errs.ErrConflict)

	_, err := repo.GetBook(ctx, "not-a-uuid")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, repo.AddPrintoutSpend(ctx, u.ID, 15))
	got, err := repo.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(15), got.TotalPrintoutSpent)
	require.Equal(t, 1, got.TotalPrintoutsCount)
}

func TestPostgres_SearchIsLiteral(t *testing.T) {
	testSearchIsLiteral(t, newPostgres(t))
}
