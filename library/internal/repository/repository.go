package repository

import (
	"context"
	"database/sql"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/Astemirdum/elibrary-service/library/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store is the set of operations available both outside and inside a unit of work.
// The *ForUpdate readers lock the row until the surrounding unit of work ends.
type Store interface {
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	GetBookForUpdate(ctx context.Context, id string) (model.Book, error)
	CreateBook(ctx context.Context, book model.Book) error
	UpdateBook(ctx context.Context, book model.Book) error
	DeleteBook(ctx context.Context, id string) error
	InsertIssuedCopy(ctx context.Context, issued model.IssuedCopy) error
	UpdateIssuedCopy(ctx context.Context, issued model.IssuedCopy) error

	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	GetUserForUpdate(ctx context.Context, id string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	CreateUser(ctx context.Context, user model.User) error
	UpdateUser(ctx context.Context, user model.User) error
	InsertBorrowRecord(ctx context.Context, record model.BorrowRecord) error
	UpdateBorrowRecord(ctx context.Context, record model.BorrowRecord) error
	AddPrintoutSpend(ctx context.Context, userID string, amount int64) error

	ListPrintouts(ctx context.Context, filter model.PrintoutFilter) ([]model.Printout, error)
	GetPrintout(ctx context.Context, id string) (model.Printout, error)
	GetPrintoutForUpdate(ctx context.Context, id string) (model.Printout, error)
	CreatePrintout(ctx context.Context, printout model.Printout) error
	UpdatePrintout(ctx context.Context, printout model.Printout) error
}

type Repository interface {
	Store
	// Atomic runs fn as one unit of work: every write made through the
	// given Store is committed together, or none is when fn fails.
	Atomic(ctx context.Context, fn func(Store) error) error
}

var (
	_ Repository = (*repository)(nil)
	_ Repository = (*memoryRepository)(nil)
)

type repository struct {
	*store
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	log = log.Named("repo")
	return &repository{
		store: &store{q: db, log: log},
		db:    db,
		log:   log,
	}, nil
}

func (r *repository) Atomic(ctx context.Context, fn func(Store) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.log.Warn("tx rollback", zap.Error(err))
		}
	}()

	if err := fn(&store{q: tx, log: r.log}); err != nil {
		return pgError(err)
	}
	if err := tx.Commit(); err != nil {
		return pgError(errors.Wrap(err, "commit tx"))
	}
	return nil
}

const (
	booksTableName         = `books`
	issuedCopiesTableName  = `issued_copies`
	usersTableName         = `users`
	borrowRecordsTableName = `borrow_records`
	printoutsTableName     = `printouts`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// store runs queries against either the pool or an open transaction.
type store struct {
	q   sqlx.ExtContext
	log *zap.Logger
}

func (s *store) get(ctx context.Context, dest interface{}, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	if err := sqlx.GetContext(ctx, s.q, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrNotFound
		}
		s.log.Debug("get", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return pgError(err)
	}
	return nil
}

func (s *store) selectAll(ctx context.Context, dest interface{}, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	if err := sqlx.SelectContext(ctx, s.q, dest, query, args...); err != nil {
		s.log.Debug("select", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return pgError(err)
	}
	return nil
}

// exec fails with errs.ErrNotFound when no row was affected.
func (s *store) exec(ctx context.Context, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		s.log.Debug("exec", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return pgError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// pgError translates postgres failures into domain error kinds.
func pgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == "issued_copies_active_uniq" {
			return errs.ErrAlreadyBorrowed
		}
		return errors.Wrapf(errs.ErrConflict, "%s already exists", pgErr.ConstraintName)
	case pgerrcode.CheckViolation, pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return errors.Wrap(errs.ErrConflict, pgErr.Message)
	case pgerrcode.NumericValueOutOfRange:
		return errors.Wrap(errs.ErrValidation, pgErr.Message)
	case pgerrcode.InvalidTextRepresentation, pgerrcode.ForeignKeyViolation:
		return errors.Wrap(errs.ErrNotFound, pgErr.Message)
	}
	return err
}
