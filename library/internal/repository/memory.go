package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/Astemirdum/elibrary-service/library/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type memoryRepository struct {
	mu   sync.Mutex
	data *memoryData
	log  *zap.Logger
}

// NewMemoryRepository keeps everything in process memory.
// A unit of work runs on a copy that replaces the live data only on success.
func NewMemoryRepository(log *zap.Logger) *memoryRepository {
	return &memoryRepository{
		data: newMemoryData(),
		log:  log.Named("repo"),
	}
}

func (r *memoryRepository) Atomic(ctx context.Context, fn func(Store) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := r.data.clone()
	if err := fn(work); err != nil {
		r.log.Debug("unit of work discarded", zap.Error(err))
		return err
	}
	r.data = work
	return nil
}

func (r *memoryRepository) read(fn func(d *memoryData) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.data)
}

func (r *memoryRepository) ListBooks(ctx context.Context, filter model.BookFilter) (books []model.Book, err error) {
	err = r.read(func(d *memoryData) error {
		books, err = d.ListBooks(ctx, filter)
		return err
	})
	return books, err
}

func (r *memoryRepository) GetBook(ctx context.Context, id string) (book model.Book, err error) {
	err = r.read(func(d *memoryData) error {
		book, err = d.GetBook(ctx, id)
		return err
	})
	return book, err
}

func (r *memoryRepository) GetBookForUpdate(ctx context.Context, id string) (model.Book, error) {
	return r.GetBook(ctx, id)
}

func (r *memoryRepository) CreateBook(ctx context.Context, book model.Book) error {
	return r.Atomic(ctx, func(s Store) error { return s.CreateBook(ctx, book) })
}

func (r *memoryRepository) UpdateBook(ctx context.Context, book model.Book) error {
	return r.Atomic(ctx, func(s Store) error { return s.UpdateBook(ctx, book) })
}

func (r *memoryRepository) DeleteBook(ctx context.Context, id string) error {
	return r.Atomic(ctx, func(s Store) error { return s.DeleteBook(ctx, id) })
}

func (r *memoryRepository) InsertIssuedCopy(ctx context.Context, issued model.IssuedCopy) error {
	return r.Atomic(ctx, func(s Store) error { return s.InsertIssuedCopy(ctx, issued) })
}

func (r *memoryRepository) UpdateIssuedCopy(ctx context.Context, issued model.IssuedCopy) error {
	return r.Atomic(ctx, func(s Store) error { return s.UpdateIssuedCopy(ctx, issued) })
}

func (r *memoryRepository) ListUsers(ctx context.Context) (users []model.User, err error) {
	err = r.read(func(d *memoryData) error {
		users, err = d.ListUsers(ctx)
		return err
	})
	return users, err
}

func (r *memoryRepository) GetUser(ctx context.Context, id string) (user model.User, err error) {
	err = r.read(func(d *memoryData) error {
		user, err = d.GetUser(ctx, id)
		return err
	})
	return user, err
}

func (r *memoryRepository) GetUserForUpdate(ctx context.Context, id string) (model.User, error) {
	return r.GetUser(ctx, id)
}

func (r *memoryRepository) GetUserByEmail(ctx context.Context, email string) (user model.User, err error) {
	err = r.read(func(d *memoryData) error {
		user, err = d.GetUserByEmail(ctx, email)
		return err
	})
	return user, err
}

func (r *memoryRepository) CreateUser(ctx context.Context, user model.User) error {
	return r.Atomic(ctx, func(s Store) error { return s.CreateUser(ctx, user) })
}

func (r *memoryRepository) UpdateUser(ctx context.Context, user model.User) error {
	return r.Atomic(ctx, func(s Store) error { return s.UpdateUser(ctx, user) })
}

func (r *memoryRepository) InsertBorrowRecord(ctx context.Context, record model.BorrowRecord) error {
	return r.Atomic(ctx, func(s Store) error { return s.InsertBorrowRecord(ctx, record) })
}

func (r *memoryRepository) UpdateBorrowRecord(ctx context.Context, record model.BorrowRecord) error {
	return r.Atomic(ctx, func(s Store) error { return s.UpdateBorrowRecord(ctx, record) })
}

func (r *memoryRepository) AddPrintoutSpend(ctx context.Context, userID string, amount int64) error {
	return r.Atomic(ctx, func(s Store) error { return s.AddPrintoutSpend(ctx, userID, amount) })
}

func (r *memoryRepository) ListPrintouts(ctx context.Context, filter model.PrintoutFilter) (printouts []model.Printout, err error) {
	err = r.read(func(d *memoryData) error {
		printouts, err = d.ListPrintouts(ctx, filter)
		return err
	})
	return printouts, err
}

func (r *memoryRepository) GetPrintout(ctx context.Context, id string) (p model.Printout, err error) {
	err = r.read(func(d *memoryData) error {
		p, err = d.GetPrintout(ctx, id)
		return err
	})
	return p, err
}

func (r *memoryRepository) GetPrintoutForUpdate(ctx context.Context, id string) (model.Printout, error) {
	return r.GetPrintout(ctx, id)
}

func (r *memoryRepository) CreatePrintout(ctx context.Context, p model.Printout) error {
	return r.Atomic(ctx, func(s Store) error { return s.CreatePrintout(ctx, p) })
}

func (r *memoryRepository) UpdatePrintout(ctx context.Context, p model.Printout) error {
	return r.Atomic(ctx, func(s Store) error { return s.UpdatePrintout(ctx, p) })
}

// memoryData implements Store over plain maps. Insertion order is kept
// so that listings match the postgres ordering rules.
type memoryData struct {
	books     map[string]model.Book
	bookOrder []string
	users     map[string]model.User
	userOrder []string
	printouts map[string]model.Printout
	prOrder   []string
}

func newMemoryData() *memoryData {
	return &memoryData{
		books:     make(map[string]model.Book),
		users:     make(map[string]model.User),
		printouts: make(map[string]model.Printout),
	}
}

func (d *memoryData) clone() *memoryData {
	c := &memoryData{
		books:     make(map[string]model.Book, len(d.books)),
		bookOrder: append([]string(nil), d.bookOrder...),
		users:     make(map[string]model.User, len(d.users)),
		userOrder: append([]string(nil), d.userOrder...),
		printouts: make(map[string]model.Printout, len(d.printouts)),
		prOrder:   append([]string(nil), d.prOrder...),
	}
	for id, b := range d.books {
		c.books[id] = copyBook(b)
	}
	for id, u := range d.users {
		c.users[id] = copyUser(u)
	}
	for id, p := range d.printouts {
		c.printouts[id] = copyPrintout(p)
	}
	return c
}

func copyBook(b model.Book) model.Book {
	b.IssuedCopies = append([]model.IssuedCopy{}, b.IssuedCopies...)
	for i := range b.IssuedCopies {
		b.IssuedCopies[i].ReturnDate = clonePtr(b.IssuedCopies[i].ReturnDate)
	}
	b.ISBN = clonePtr(b.ISBN)
	return b
}

func copyUser(u model.User) model.User {
	u.BorrowedBooks = append([]model.BorrowRecord{}, u.BorrowedBooks...)
	for i := range u.BorrowedBooks {
		u.BorrowedBooks[i].ReturnDate = clonePtr(u.BorrowedBooks[i].ReturnDate)
	}
	return u
}

func copyPrintout(p model.Printout) model.Printout {
	p.TransactionID = clonePtr(p.TransactionID)
	p.CompletedAt = clonePtr(p.CompletedAt)
	return p
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// newestFirst walks ids from the most recent insertion.
func newestFirst(order []string, fn func(id string)) {
	for i := len(order) - 1; i >= 0; i-- {
		fn(order[i])
	}
}

func (d *memoryData) ListBooks(_ context.Context, filter model.BookFilter) ([]model.Book, error) {
	search := strings.ToLower(filter.Search)
	books := make([]model.Book, 0, len(d.books))
	newestFirst(d.bookOrder, func(id string) {
		b := d.books[id]
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Title), search) &&
			!strings.Contains(strings.ToLower(b.Author), search) {
			return
		}
		if filter.Genre != "" && b.Genre != filter.Genre {
			return
		}
		if filter.Location != "" && b.Location != filter.Location {
			return
		}
		books = append(books, copyBook(b))
	})
	sort.SliceStable(books, func(i, j int) bool { return books[i].CreatedAt.After(books[j].CreatedAt) })
	return books, nil
}

func (d *memoryData) GetBook(_ context.Context, id string) (model.Book, error) {
	b, ok := d.books[id]
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	return copyBook(b), nil
}

func (d *memoryData) GetBookForUpdate(ctx context.Context, id string) (model.Book, error) {
	return d.GetBook(ctx, id)
}

func (d *memoryData) CreateBook(_ context.Context, book model.Book) error {
	if _, ok := d.books[book.ID]; ok {
		return errors.Wrap(errs.ErrConflict, "book already exists")
	}
	if book.ISBN != nil {
		for _, b := range d.books {
			if b.ISBN != nil && *b.ISBN == *book.ISBN {
				return errors.Wrap(errs.ErrConflict, "isbn already exists")
			}
		}
	}
	if err := checkCopies(book); err != nil {
		return err
	}
	book = copyBook(book)
	book.IssuedCopies = []model.IssuedCopy{}
	d.books[book.ID] = book
	d.bookOrder = append(d.bookOrder, book.ID)
	return nil
}

func checkCopies(b model.Book) error {
	if b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return errors.Wrap(errs.ErrConflict, "books_copies_check")
	}
	return nil
}

func (d *memoryData) UpdateBook(_ context.Context, book model.Book) error {
	cur, ok := d.books[book.ID]
	if !ok {
		return errs.ErrNotFound
	}
	if book.ISBN != nil {
		for id, b := range d.books {
			if id != book.ID && b.ISBN != nil && *b.ISBN == *book.ISBN {
				return errors.Wrap(errs.ErrConflict, "isbn already exists")
			}
		}
	}
	if err := checkCopies(book); err != nil {
		return err
	}
	issued := cur.IssuedCopies
	book = copyBook(book)
	book.IssuedCopies = issued
	book.CreatedAt = cur.CreatedAt
	d.books[book.ID] = book
	return nil
}

func (d *memoryData) DeleteBook(_ context.Context, id string) error {
	if _, ok := d.books[id]; !ok {
		return errs.ErrNotFound
	}
	delete(d.books, id)
	d.bookOrder = removeID(d.bookOrder, id)
	return nil
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i:i], order[i+1:]...)
		}
	}
	return order
}

func (d *memoryData) InsertIssuedCopy(_ context.Context, issued model.IssuedCopy) error {
	b, ok := d.books[issued.BookID]
	if !ok {
		return errs.ErrNotFound
	}
	if _, ok := d.users[issued.UserID]; !ok {
		return errs.ErrNotFound
	}
	for _, c := range b.IssuedCopies {
		if c.UserID == issued.UserID && !c.IsReturned && !issued.IsReturned {
			return errs.ErrAlreadyBorrowed
		}
	}
	issued.ReturnDate = clonePtr(issued.ReturnDate)
	b.IssuedCopies = append(b.IssuedCopies, issued)
	d.books[b.ID] = b
	return nil
}

func (d *memoryData) UpdateIssuedCopy(_ context.Context, issued model.IssuedCopy) error {
	b, ok := d.books[issued.BookID]
	if !ok {
		return errs.ErrNotFound
	}
	for i, c := range b.IssuedCopies {
		if c.ID == issued.ID {
			b.IssuedCopies[i].ReturnDate = clonePtr(issued.ReturnDate)
			b.IssuedCopies[i].IsReturned = issued.IsReturned
			d.books[b.ID] = b
			return nil
		}
	}
	return errs.ErrNotFound
}

func (d *memoryData) ListUsers(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(d.users))
	newestFirst(d.userOrder, func(id string) {
		users = append(users, copyUser(d.users[id]))
	})
	return users, nil
}

func (d *memoryData) GetUser(_ context.Context, id string) (model.User, error) {
	u, ok := d.users[id]
	if !ok {
		return model.User{}, errs.ErrNotFound
	}
	return copyUser(u), nil
}

func (d *memoryData) GetUserForUpdate(ctx context.Context, id string) (model.User, error) {
	return d.GetUser(ctx, id)
}

func (d *memoryData) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range d.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return model.User{}, errs.ErrNotFound
}

func (d *memoryData) CreateUser(_ context.Context, user model.User) error {
	if _, ok := d.users[user.ID]; ok {
		return errors.Wrap(errs.ErrConflict, "user already exists")
	}
	for _, u := range d.users {
		if u.Email == user.Email {
			return errors.Wrap(errs.ErrConflict, "email already exists")
		}
	}
	user = copyUser(user)
	user.BorrowedBooks = []model.BorrowRecord{}
	d.users[user.ID] = user
	d.userOrder = append(d.userOrder, user.ID)
	return nil
}

func (d *memoryData) UpdateUser(_ context.Context, user model.User) error {
	cur, ok := d.users[user.ID]
	if !ok {
		return errs.ErrNotFound
	}
	for id, u := range d.users {
		if id != user.ID && u.Email == user.Email {
			return errors.Wrap(errs.ErrConflict, "email already exists")
		}
	}
	cur.Name = user.Name
	cur.Email = user.Email
	cur.PasswordHash = user.PasswordHash
	cur.Role = user.Role
	cur.IsActive = user.IsActive
	d.users[user.ID] = cur
	return nil
}

func (d *memoryData) InsertBorrowRecord(_ context.Context, record model.BorrowRecord) error {
	u, ok := d.users[record.UserID]
	if !ok {
		return errs.ErrNotFound
	}
	record.ReturnDate = clonePtr(record.ReturnDate)
	u.BorrowedBooks = append(u.BorrowedBooks, record)
	d.users[u.ID] = u
	return nil
}

func (d *memoryData) UpdateBorrowRecord(_ context.Context, record model.BorrowRecord) error {
	u, ok := d.users[record.UserID]
	if !ok {
		return errs.ErrNotFound
	}
	for i, r := range u.BorrowedBooks {
		if r.ID == record.ID {
			u.BorrowedBooks[i].ReturnDate = clonePtr(record.ReturnDate)
			u.BorrowedBooks[i].IsReturned = record.IsReturned
			d.users[u.ID] = u
			return nil
		}
	}
	return errs.ErrNotFound
}

func (d *memoryData) AddPrintoutSpend(_ context.Context, userID string, amount int64) error {
	u, ok := d.users[userID]
	if !ok {
		return errs.ErrNotFound
	}
	u.TotalPrintoutSpent += amount
	u.TotalPrintoutsCount++
	d.users[userID] = u
	return nil
}

func (d *memoryData) ListPrintouts(_ context.Context, filter model.PrintoutFilter) ([]model.Printout, error) {
	printouts := make([]model.Printout, 0)
	newestFirst(d.prOrder, func(id string) {
		p := d.printouts[id]
		if filter.UserID != "" && p.UserID != filter.UserID {
			return
		}
		printouts = append(printouts, copyPrintout(p))
	})
	sort.SliceStable(printouts, func(i, j int) bool { return printouts[i].CreatedAt.After(printouts[j].CreatedAt) })
	return printouts, nil
}

func (d *memoryData) GetPrintout(_ context.Context, id string) (model.Printout, error) {
	p, ok := d.printouts[id]
	if !ok {
		return model.Printout{}, errs.ErrNotFound
	}
	return copyPrintout(p), nil
}

func (d *memoryData) GetPrintoutForUpdate(ctx context.Context, id string) (model.Printout, error) {
	return d.GetPrintout(ctx, id)
}

func (d *memoryData) CreatePrintout(_ context.Context, p model.Printout) error {
	if _, ok := d.printouts[p.ID]; ok {
		return errors.Wrap(errs.ErrConflict, "printout already exists")
	}
	if _, ok := d.users[p.UserID]; !ok {
		return errs.ErrNotFound
	}
	d.printouts[p.ID] = copyPrintout(p)
	d.prOrder = append(d.prOrder, p.ID)
	return nil
}

func (d *memoryData) UpdatePrintout(_ context.Context, p model.Printout) error {
	cur, ok := d.printouts[p.ID]
	if !ok {
		return errs.ErrNotFound
	}
	cur.PaymentStatus = p.PaymentStatus
	cur.PaymentMethod = p.PaymentMethod
	cur.TransactionID = p.TransactionID
	cur.Status = p.Status
	cur.CompletedAt = p.CompletedAt
	d.printouts[p.ID] = copyPrintout(cur)
	return nil
}
