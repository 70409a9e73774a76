package repository

import (
	"context"

	"github.com/Astemirdum/elibrary-service/library/internal/model"
	sq "github.com/Masterminds/squirrel"
)

var (
	userColumns = []string{
		"id", "name", "email", "password_hash", "role", "is_active",
		"total_printout_spent", "total_printouts_count", "created_at",
	}
	borrowRecordColumns = []string{
		"id", "user_id", "book_id", "borrow_date", "due_date", "return_date", "is_returned",
	}
)

func (s *store) ListUsers(ctx context.Context) ([]model.User, error) {
	q := qb.Select(userColumns...).
		From(usersTableName).
		OrderBy("created_at DESC")

	users := make([]model.User, 0)
	if err := s.selectAll(ctx, &users, q); err != nil {
		return nil, err
	}
	if err := s.attachBorrowRecords(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *store) GetUser(ctx context.Context, id string) (model.User, error) {
	return s.getUser(ctx, sq.Eq{"id": id}, false)
}

func (s *store) GetUserForUpdate(ctx context.Context, id string) (model.User, error) {
	return s.getUser(ctx, sq.Eq{"id": id}, true)
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return s.getUser(ctx, sq.Eq{"email": email}, false)
}

func (s *store) getUser(ctx context.Context, where sq.Eq, lock bool) (model.User, error) {
	q := qb.Select(userColumns...).
		From(usersTableName).
		Where(where)
	if lock {
		q = q.Suffix("FOR UPDATE")
	}

	var user model.User
	if err := s.get(ctx, &user, q); err != nil {
		return model.User{}, err
	}
	users := []model.User{user}
	if err := s.attachBorrowRecords(ctx, users); err != nil {
		return model.User{}, err
	}
	return users[0], nil
}

func (s *store) attachBorrowRecords(ctx context.Context, users []model.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	q := qb.Select(borrowRecordColumns...).
		From(borrowRecordsTableName).
		Where(sq.Eq{"user_id": ids}).
		OrderBy("seq")

	var records []model.BorrowRecord
	if err := s.selectAll(ctx, &records, q); err != nil {
		return err
	}
	byUser := make(map[string][]model.BorrowRecord, len(users))
	for _, r := range records {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}
	for i := range users {
		users[i].BorrowedBooks = byUser[users[i].ID]
		if users[i].BorrowedBooks == nil {
			users[i].BorrowedBooks = []model.BorrowRecord{}
		}
	}
	return nil
}

func (s *store) CreateUser(ctx context.Context, u model.User) error {
	q := qb.Insert(usersTableName).
		Columns(userColumns...).
		Values(u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.IsActive,
			u.TotalPrintoutSpent, u.TotalPrintoutsCount, u.CreatedAt)
	return s.exec(ctx, q)
}

// UpdateUser writes profile and role columns. Printout counters change
// only through AddPrintoutSpend.
func (s *store) UpdateUser(ctx context.Context, u model.User) error {
	q := qb.Update(usersTableName).
		SetMap(map[string]interface{}{
			"name":          u.Name,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"role":          u.Role,
			"is_active":     u.IsActive,
		}).
		Where(sq.Eq{"id": u.ID})
	return s.exec(ctx, q)
}

func (s *store) InsertBorrowRecord(ctx context.Context, r model.BorrowRecord) error {
	q := qb.Insert(borrowRecordsTableName).
		Columns(borrowRecordColumns...).
		Values(r.ID, r.UserID, r.BookID, r.BorrowDate, r.DueDate, r.ReturnDate, r.IsReturned)
	return s.exec(ctx, q)
}

func (s *store) UpdateBorrowRecord(ctx context.Context, r model.BorrowRecord) error {
	q := qb.Update(borrowRecordsTableName).
		Set("return_date", r.ReturnDate).
		Set("is_returned", r.IsReturned).
		Where(sq.Eq{"id": r.ID})
	return s.exec(ctx, q)
}

func (s *store) AddPrintoutSpend(ctx context.Context, userID string, amount int64) error {
	q := qb.Update(usersTableName).
		Set("total_printout_spent", sq.Expr("total_printout_spent + ?", amount)).
		Set("total_printouts_count", sq.Expr("total_printouts_count + 1")).
		Where(sq.Eq{"id": userID})
	return s.exec(ctx, q)
}
