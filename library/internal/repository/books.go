package repository

import (
	"context"
	"strings"

	"github.com/Astemirdum/elibrary-service/library/internal/model"
	sq "github.com/Masterminds/squirrel"
)

var (
	bookColumns = []string{
		"id", "title", "author", "genre", "publication_year", "isbn", "description",
		"cover_image", "location", "total_copies", "available_copies", "created_at", "updated_at",
	}
	issuedCopyColumns = []string{
		"id", "book_id", "user_id", "borrower_name", "issue_date", "due_date", "return_date", "is_returned",
	}
)

// likeEscaper makes search text match literally under the default LIKE escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (s *store) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	q := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("created_at DESC")
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		q = q.Where(sq.Or{sq.ILike{"title": pattern}, sq.ILike{"author": pattern}})
	}
	if filter.Genre != "" {
		q = q.Where(sq.Eq{"genre": filter.Genre})
	}
	if filter.Location != "" {
		q = q.Where(sq.Eq{"location": filter.Location})
	}

	books := make([]model.Book, 0)
	if err := s.selectAll(ctx, &books, q); err != nil {
		return nil, err
	}
	if err := s.attachIssuedCopies(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *store) GetBook(ctx context.Context, id string) (model.Book, error) {
	return s.getBook(ctx, id, false)
}

func (s *store) GetBookForUpdate(ctx context.Context, id string) (model.Book, error) {
	return s.getBook(ctx, id, true)
}

func (s *store) getBook(ctx context.Context, id string, lock bool) (model.Book, error) {
	q := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id})
	if lock {
		q = q.Suffix("FOR UPDATE")
	}

	var book model.Book
	if err := s.get(ctx, &book, q); err != nil {
		return model.Book{}, err
	}
	books := []model.Book{book}
	if err := s.attachIssuedCopies(ctx, books); err != nil {
		return model.Book{}, err
	}
	return books[0], nil
}

func (s *store) attachIssuedCopies(ctx context.Context, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]string, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	q := qb.Select(issuedCopyColumns...).
		From(issuedCopiesTableName).
		Where(sq.Eq{"book_id": ids}).
		OrderBy("seq")

	var copies []model.IssuedCopy
	if err := s.selectAll(ctx, &copies, q); err != nil {
		return err
	}
	byBook := make(map[string][]model.IssuedCopy, len(books))
	for _, c := range copies {
		byBook[c.BookID] = append(byBook[c.BookID], c)
	}
	for i := range books {
		books[i].IssuedCopies = byBook[books[i].ID]
		if books[i].IssuedCopies == nil {
			books[i].IssuedCopies = []model.IssuedCopy{}
		}
	}
	return nil
}

func (s *store) CreateBook(ctx context.Context, b model.Book) error {
	q := qb.Insert(booksTableName).
		Columns(bookColumns...).
		Values(b.ID, b.Title, b.Author, b.Genre, b.PublicationYear, b.ISBN, b.Description,
			b.CoverImage, b.Location, b.TotalCopies, b.AvailableCopies, b.CreatedAt, b.UpdatedAt)
	return s.exec(ctx, q)
}

// UpdateBook writes the scalar columns. Issued copies are persisted on their own.
func (s *store) UpdateBook(ctx context.Context, b model.Book) error {
	q := qb.Update(booksTableName).
		SetMap(map[string]interface{}{
			"title":            b.Title,
			"author":           b.Author,
			"genre":            b.Genre,
			"publication_year": b.PublicationYear,
			"isbn":             b.ISBN,
			"description":      b.Description,
			"cover_image":      b.CoverImage,
			"location":         b.Location,
			"total_copies":     b.TotalCopies,
			"available_copies": b.AvailableCopies,
			"updated_at":       b.UpdatedAt,
		}).
		Where(sq.Eq{"id": b.ID})
	return s.exec(ctx, q)
}

func (s *store) DeleteBook(ctx context.Context, id string) error {
	return s.exec(ctx, qb.Delete(booksTableName).Where(sq.Eq{"id": id}))
}

func (s *store) InsertIssuedCopy(ctx context.Context, c model.IssuedCopy) error {
	q := qb.Insert(issuedCopiesTableName).
		Columns(issuedCopyColumns...).
		Values(c.ID, c.BookID, c.UserID, c.BorrowerName, c.IssueDate, c.DueDate, c.ReturnDate, c.IsReturned)
	return s.exec(ctx, q)
}

func (s *store) UpdateIssuedCopy(ctx context.Context, c model.IssuedCopy) error {
	q := qb.Update(issuedCopiesTableName).
		Set("return_date", c.ReturnDate).
		Set("is_returned", c.IsReturned).
		Where(sq.Eq{"id": c.ID})
	return s.exec(ctx, q)
}
