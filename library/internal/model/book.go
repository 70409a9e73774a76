package model

import (
	"time"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// LoanDays is the fixed borrow period.
const LoanDays = 14

type Location string

const (
	LocationMain Location = "Main library"
	LocationSub  Location = "Sub library"
)

const (
	AvailabilityAvailable = "Available"
	AvailabilityIssued    = "Issued"
)

type Book struct {
	ID              string       `json:"id" db:"id"`
	Title           string       `json:"title" db:"title"`
	Author          string       `json:"author" db:"author"`
	Genre           string       `json:"genre" db:"genre"`
	PublicationYear int          `json:"publicationYear" db:"publication_year"`
	ISBN            *string      `json:"isbn,omitempty" db:"isbn"`
	Description     string       `json:"description" db:"description"`
	CoverImage      string       `json:"coverImage" db:"cover_image"`
	Location        Location     `json:"location" db:"location"`
	TotalCopies     int          `json:"totalCopies" db:"total_copies"`
	AvailableCopies int          `json:"availableCopies" db:"available_copies"`
	IssuedCopies    []IssuedCopy `json:"issuedCopies" db:"-"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" db:"updated_at"`
}

type IssuedCopy struct {
	ID           string     `json:"id" db:"id"`
	BookID       string     `json:"-" db:"book_id"`
	UserID       string     `json:"userId" db:"user_id"`
	BorrowerName string     `json:"borrowerName" db:"borrower_name"`
	IssueDate    time.Time  `json:"issueDate" db:"issue_date"`
	DueDate      time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate   *time.Time `json:"returnDate" db:"return_date"`
	IsReturned   bool       `json:"isReturned" db:"is_returned"`
}

func (c IssuedCopy) IsOverdue(now time.Time) bool {
	return !c.IsReturned && c.DueDate.Before(now)
}

func DueDate(issued time.Time) time.Time {
	return issued.AddDate(0, 0, LoanDays)
}

func (b *Book) ActiveIssuedCopies() []IssuedCopy {
	active := make([]IssuedCopy, 0, len(b.IssuedCopies))
	for _, c := range b.IssuedCopies {
		if !c.IsReturned {
			active = append(active, c)
		}
	}
	return active
}

func (b *Book) activeCount() int {
	n := 0
	for _, c := range b.IssuedCopies {
		if !c.IsReturned {
			n++
		}
	}
	return n
}

// activeCopyFor returns the index of the first active copy held by userID.
func (b *Book) activeCopyFor(userID string) (int, bool) {
	for i, c := range b.IssuedCopies {
		if c.UserID == userID && !c.IsReturned {
			return i, true
		}
	}
	return -1, false
}

func (b *Book) Status() string {
	if b.AvailableCopies > 0 {
		return AvailabilityAvailable
	}
	return AvailabilityIssued
}

// Issue lends one copy to the user. The caller persists the returned copy.
func (b *Book) Issue(user User, now time.Time) (IssuedCopy, error) {
	if _, ok := b.activeCopyFor(user.ID); ok {
		return IssuedCopy{}, errs.ErrAlreadyBorrowed
	}
	if b.AvailableCopies <= 0 {
		return IssuedCopy{}, errs.ErrUnavailable
	}
	issued := IssuedCopy{
		ID:           uuid.NewString(),
		BookID:       b.ID,
		UserID:       user.ID,
		BorrowerName: user.Name,
		IssueDate:    now,
		DueDate:      DueDate(now),
	}
	b.IssuedCopies = append(b.IssuedCopies, issued)
	b.AvailableCopies--
	b.UpdatedAt = now
	return issued, nil
}

// Return closes the first active copy held by userID.
func (b *Book) Return(userID string, now time.Time) (IssuedCopy, error) {
	i, ok := b.activeCopyFor(userID)
	if !ok {
		return IssuedCopy{}, errs.ErrNotBorrowed
	}
	returnedAt := now
	b.IssuedCopies[i].ReturnDate = &returnedAt
	b.IssuedCopies[i].IsReturned = true
	if b.AvailableCopies < b.TotalCopies {
		b.AvailableCopies++
	}
	b.UpdatedAt = now
	return b.IssuedCopies[i], nil
}

// SetTotalCopies applies the difference to the available copies.
// The total may not drop below the number of copies currently lent out.
func (b *Book) SetTotalCopies(total int) error {
	if total < 0 {
		return errors.Wrap(errs.ErrValidation, "totalCopies must be >= 0")
	}
	if active := b.activeCount(); total < active {
		return errors.Wrapf(errs.ErrValidation, "totalCopies %d is less than %d issued copies", total, active)
	}
	diff := total - b.TotalCopies
	b.TotalCopies = total
	b.AvailableCopies = max(0, b.AvailableCopies+diff)
	return nil
}

func (b *Book) Apply(req UpdateBookRequest, now time.Time) error {
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.Genre != nil {
		b.Genre = *req.Genre
	}
	if req.PublicationYear != nil {
		b.PublicationYear = *req.PublicationYear
	}
	if req.ISBN != nil {
		b.ISBN = nilIfEmpty(*req.ISBN)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.CoverImage != nil {
		b.CoverImage = *req.CoverImage
	}
	if req.Location != nil {
		b.Location = *req.Location
	}
	if req.TotalCopies != nil {
		if err := b.SetTotalCopies(*req.TotalCopies); err != nil {
			return err
		}
	}
	b.UpdatedAt = now
	return nil
}

func NewBook(req CreateBookRequest, now time.Time) Book {
	total := 1
	if req.TotalCopies != nil {
		total = *req.TotalCopies
	}
	location := req.Location
	if location == "" {
		location = LocationMain
	}
	return Book{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		ISBN:            nilIfEmpty(req.ISBN),
		Description:     req.Description,
		CoverImage:      req.CoverImage,
		Location:        location,
		TotalCopies:     total,
		AvailableCopies: total,
		IssuedCopies:    []IssuedCopy{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type BookFilter struct {
	Search   string
	Genre    string
	Location Location
}

type CreateBookRequest struct {
	Title           string   `json:"title" validate:"required"`
	Author          string   `json:"author" validate:"required"`
	Genre           string   `json:"genre" validate:"required"`
	PublicationYear int      `json:"publicationYear" validate:"required"`
	ISBN            string   `json:"isbn"`
	Description     string   `json:"description"`
	CoverImage      string   `json:"coverImage"`
	Location        Location `json:"location" validate:"omitempty,oneof='Main library' 'Sub library'"`
	TotalCopies     *int     `json:"totalCopies" validate:"omitempty,min=0"`
}

type UpdateBookRequest struct {
	Title           *string   `json:"title"`
	Author          *string   `json:"author"`
	Genre           *string   `json:"genre"`
	PublicationYear *int      `json:"publicationYear"`
	ISBN            *string   `json:"isbn"`
	Description     *string   `json:"description"`
	CoverImage      *string   `json:"coverImage"`
	Location        *Location `json:"location" validate:"omitempty,oneof='Main library' 'Sub library'"`
	TotalCopies     *int      `json:"totalCopies" validate:"omitempty,min=0"`
}

type BorrowRequest struct {
	BookID string `json:"bookId" validate:"required"`
}

type BorrowResponse struct {
	Message string    `json:"message"`
	DueDate time.Time `json:"dueDate"`
}

type Availability struct {
	BookID          string       `json:"bookId"`
	Title           string       `json:"title"`
	TotalCopies     int          `json:"totalCopies"`
	AvailableCopies int          `json:"availableCopies"`
	IssuedCopies    []IssuedCopy `json:"issuedCopies"`
	Status          string       `json:"status"`
}

func (b *Book) Availability() Availability {
	return Availability{
		BookID:          b.ID,
		Title:           b.Title,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		IssuedCopies:    b.ActiveIssuedCopies(),
		Status:          b.Status(),
	}
}
