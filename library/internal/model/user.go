package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID                  string         `json:"id" db:"id"`
	Name                string         `json:"name" db:"name"`
	Email               string         `json:"email" db:"email"`
	PasswordHash        string         `json:"-" db:"password_hash"`
	Role                Role           `json:"role" db:"role"`
	IsActive            bool           `json:"isActive" db:"is_active"`
	TotalPrintoutSpent  int64          `json:"totalPrintoutSpent" db:"total_printout_spent"`
	TotalPrintoutsCount int            `json:"totalPrintoutsCount" db:"total_printouts_count"`
	BorrowedBooks       []BorrowRecord `json:"borrowedBooks" db:"-"`
	CreatedAt           time.Time      `json:"createdAt" db:"created_at"`
}

// BorrowRecord mirrors an IssuedCopy on the user side.
type BorrowRecord struct {
	ID         string     `json:"id" db:"id"`
	UserID     string     `json:"-" db:"user_id"`
	BookID     string     `json:"bookId" db:"book_id"`
	BorrowDate time.Time  `json:"borrowDate" db:"borrow_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate" db:"return_date"`
	IsReturned bool       `json:"isReturned" db:"is_returned"`
}

func NewUser(name, email, passwordHash string, role Role, now time.Time) User {
	return User{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		PasswordHash:  passwordHash,
		Role:          role,
		IsActive:      true,
		BorrowedBooks: []BorrowRecord{},
		CreatedAt:     now,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Borrow records the user side of an issued copy.
func (u *User) Borrow(issued IssuedCopy) BorrowRecord {
	record := BorrowRecord{
		ID:         uuid.NewString(),
		UserID:     u.ID,
		BookID:     issued.BookID,
		BorrowDate: issued.IssueDate,
		DueDate:    issued.DueDate,
	}
	u.BorrowedBooks = append(u.BorrowedBooks, record)
	return record
}

// ReturnBook closes the first active record for bookID.
func (u *User) ReturnBook(bookID string, at time.Time) (BorrowRecord, bool) {
	for i, r := range u.BorrowedBooks {
		if r.BookID == bookID && !r.IsReturned {
			returnedAt := at
			u.BorrowedBooks[i].ReturnDate = &returnedAt
			u.BorrowedBooks[i].IsReturned = true
			return u.BorrowedBooks[i], true
		}
	}
	return BorrowRecord{}, false
}

func (u *User) ActiveBorrowCount() int {
	n := 0
	for _, r := range u.BorrowedBooks {
		if !r.IsReturned {
			n++
		}
	}
	return n
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type UserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}
