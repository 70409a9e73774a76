package model

import (
	"time"
)

type UserStats struct {
	TotalUsers    int           `json:"totalUsers"`
	AdminUsers    int           `json:"adminUsers"`
	RegularUsers  int           `json:"regularUsers"`
	PrintoutStats PrintoutSpend `json:"printoutStats"`
}

type PrintoutSpend struct {
	TotalSpent     int64 `json:"totalSpent"`
	TotalPrintouts int   `json:"totalPrintouts"`
}

type BookStats struct {
	TotalBooks        int               `json:"totalBooks"`
	TotalCopies       int               `json:"totalCopies"`
	AvailableCopies   int               `json:"availableCopies"`
	IssuedBooks       int               `json:"issuedBooks"`
	BorrowReturnStats BorrowReturnStats `json:"borrowReturnStats"`
}

type BorrowReturnStats struct {
	TotalBorrowed int `json:"totalBorrowed"`
	TotalReturned int `json:"totalReturned"`
	Overdue       int `json:"overdue"`
}

type PrintoutStats struct {
	TotalPrintouts     int                          `json:"totalPrintouts"`
	ByStatus           map[Status]int               `json:"byStatus"`
	ByPaymentStatus    map[PaymentStatus]int        `json:"byPaymentStatus"`
	Revenue            int64                        `json:"revenue"`
	ColorModeBreakdown map[ColorMode]ColorModeStats `json:"colorModeBreakdown"`
}

type ColorModeStats struct {
	Count   int   `json:"count"`
	Revenue int64 `json:"revenue"`
}

func ComputeUserStats(users []User) UserStats {
	var st UserStats
	st.TotalUsers = len(users)
	for _, u := range users {
		if u.IsAdmin() {
			st.AdminUsers++
		}
		st.PrintoutStats.TotalSpent += u.TotalPrintoutSpent
		st.PrintoutStats.TotalPrintouts += u.TotalPrintoutsCount
	}
	st.RegularUsers = st.TotalUsers - st.AdminUsers
	return st
}

func ComputeBookStats(books []Book, now time.Time) BookStats {
	var st BookStats
	st.TotalBooks = len(books)
	for _, b := range books {
		st.TotalCopies += b.TotalCopies
		st.AvailableCopies += b.AvailableCopies
		for _, c := range b.IssuedCopies {
			if c.IsReturned {
				st.BorrowReturnStats.TotalReturned++
				continue
			}
			st.BorrowReturnStats.TotalBorrowed++
			if c.IsOverdue(now) {
				st.BorrowReturnStats.Overdue++
			}
		}
	}
	st.IssuedBooks = st.TotalCopies - st.AvailableCopies
	return st
}

// ComputePrintoutStats counts revenue per color mode over paid orders only.
func ComputePrintoutStats(printouts []Printout) PrintoutStats {
	st := PrintoutStats{
		TotalPrintouts:     len(printouts),
		ByStatus:           make(map[Status]int),
		ByPaymentStatus:    make(map[PaymentStatus]int),
		ColorModeBreakdown: make(map[ColorMode]ColorModeStats),
	}
	for _, p := range printouts {
		st.ByStatus[p.Status]++
		st.ByPaymentStatus[p.PaymentStatus]++

		mode := st.ColorModeBreakdown[p.ColorMode]
		mode.Count++
		if p.PaymentStatus == PaymentCompleted {
			st.Revenue += p.TotalCost
			mode.Revenue += p.TotalCost
		}
		st.ColorModeBreakdown[p.ColorMode] = mode
	}
	return st
}

type UserSummary struct {
	User
	TotalBorrowedBooks  int `json:"totalBorrowedBooks"`
	ActiveBorrowedBooks int `json:"activeBorrowedBooks"`
}

func SummarizeUser(u User) UserSummary {
	return UserSummary{
		User:                u,
		TotalBorrowedBooks:  len(u.BorrowedBooks),
		ActiveBorrowedBooks: u.ActiveBorrowCount(),
	}
}

type BookSummary struct {
	Book
	Status      string `json:"status"`
	IssuedCount int    `json:"issuedCount"`
}

func SummarizeBook(b Book) BookSummary {
	return BookSummary{
		Book:        b,
		Status:      b.Status(),
		IssuedCount: b.activeCount(),
	}
}

type BorrowHistoryEntry struct {
	BookID     string     `json:"bookId"`
	BookTitle  string     `json:"bookTitle,omitempty"`
	Author     string     `json:"author,omitempty"`
	BorrowDate time.Time  `json:"borrowDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate"`
	IsReturned bool       `json:"isReturned"`
}

type ReportType string

const (
	ReportAll       ReportType = ""
	ReportUsers     ReportType = "users"
	ReportBooks     ReportType = "books"
	ReportPrintouts ReportType = "printouts"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportAll, ReportUsers, ReportBooks, ReportPrintouts:
		return true
	}
	return false
}

func (t ReportType) Includes(part ReportType) bool {
	return t == ReportAll || t == part
}

// Report sections are nil when not requested and point to a possibly empty slice otherwise.
type Report struct {
	Users       *[]UserReportRow     `json:"users,omitempty"`
	Books       *[]BookReportRow     `json:"books,omitempty"`
	Printouts   *[]PrintoutReportRow `json:"printouts,omitempty"`
	GeneratedAt time.Time            `json:"generatedAt"`
}

type UserReportRow struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               Role   `json:"role"`
	TotalBorrowed      int    `json:"totalBorrowed"`
	ActiveBorrows      int    `json:"activeBorrows"`
	TotalPrintoutSpent int64  `json:"totalPrintoutSpent"`
	TotalPrintouts     int    `json:"totalPrintouts"`
}

type BookReportRow struct {
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Genre           string   `json:"genre"`
	Location        Location `json:"location"`
	TotalCopies     int      `json:"totalCopies"`
	AvailableCopies int      `json:"availableCopies"`
	IssuedCopies    int      `json:"issuedCopies"`
}

type PrintoutReportRow struct {
	DocumentName  string        `json:"documentName"`
	UserName      string        `json:"userName"`
	ColorMode     ColorMode     `json:"colorMode"`
	Copies        int           `json:"copies"`
	TotalPages    int           `json:"totalPages"`
	TotalCost     int64         `json:"totalCost"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func UserReport(users []User) []UserReportRow {
	rows := make([]UserReportRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserReportRow{
			Name:               u.Name,
			Email:              u.Email,
			Role:               u.Role,
			TotalBorrowed:      len(u.BorrowedBooks),
			ActiveBorrows:      u.ActiveBorrowCount(),
			TotalPrintoutSpent: u.TotalPrintoutSpent,
			TotalPrintouts:     u.TotalPrintoutsCount,
		})
	}
	return rows
}

func BookReport(books []Book) []BookReportRow {
	rows := make([]BookReportRow, 0, len(books))
	for _, b := range books {
		rows = append(rows, BookReportRow{
			Title:           b.Title,
			Author:          b.Author,
			Genre:           b.Genre,
			Location:        b.Location,
			TotalCopies:     b.TotalCopies,
			AvailableCopies: b.AvailableCopies,
			IssuedCopies:    b.activeCount(),
		})
	}
	return rows
}

func PrintoutReport(printouts []Printout) []PrintoutReportRow {
	rows := make([]PrintoutReportRow, 0, len(printouts))
	for _, p := range printouts {
		rows = append(rows, PrintoutReportRow{
			DocumentName:  p.DocumentName,
			UserName:      p.UserName,
			ColorMode:     p.ColorMode,
			Copies:        p.Copies,
			TotalPages:    p.TotalPages,
			TotalCost:     p.TotalCost,
			Status:        p.Status,
			PaymentStatus: p.PaymentStatus,
			CreatedAt:     p.CreatedAt,
		})
	}
	return rows
}
