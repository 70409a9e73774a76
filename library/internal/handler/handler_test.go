package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/elibrary-service/library/internal/errs"
	"github.com/Astemirdum/elibrary-service/library/internal/handler"
	"github.com/Astemirdum/elibrary-service/library/internal/model"
	"github.com/Astemirdum/elibrary-service/pkg/auth"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/elibrary-service/library/internal/handler/mocks"
)

const (
	userID  = "6f1c3a52-0f43-4a3e-9d8b-7d2c1f0e9a11"
	adminID = "0b8e8f0c-5d7a-4c1e-8a77-3f4b2e1d6c22"
	bookID  = "f7cdc58f-2caf-4b15-9727-f89dcc629b27"
)

var tokens = auth.NewTokens("test-key", time.Hour)

func bearer(t *testing.T, id, role string) string {
	t.Helper()
	token, _, err := tokens.Issue(id, id+"@example.com", role, time.Now())
	require.NoError(t, err)
	return "Bearer " + token
}

type request struct {
	method string
	target string
	body   string
	auth   string
}

type response struct {
	expectedCode int
	expectedBody string
}

type mockBehavior func(r *service_mocks.MockLibraryService)

// storedAdmin expects the admin guard to load the caller's current role.
func storedAdmin(r *service_mocks.MockLibraryService) {
	r.EXPECT().Profile(gomock.Any(), adminID).
		Return(model.User{ID: adminID, Role: model.RoleAdmin, IsActive: true}, nil)
}

func serve(t *testing.T, behavior mockBehavior, req request) *httptest.ResponseRecorder {
	t.Helper()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockLibraryService(c)
	behavior(svc)

	h := handler.New(svc, tokens, zap.NewNop())
	e := h.NewRouter()

	var r *http.Request
	if req.body != "" {
		r = httptest.NewRequest(req.method, req.target, strings.NewReader(req.body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		r = httptest.NewRequest(req.method, req.target, http.NoBody)
	}
	if req.auth != "" {
		r.Header.Set(echo.HeaderAuthorization, req.auth)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func check(t *testing.T, w *httptest.ResponseRecorder, resp response) {
	t.Helper()
	require.Equal(t, resp.expectedCode, w.Code)
	if resp.expectedBody != "" {
		require.Equal(t, resp.expectedBody, strings.Trim(w.Body.String(), "\n"))
	}
}

func TestHandler_Borrow(t *testing.T) {
	t.Parallel()
	dueDate := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		auth         bool
		body         string
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Borrow(gomock.Any(), bookID, userID).Return(dueDate, nil)
			},
			auth: true,
			body: `{"bookId":"` + bookID + `"}`,
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"message":"Book borrowed successfully","dueDate":"2024-03-15T12:00:00Z"}`,
			},
		},
		{
			name: "err. unavailable",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Borrow(gomock.Any(), bookID, userID).Return(time.Time{}, errs.ErrUnavailable)
			},
			auth: true,
			body: `{"bookId":"` + bookID + `"}`,
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"book is not available"}`,
			},
		},
		{
			name: "err. book not found",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Borrow(gomock.Any(), bookID, userID).Return(time.Time{}, errors.Wrap(errs.ErrNotFound, "book"))
			},
			auth: true,
			body: `{"bookId":"` + bookID + `"}`,
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"book: not found"}`,
			},
		},
		{
			name: "err. lost race",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Borrow(gomock.Any(), bookID, userID).Return(time.Time{}, errors.Wrap(errs.ErrConflict, "books_copies_check"))
			},
			auth:     true,
			body:     `{"bookId":"` + bookID + `"}`,
			response: response{expectedCode: http.StatusConflict},
		},
		{
			name:         "err. bookId required",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			auth:         true,
			body:         `{}`,
			response:     response{expectedCode: http.StatusBadRequest},
		},
		{
			name:         "err. no token",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			body:         `{"bookId":"` + bookID + `"}`,
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"No Authorization Header"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := request{method: http.MethodPost, target: "/api/books/borrow", body: tt.body}
			if tt.auth {
				req.auth = bearer(t, userID, auth.RoleUser)
			}
			check(t, serve(t, tt.mockBehavior, req), tt.response)
		})
	}
}

func TestHandler_Return(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Return(gomock.Any(), bookID, userID).Return(nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"message":"Book returned successfully"}`,
			},
		},
		{
			name: "err. not borrowed",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Return(gomock.Any(), bookID, userID).Return(errs.ErrNotBorrowed)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"this book was not borrowed by you"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := request{
				method: http.MethodPost,
				target: "/api/books/return",
				body:   `{"bookId":"` + bookID + `"}`,
				auth:   bearer(t, userID, auth.RoleUser),
			}
			check(t, serve(t, tt.mockBehavior, req), tt.response)
		})
	}
}

func TestHandler_ListBooks(t *testing.T) {
	t.Parallel()
	behavior := func(r *service_mocks.MockLibraryService) {
		r.EXPECT().
			ListBooks(gomock.Any(), model.BookFilter{Search: "dune", Location: model.LocationSub}).
			Return([]model.Book{}, nil)
	}
	w := serve(t, behavior, request{method: http.MethodGet, target: "/api/books?search=dune&location=Sub+library"})
	check(t, w, response{expectedCode: http.StatusOK, expectedBody: `[]`})
}

func TestHandler_AdminRoutes(t *testing.T) {
	t.Parallel()
	createBody := `{"title":"Dune","author":"Frank Herbert","genre":"Sci-Fi","publicationYear":1965}`

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		req          request
		response     response
	}{
		{
			name:         "err. user creates book",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			req:          request{method: http.MethodPost, target: "/api/books", body: createBody, auth: bearer(t, userID, auth.RoleUser)},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"admin access required"}`,
			},
		},
		{
			name: "admin creates book",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				storedAdmin(r)
				r.EXPECT().CreateBook(gomock.Any(), gomock.Any()).Return(model.Book{ID: bookID, Title: "Dune"}, nil)
			},
			req:      request{method: http.MethodPost, target: "/api/books", body: createBody, auth: bearer(t, adminID, auth.RoleAdmin)},
			response: response{expectedCode: http.StatusCreated},
		},
		{
			name:         "err. invalid location",
			mockBehavior: storedAdmin,
			req: request{
				method: http.MethodPost, target: "/api/books",
				body: `{"title":"Dune","author":"A","genre":"G","publicationYear":1965,"location":"Attic"}`,
				auth: bearer(t, adminID, auth.RoleAdmin),
			},
			response: response{expectedCode: http.StatusBadRequest},
		},
		{
			name:         "err. user reads stats",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			req:          request{method: http.MethodGet, target: "/api/admin/books/stats", auth: bearer(t, userID, auth.RoleUser)},
			response:     response{expectedCode: http.StatusForbidden},
		},
		{
			name: "book stats",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				storedAdmin(r)
				r.EXPECT().BookStats(gomock.Any()).Return(model.BookStats{TotalBooks: 2, TotalCopies: 5, AvailableCopies: 3, IssuedBooks: 2}, nil)
			},
			req: request{method: http.MethodGet, target: "/api/admin/books/stats", auth: bearer(t, adminID, auth.RoleAdmin)},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"totalBooks":2,"totalCopies":5,"availableCopies":3,"issuedBooks":2,"borrowReturnStats":{"totalBorrowed":0,"totalReturned":0,"overdue":0}}`,
			},
		},
		{
			name: "err. unknown report type",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				storedAdmin(r)
				r.EXPECT().Report(gomock.Any(), model.ReportType("fines")).
					Return(model.Report{}, errors.Wrap(errs.ErrValidation, `unknown reportType "fines"`))
			},
			req:      request{method: http.MethodGet, target: "/api/admin/reports?reportType=fines", auth: bearer(t, adminID, auth.RoleAdmin)},
			response: response{expectedCode: http.StatusBadRequest},
		},
		{
			name: "err. promote missing user",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				storedAdmin(r)
				r.EXPECT().PromoteUser(gomock.Any(), userID).Return(model.User{}, errs.ErrNotFound)
			},
			req:      request{method: http.MethodPut, target: "/api/admin/users/" + userID + "/promote", auth: bearer(t, adminID, auth.RoleAdmin)},
			response: response{expectedCode: http.StatusNotFound, expectedBody: `{"message":"not found"}`},
		},
		{
			name: "err. demoted admin with old token",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Profile(gomock.Any(), adminID).
					Return(model.User{ID: adminID, Role: model.RoleUser, IsActive: true}, nil)
			},
			req: request{method: http.MethodGet, target: "/api/admin/users", auth: bearer(t, adminID, auth.RoleAdmin)},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"admin access required"}`,
			},
		},
		{
			name: "err. deactivated admin",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Profile(gomock.Any(), adminID).
					Return(model.User{ID: adminID, Role: model.RoleAdmin, IsActive: false}, nil)
			},
			req:      request{method: http.MethodDelete, target: "/api/books/" + bookID, auth: bearer(t, adminID, auth.RoleAdmin)},
			response: response{expectedCode: http.StatusForbidden},
		},
		{
			name: "err. deleted admin account",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Profile(gomock.Any(), adminID).Return(model.User{}, errs.ErrNotFound)
			},
			req:      request{method: http.MethodGet, target: "/api/admin/reports", auth: bearer(t, adminID, auth.RoleAdmin)},
			response: response{expectedCode: http.StatusForbidden},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			check(t, serve(t, tt.mockBehavior, tt.req), tt.response)
		})
	}
}

func TestHandler_Printouts(t *testing.T) {
	t.Parallel()
	const printoutID = "9d5a4b7e-1c2f-4e3a-8b6d-5f4e3d2c1b00"

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		req          request
		response     response
	}{
		{
			name: "create",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().CreatePrintout(gomock.Any(), userID, model.CreatePrintoutRequest{
					DocumentName: "thesis.pdf", ColorMode: model.ColorModeColor, Copies: 2, TotalPages: 5,
				}).Return(model.Printout{ID: printoutID, DocumentName: "thesis.pdf", TotalPages: 5, Copies: 2, TotalCost: 30}, nil)
			},
			req: request{
				method: http.MethodPost, target: "/api/printouts",
				body: `{"documentName":"thesis.pdf","colorMode":"Color","copies":2,"totalPages":5}`,
				auth: bearer(t, userID, auth.RoleUser),
			},
			response: response{expectedCode: http.StatusCreated},
		},
		{
			name:         "err. copies out of range",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			req: request{
				method: http.MethodPost, target: "/api/printouts",
				body: `{"documentName":"thesis.pdf","colorMode":"Color","copies":11,"totalPages":5}`,
				auth: bearer(t, userID, auth.RoleUser),
			},
			response: response{expectedCode: http.StatusBadRequest},
		},
		{
			name:         "err. too many pages",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			req: request{
				method: http.MethodPost, target: "/api/printouts",
				body: `{"documentName":"thesis.pdf","colorMode":"Color","copies":10,"totalPages":461168601842738790}`,
				auth: bearer(t, userID, auth.RoleUser),
			},
			response: response{expectedCode: http.StatusBadRequest},
		},
		{
			name: "err. confirm someone else's printout",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().ConfirmPayment(gomock.Any(), userID, model.ConfirmPaymentRequest{PrintoutID: printoutID, TransactionID: "tx-1"}).
					Return(model.Printout{}, errors.Wrap(errs.ErrForbidden, "printout belongs to another user"))
			},
			req: request{
				method: http.MethodPost, target: "/api/printouts/confirm-payment",
				body: `{"printoutId":"` + printoutID + `","transactionId":"tx-1"}`,
				auth: bearer(t, userID, auth.RoleUser),
			},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"printout belongs to another user: forbidden"}`,
			},
		},
		{
			name: "err. cancel completed",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().CancelPrintout(gomock.Any(), printoutID, userID).
					Return(errors.Wrap(errs.ErrInvalidTransition, "cannot cancel a completed printout"))
			},
			req:      request{method: http.MethodDelete, target: "/api/printouts/" + printoutID, auth: bearer(t, userID, auth.RoleUser)},
			response: response{expectedCode: http.StatusBadRequest},
		},
		{
			name: "history",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().PrintoutHistory(gomock.Any(), userID).Return([]model.Printout{}, nil)
			},
			req:      request{method: http.MethodGet, target: "/api/printouts/history", auth: bearer(t, userID, auth.RoleUser)},
			response: response{expectedCode: http.StatusOK, expectedBody: `[]`},
		},
		{
			name: "admin reads any printout",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().GetPrintout(gomock.Any(), printoutID, adminID, true).Return(model.Printout{ID: printoutID}, nil)
			},
			req:      request{method: http.MethodGet, target: "/api/printouts/" + printoutID, auth: bearer(t, adminID, auth.RoleAdmin)},
			response: response{expectedCode: http.StatusOK},
		},
		{
			name:         "err. user updates status",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			req: request{
				method: http.MethodPut, target: "/api/printouts/" + printoutID + "/status",
				body: `{"status":"completed"}`, auth: bearer(t, userID, auth.RoleUser),
			},
			response: response{expectedCode: http.StatusForbidden},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			check(t, serve(t, tt.mockBehavior, tt.req), tt.response)
		})
	}
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()
	behavior := func(r *service_mocks.MockLibraryService) {
		r.EXPECT().Login(gomock.Any(), model.LoginRequest{Email: "alice@example.com", Password: "nope"}).
			Return(model.AuthResponse{}, errs.ErrUnauthorized)
	}
	w := serve(t, behavior, request{
		method: http.MethodPost, target: "/api/auth/login",
		body: `{"email":"alice@example.com","password":"nope"}`,
	})
	check(t, w, response{expectedCode: http.StatusUnauthorized, expectedBody: `{"message":"invalid credentials"}`})
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()
	w := serve(t, func(r *service_mocks.MockLibraryService) {}, request{method: http.MethodGet, target: "/manage/health"})
	check(t, w, response{expectedCode: http.StatusOK, expectedBody: "OK"})
}
