package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrInvalidPagination is returned when a page or page size is not positive.
var ErrInvalidPagination = errors.New("page and page size must be positive")

// Library keeps books and users in memory and reports every
// mutation through its notifier. It is not safe for concurrent use.
type Library struct {
	logger     *zap.Logger
	notifier   Notifier
	idsHandler UIDHandler
	out        io.Writer
	books    []Book
	users    []User
}

// NewLibrary provides an empty library. Search summaries are written to out.
// Identifiers are checked with idsHandler before any lookup.
func NewLibrary(logger *zap.Logger, notifier Notifier, idsHandler UIDHandler, out io.Writer) *Library {
	return &Library{
		logger:     logger,
		notifier:   notifier,
		idsHandler: idsHandler,
		out:        out,
		books:      []Book{},
		users:      []User{},
	}
}

// AddBook appends a book. Duplicates are not checked.
func (l *Library) AddBook(book Book) {
	l.books = append(l.books, book)
	l.logger.Info("library: book added", zap.String("book.id", book.GetID()), zap.Int("books.count", len(l.books)))
	l.notifier.SendSuccess(fmt.Sprintf("Book '%s' added successfully.", book.GetTitle()))
}

// AddUser appends a user. Duplicates are not checked.
func (l *Library) AddUser(user User) {
	l.users = append(l.users, user)
	l.logger.Info("library: user added", zap.String("user.id", user.GetID()), zap.Int("users.count", len(l.users)))
	l.notifier.SendSuccess(fmt.Sprintf("User '%s' added successfully.", user.GetName()))
}

// FindBooksByTitle returns books whose title contains text, in insertion order.
func (l *Library) FindBooksByTitle(text string) []Book {
	found := filterByTitle(l.books, text)
	writeSummary(l, "book", text, found)
	return found
}

// FindUsersByName returns users whose name contains text, in insertion order.
func (l *Library) FindUsersByName(text string) []User {
	found := filterByTitle(l.users, text)
	writeSummary(l, "user", text, found)
	return found
}

// GetBooks returns the given 1-indexed page of books ordered by creation time.
func (l *Library) GetBooks(page, pageSize int) ([]Book, error) {
	books, err := paginate(l.books, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("library: get books: %w", err)
	}
	return books, nil
}

// GetUsers returns the given 1-indexed page of users ordered by creation time.
func (l *Library) GetUsers(page, pageSize int) ([]User, error) {
	users, err := paginate(l.users, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("library: get users: %w", err)
	}
	return users, nil
}

// DeleteBook removes the book with the given id and reports whether it existed.
func (l *Library) DeleteBook(id string) bool {
	if !l.isValidID("Book", id, BookIDPrefix) {
		return false
	}
	var ok bool
	l.books, ok = removeByID(l.books, id)
	l.reportDeletion("Book", id, ok)
	return ok
}

// DeleteUser removes the user with the given id and reports whether it existed.
func (l *Library) DeleteUser(id string) bool {
	if !l.isValidID("User", id, UserIDPrefix) {
		return false
	}
	var ok bool
	l.users, ok = removeByID(l.users, id)
	l.reportDeletion("User", id, ok)
	return ok
}

// CountBooks returns the number of stored books.
func (l *Library) CountBooks() int { return len(l.books) }

// CountUsers returns the number of stored users.
func (l *Library) CountUsers() int { return len(l.users) }

// isValidID rejects malformed identifiers. They are reported like any unknown id.
func (l *Library) isValidID(kind, id, prefix string) bool {
	if l.idsHandler.IsValid(id, prefix) {
		return true
	}
	l.logger.Warn("library: malformed id", zap.String("kind", kind), zap.String("id", id))
	l.notifier.SendFailure(fmt.Sprintf("%s with id '%s' not found.", kind, id))
	return false
}

func (l *Library) reportDeletion(kind, id string, ok bool) {
	if !ok {
		l.logger.Warn("library: nothing to delete", zap.String("kind", kind), zap.String("id", id))
		l.notifier.SendFailure(fmt.Sprintf("%s with id '%s' not found.", kind, id))
		return
	}
	l.logger.Info("library: deleted", zap.String("kind", kind), zap.String("id", id))
	l.notifier.SendSuccess(fmt.Sprintf("%s with id '%s' deleted successfully.", kind, id))
}

// writeSummary prints a human readable listing of search results.
func writeSummary[T Item](l *Library, kind, text string, items []T) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d %s(s) matching '%s':\n", len(items), kind, text)
	for _, it := range items {
		fmt.Fprintf(&sb, "  - %s (id=%s, created=%s)\n", it.GetTitle(), it.GetID(), it.GetCreatedAt().Format(time.RFC3339))
	}
	if _, err := io.WriteString(l.out, sb.String()); err != nil {
		l.logger.Error("library: failed to write search summary", zap.String("kind", kind), zap.Error(err))
	}
}

func filterByTitle[T Item](items []T, text string) []T {
	found := []T{}
	for _, it := range items {
		if strings.Contains(it.GetTitle(), text) {
			found = append(found, it)
		}
	}
	return found
}

// paginate sorts a copy of items by creation time then skips
// (page-1)*pageSize items and takes at most pageSize.
func paginate[T Item](items []T, page, pageSize int) ([]T, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: page=%d size=%d", ErrInvalidPagination, page, pageSize)
	}
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GetCreatedAt().Before(sorted[j].GetCreatedAt())
	})

	// compare page indexes first so (page-1)*pageSize never overflows.
	if len(sorted) == 0 || page-1 > (len(sorted)-1)/pageSize {
		return []T{}, nil
	}
	offset := (page - 1) * pageSize
	end := len(sorted)
	if pageSize < end-offset {
		end = offset + pageSize
	}
	return sorted[offset:end], nil
}

func removeByID[T Item](items []T, id string) ([]T, bool) {
	for i, it := range items {
		if it.GetID() == id {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
