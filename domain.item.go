package main

import "time"

// Item is the read-only view shared by all catalog entities.
type Item interface {
	GetID() string
	GetTitle() string
	GetCreatedAt() time.Time
}

var (
	_ Item = Book{}
	_ Item = User{}
)

// LibraryItem holds the identity, title and creation time of a catalog entity.
// Fields are unexported so an item cannot change once built.
type LibraryItem struct {
	id        string
	title     string
	createdAt time.Time
}

func (li LibraryItem) GetID() string           { return li.id }
func (li LibraryItem) GetTitle() string        { return li.title }
func (li LibraryItem) GetCreatedAt() time.Time { return li.createdAt }

// Book represents a book entity.
type Book struct {
	LibraryItem
}

// User represents a library user. Its title is the user name.
type User struct {
	LibraryItem
}

// GetName returns the user name.
func (u User) GetName() string { return u.title }

// EntityFactory builds catalog entities with generated
// identifiers and a creation time taken from its clock.
type EntityFactory struct {
	clock      Clocker
	idsHandler UIDHandler
}

// NewEntityFactory returns a factory stamping entities with the given clock and ids handler.
func NewEntityFactory(clock Clocker, idsHandler UIDHandler) *EntityFactory {
	return &EntityFactory{clock: clock, idsHandler: idsHandler}
}

// NewBook returns a book created at the given time or now when it is zero.
func (ef *EntityFactory) NewBook(title string, createdAt time.Time) Book {
	return Book{ef.newItem(BookIDPrefix, title, createdAt)}
}

// NewUser returns a user created at the given time or now when it is zero.
func (ef *EntityFactory) NewUser(name string, createdAt time.Time) User {
	return User{ef.newItem(UserIDPrefix, name, createdAt)}
}

func (ef *EntityFactory) newItem(prefix, title string, createdAt time.Time) LibraryItem {
	if createdAt.IsZero() {
		createdAt = ef.clock.Now()
	}
	return LibraryItem{
		id:        ef.idsHandler.Generate(prefix),
		title:     title,
		createdAt: createdAt,
	}
}
