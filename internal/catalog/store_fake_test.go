// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/libris/internal/catalog"
	"github.com/taibuivan/libris/internal/platform/dberr"
)

// # In-Memory Fake Store
//
// fakeStore implements catalog.Store on plain maps with snapshot-based
// transactions: Begin copies the data set, Commit publishes the copy, and
// Rollback discards it. This keeps the unit-of-work semantics observable
// without a database.

type fakeBookRow struct {
	title     string
	authorID  int
	imagePath *string
}

type link struct {
	bookID     int
	categoryID int
}

type fakeData struct {
	authors    map[int]string
	books      map[int]fakeBookRow
	categories map[int]string
	links      map[link]bool
	nextID     int
}

func newFakeData() *fakeData {
	return &fakeData{
		authors:    map[int]string{},
		books:      map[int]fakeBookRow{},
		categories: map[int]string{},
		links:      map[link]bool{},
		nextID:     1,
	}
}

func (d *fakeData) clone() *fakeData {
	copied := newFakeData()
	copied.nextID = d.nextID
	for id, name := range d.authors {
		copied.authors[id] = name
	}
	for id, row := range d.books {
		copied.books[id] = row
	}
	for id, name := range d.categories {
		copied.categories[id] = name
	}
	for l := range d.links {
		copied.links[l] = true
	}
	return copied
}

type fakeStore struct {
	mu   sync.Mutex
	data *fakeData
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: newFakeData()}
}

func (s *fakeStore) NewUnitOfWork(ctx context.Context) (catalog.UnitOfWork, error) {
	uow := &fakeUOW{store: s, view: s.data}
	uow.authors = &fakeAuthorRepo{uow: uow}
	uow.books = &fakeBookRepo{uow: uow}
	uow.categories = &fakeCategoryRepo{uow: uow}
	uow.links = &fakeLinkRepo{uow: uow}
	return uow, nil
}

// Seed helpers used by tests to arrange state outside of a unit of work.

func (s *fakeStore) seedAuthor(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.data.nextID
	s.data.nextID++
	s.data.authors[id] = name
	return id
}

func (s *fakeStore) seedCategory(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.data.nextID
	s.data.nextID++
	s.data.categories[id] = name
	return id
}

func (s *fakeStore) seedBook(title string, authorID int, categoryIDs ...int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.data.nextID
	s.data.nextID++
	s.data.books[id] = fakeBookRow{title: title, authorID: authorID}
	for _, categoryID := range categoryIDs {
		s.data.links[link{bookID: id, categoryID: categoryID}] = true
	}
	return id
}

// # Fake Unit of Work

type fakeUOW struct {
	store *fakeStore
	view  *fakeData
	inTx  bool

	authors    *fakeAuthorRepo
	books      *fakeBookRepo
	categories *fakeCategoryRepo
	links      *fakeLinkRepo
}

func (u *fakeUOW) Begin(ctx context.Context) error {
	if u.inTx {
		return catalog.ErrTransactionOpen
	}
	u.store.mu.Lock()
	u.view = u.store.data.clone()
	u.store.mu.Unlock()
	u.inTx = true
	return nil
}

func (u *fakeUOW) Commit(ctx context.Context) error {
	if !u.inTx {
		return nil
	}
	u.store.mu.Lock()
	u.store.data = u.view
	u.store.mu.Unlock()
	u.inTx = false
	return nil
}

func (u *fakeUOW) Rollback(ctx context.Context) {
	if !u.inTx {
		return
	}
	u.store.mu.Lock()
	u.view = u.store.data
	u.store.mu.Unlock()
	u.inTx = false
}

func (u *fakeUOW) Close(ctx context.Context) {
	u.Rollback(ctx)
}

func (u *fakeUOW) Authors() catalog.AuthorRepository              { return u.authors }
func (u *fakeUOW) Books() catalog.BookRepository                  { return u.books }
func (u *fakeUOW) Categories() catalog.CategoryRepository         { return u.categories }
func (u *fakeUOW) BookCategories() catalog.BookCategoryRepository { return u.links }

// nextID hands out ids the way a serial column would.
func (u *fakeUOW) nextID() int {
	id := u.view.nextID
	u.view.nextID++
	return id
}

// # Hydration Helpers

func (u *fakeUOW) hydrateAuthor(id int) *catalog.Author {
	name, ok := u.view.authors[id]
	if !ok {
		return nil
	}
	author := &catalog.Author{ID: id, Name: name, Books: []*catalog.Book{}}
	for _, bookID := range sortedKeysBook(u.view.books) {
		row := u.view.books[bookID]
		if row.authorID == id {
			author.Books = append(author.Books, &catalog.Book{
				ID:         bookID,
				Title:      row.title,
				AuthorID:   row.authorID,
				ImagePath:  row.imagePath,
				Categories: []*catalog.Category{},
			})
		}
	}
	return author
}

func (u *fakeUOW) hydrateBook(id int) *catalog.Book {
	row, ok := u.view.books[id]
	if !ok {
		return nil
	}
	book := &catalog.Book{
		ID:         id,
		Title:      row.title,
		AuthorID:   row.authorID,
		ImagePath:  row.imagePath,
		Categories: []*catalog.Category{},
	}
	if authorName, ok := u.view.authors[row.authorID]; ok {
		book.Author = &catalog.Author{ID: row.authorID, Name: authorName, Books: []*catalog.Book{}}
	}
	categoryIDs := []int{}
	for l := range u.view.links {
		if l.bookID == id {
			categoryIDs = append(categoryIDs, l.categoryID)
		}
	}
	sort.Ints(categoryIDs)
	for _, categoryID := range categoryIDs {
		book.Categories = append(book.Categories, &catalog.Category{
			ID:    categoryID,
			Name:  u.view.categories[categoryID],
			Books: []*catalog.Book{},
		})
	}
	return book
}

func (u *fakeUOW) hydrateCategory(id int) *catalog.Category {
	name, ok := u.view.categories[id]
	if !ok {
		return nil
	}
	category := &catalog.Category{ID: id, Name: name, Books: []*catalog.Book{}}
	bookIDs := []int{}
	for l := range u.view.links {
		if l.categoryID == id {
			bookIDs = append(bookIDs, l.bookID)
		}
	}
	sort.Ints(bookIDs)
	for _, bookID := range bookIDs {
		row := u.view.books[bookID]
		category.Books = append(category.Books, &catalog.Book{
			ID:         bookID,
			Title:      row.title,
			AuthorID:   row.authorID,
			ImagePath:  row.imagePath,
			Categories: []*catalog.Category{},
		})
	}
	return category
}

func sortedKeysBook(m map[int]fakeBookRow) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortedKeysString(m map[int]string) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// # Fake Repositories

type fakeAuthorRepo struct{ uow *fakeUOW }

func (r *fakeAuthorRepo) GetAll(ctx context.Context) ([]*catalog.Author, error) {
	authors := []*catalog.Author{}
	for _, id := range sortedKeysString(r.uow.view.authors) {
		authors = append(authors, r.uow.hydrateAuthor(id))
	}
	return authors, nil
}

func (r *fakeAuthorRepo) GetByID(ctx context.Context, id int) (*catalog.Author, error) {
	author := r.uow.hydrateAuthor(id)
	if author == nil {
		return nil, dberr.ErrNotFound
	}
	return author, nil
}

func (r *fakeAuthorRepo) Add(ctx context.Context, author *catalog.Author) error {
	author.ID = r.uow.nextID()
	r.uow.view.authors[author.ID] = author.Name
	return nil
}

func (r *fakeAuthorRepo) Update(ctx context.Context, author *catalog.Author) error {
	if _, ok := r.uow.view.authors[author.ID]; !ok {
		return dberr.ErrNotFound
	}
	r.uow.view.authors[author.ID] = author.Name
	return nil
}

func (r *fakeAuthorRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.uow.view.authors[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.uow.view.authors, id)
	return nil
}

type fakeBookRepo struct{ uow *fakeUOW }

func (r *fakeBookRepo) GetAll(ctx context.Context) ([]*catalog.Book, error) {
	books := []*catalog.Book{}
	for _, id := range sortedKeysBook(r.uow.view.books) {
		books = append(books, r.uow.hydrateBook(id))
	}
	return books, nil
}

func (r *fakeBookRepo) GetByID(ctx context.Context, id int) (*catalog.Book, error) {
	book := r.uow.hydrateBook(id)
	if book == nil {
		return nil, dberr.ErrNotFound
	}
	return book, nil
}

func (r *fakeBookRepo) GetByAuthorID(ctx context.Context, authorID int) ([]*catalog.Book, error) {
	books := []*catalog.Book{}
	for _, id := range sortedKeysBook(r.uow.view.books) {
		row := r.uow.view.books[id]
		if row.authorID == authorID {
			books = append(books, &catalog.Book{
				ID:         id,
				Title:      row.title,
				AuthorID:   row.authorID,
				ImagePath:  row.imagePath,
				Categories: []*catalog.Category{},
			})
		}
	}
	return books, nil
}

func (r *fakeBookRepo) Add(ctx context.Context, book *catalog.Book) error {
	book.ID = r.uow.nextID()
	r.uow.view.books[book.ID] = fakeBookRow{title: book.Title, authorID: book.AuthorID}
	return nil
}

func (r *fakeBookRepo) Update(ctx context.Context, book *catalog.Book) error {
	row, ok := r.uow.view.books[book.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	row.title = book.Title
	row.authorID = book.AuthorID
	r.uow.view.books[book.ID] = row
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.uow.view.books[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.uow.view.books, id)
	return nil
}

func (r *fakeBookRepo) UpdateImagePath(ctx context.Context, id int, path string) error {
	row, ok := r.uow.view.books[id]
	if !ok {
		return dberr.ErrNotFound
	}
	row.imagePath = &path
	r.uow.view.books[id] = row
	return nil
}

type fakeCategoryRepo struct{ uow *fakeUOW }

func (r *fakeCategoryRepo) GetAll(ctx context.Context) ([]*catalog.Category, error) {
	categories := []*catalog.Category{}
	for _, id := range sortedKeysString(r.uow.view.categories) {
		categories = append(categories, r.uow.hydrateCategory(id))
	}
	return categories, nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id int) (*catalog.Category, error) {
	category := r.uow.hydrateCategory(id)
	if category == nil {
		return nil, dberr.ErrNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*catalog.Category, error) {
	for _, id := range sortedKeysString(r.uow.view.categories) {
		if r.uow.view.categories[id] == name {
			return &catalog.Category{ID: id, Name: name, Books: []*catalog.Book{}}, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeCategoryRepo) Add(ctx context.Context, category *catalog.Category) error {
	category.ID = r.uow.nextID()
	r.uow.view.categories[category.ID] = category.Name
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *catalog.Category) error {
	if _, ok := r.uow.view.categories[category.ID]; !ok {
		return dberr.ErrNotFound
	}
	r.uow.view.categories[category.ID] = category.Name
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.uow.view.categories[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.uow.view.categories, id)
	return nil
}

type fakeLinkRepo struct{ uow *fakeUOW }

func (r *fakeLinkRepo) GetByBookID(ctx context.Context, bookID int) ([]*catalog.BookCategory, error) {
	categoryIDs := []int{}
	for l := range r.uow.view.links {
		if l.bookID == bookID {
			categoryIDs = append(categoryIDs, l.categoryID)
		}
	}
	sort.Ints(categoryIDs)

	links := []*catalog.BookCategory{}
	for _, categoryID := range categoryIDs {
		links = append(links, &catalog.BookCategory{BookID: bookID, CategoryID: categoryID})
	}
	return links, nil
}

func (r *fakeLinkRepo) Add(ctx context.Context, bookCategory *catalog.BookCategory) error {
	r.uow.view.links[link{bookID: bookCategory.BookID, categoryID: bookCategory.CategoryID}] = true
	return nil
}

func (r *fakeLinkRepo) DeleteByBookID(ctx context.Context, bookID int) error {
	for l := range r.uow.view.links {
		if l.bookID == bookID {
			delete(r.uow.view.links, l)
		}
	}
	return nil
}

func (r *fakeLinkRepo) DeleteByCategoryID(ctx context.Context, categoryID int) error {
	for l := range r.uow.view.links {
		if l.categoryID == categoryID {
			delete(r.uow.view.links, l)
		}
	}
	return nil
}
