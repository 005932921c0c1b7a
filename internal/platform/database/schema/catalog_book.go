package schema

// BookTable represents the 'books' table
type BookTable struct {
	Table     string
	ID        string
	Title     string
	AuthorID  string
	ImagePath string
}

// Book is the schema definition for books
var Book = BookTable{
	Table:     "books",
	ID:        "id",
	Title:     "title",
	AuthorID:  "author_id",
	ImagePath: "image_path",
}

func (t BookTable) Columns() []string {
	return []string{t.ID, t.Title, t.AuthorID, t.ImagePath}
}
