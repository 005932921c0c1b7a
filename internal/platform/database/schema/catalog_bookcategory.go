package schema

// BookCategoryTable represents the 'book_categories' junction table
type BookCategoryTable struct {
	Table      string
	BookID     string
	CategoryID string
}

// BookCategory is the schema definition for book_categories
var BookCategory = BookCategoryTable{
	Table:      "book_categories",
	BookID:     "book_id",
	CategoryID: "category_id",
}
