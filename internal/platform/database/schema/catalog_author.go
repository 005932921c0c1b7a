package schema

// AuthorTable represents the 'authors' table
type AuthorTable struct {
	Table string
	ID    string
	Name  string
}

// Author is the schema definition for authors
var Author = AuthorTable{
	Table: "authors",
	ID:    "id",
	Name:  "name",
}

func (t AuthorTable) Columns() []string {
	return []string{t.ID, t.Name}
}
