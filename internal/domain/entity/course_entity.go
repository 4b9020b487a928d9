package entity

// Course groups topics under a named subject. Courses are created lazily
// the first time a topic references them and are never updated or deleted.
// Name uniqueness is case-insensitive.
type Course struct {
	ID          int64
	Name        string
	Description string
}
