package entity

// Category groups books. Name is unique and doubles as the lookup key on
// the HTTP surface ("name_category" on the wire).
type Category struct {
	ID          int64
	Name        string
	Description string
}
