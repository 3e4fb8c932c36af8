package entity

import "time"

// Book is a catalog entry. Publisher, author and category are held as
// foreign keys; referential integrity is the store's concern.
type Book struct {
	ID              int64
	Title           string
	Description     string
	Price           float64
	PageCount       int
	PublicationDate time.Time
	PublisherID     int64
	AuthorID        int64
	CategoryID      int64
}
