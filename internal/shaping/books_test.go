package shaping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/libhub/library-api/internal/domain/entity"
)

func sampleBook() entity.Book {
	return entity.Book{
		ID:              7,
		Title:           "The Shining",
		Description:     "A haunted hotel",
		Price:           12.50,
		PageCount:       447,
		PublicationDate: time.Date(1977, 1, 28, 0, 0, 0, 0, time.UTC),
		PublisherID:     3,
		AuthorID:        4,
		CategoryID:      5,
	}
}

func TestBookListProjection(t *testing.T) {
	v := BookList(sampleBook())
	assert.Equal(t, int64(7), v.ID)
	assert.Equal(t, "The Shining", v.Title)
	assert.Equal(t, 12.50, v.Price)
	assert.Equal(t, "1977-01-28", v.PublicationDate)
}

func TestBookDetailProjection(t *testing.T) {
	b := sampleBook()
	v := BookDetail(&b)
	assert.Equal(t, "A haunted hotel", v.Description)
	assert.Equal(t, 447, v.PageCount)
	assert.Equal(t, "1977-01-28", v.PublicationDate)
	assert.Equal(t, int64(3), v.Publisher)
	assert.Equal(t, int64(4), v.Author)
	assert.Equal(t, int64(5), v.Category)
}

func TestBookListAllEmpty(t *testing.T) {
	out := BookListAll(nil)
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}

func TestBookCreateInputToEntity(t *testing.T) {
	in := BookCreateInput{
		Title:       "Misery",
		Description: "Number one fan",
		Category:    5,
		PageCount:   310,
		Publisher:   3,
		Author:      4,
		Price:       9.99,
	}
	b := in.ToEntity()
	assert.Zero(t, b.ID)
	assert.True(t, b.PublicationDate.IsZero(), "publication date is the store's concern")
	assert.Equal(t, "Misery", b.Title)
	assert.Equal(t, int64(5), b.CategoryID)
}

func TestBookUpdateInputApply(t *testing.T) {
	b := sampleBook()
	title := "The Shining (reissue)"
	price := 14.00
	in := BookUpdateInput{Title: &title, Price: &price}
	in.Apply(&b)

	assert.Equal(t, "The Shining (reissue)", b.Title)
	assert.Equal(t, 14.00, b.Price)
	// untouched fields keep their values
	assert.Equal(t, "A haunted hotel", b.Description)
	assert.Equal(t, 447, b.PageCount)
	assert.Equal(t, int64(5), b.CategoryID)
}

func TestBookUpdateInputApplyEmpty(t *testing.T) {
	b := sampleBook()
	BookUpdateInput{}.Apply(&b)
	assert.Equal(t, sampleBook(), b)
}
