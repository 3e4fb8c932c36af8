package shaping

import "github.com/libhub/library-api/internal/domain/entity"

// CategoryView serves both list and detail projections; the category is
// small enough that they coincide. The wire field for the name is
// name_category, which is also the lookup key in URLs.
type CategoryView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name_category"`
	Description string `json:"description"`
}

func Category(cat *entity.Category) CategoryView {
	return CategoryView{ID: cat.ID, Name: cat.Name, Description: cat.Description}
}

func CategoryAll(cats []entity.Category) []CategoryView {
	out := make([]CategoryView, 0, len(cats))
	for i := range cats {
		out = append(out, Category(&cats[i]))
	}
	return out
}

// CategoryInput is the writable field subset for create and full update.
type CategoryInput struct {
	Name        string `json:"name_category" binding:"required"`
	Description string `json:"description"`
}

func (in CategoryInput) ToEntity() entity.Category {
	return entity.Category{Name: in.Name, Description: in.Description}
}
