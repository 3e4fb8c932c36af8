package shaping

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libhub/library-api/internal/domain/entity"
)

func TestCategoryWireFieldName(t *testing.T) {
	v := Category(&entity.Category{ID: 2, Name: "Horror", Description: "Scary"})
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"name_category":"Horror","description":"Scary"}`, string(raw))
}

func TestCategoryAllEmpty(t *testing.T) {
	out := CategoryAll(nil)
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}
