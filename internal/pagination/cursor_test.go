package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		cursor Cursor
	}{
		{"id only", Cursor{ID: 42}},
		{"with created_at", Cursor{CreatedAt: &ts, ID: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := Encode(tt.cursor)
			require.NotEmpty(t, token)

			got, err := Decode(token)
			require.NoError(t, err)
			assert.Equal(t, tt.cursor.ID, got.ID)
			if tt.cursor.CreatedAt == nil {
				assert.Nil(t, got.CreatedAt)
			} else {
				require.NotNil(t, got.CreatedAt)
				assert.True(t, tt.cursor.CreatedAt.Equal(*got.CreatedAt))
			}
		})
	}
}

func TestDecode_EmptyTokenIsFirstPage(t *testing.T) {
	c, err := Decode("")
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode("not!a!cursor")
	assert.Error(t, err)

	_, err = Decode("bm90LWpzb24")
	assert.Error(t, err)
}

func TestNewPage_FullPageHasNext(t *testing.T) {
	items := []uint{10, 9, 8, 7} // limit+1 rows fetched
	page := NewPage(items, 3, func(last uint) Cursor { return Cursor{ID: last} })

	require.Len(t, page.Results, 3)
	require.NotNil(t, page.Next)

	c, err := Decode(*page.Next)
	require.NoError(t, err)
	assert.Equal(t, uint(8), c.ID, "cursor must point at the last returned row")
}

func TestNewPage_ShortPageHasNoNext(t *testing.T) {
	page := NewPage([]uint{3, 2}, 3, func(last uint) Cursor { return Cursor{ID: last} })
	assert.Len(t, page.Results, 2)
	assert.Nil(t, page.Next)
}

func TestNewPage_NilItems(t *testing.T) {
	page := NewPage(nil, 3, func(last uint) Cursor { return Cursor{ID: last} })
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
	assert.Nil(t, page.Next)
}

func TestMap_KeepsNextCursor(t *testing.T) {
	items := []uint{5, 4, 3, 2}
	page := NewPage(items, 3, func(last uint) Cursor { return Cursor{ID: last} })

	mapped := Map(page, func(v uint) int { return int(v) * 10 })
	assert.Equal(t, []int{50, 40, 30}, mapped.Results)
	assert.Equal(t, page.Next, mapped.Next)
}
