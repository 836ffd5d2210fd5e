package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
)

func TestColumnWidths(t *testing.T) {
	assert.Equal(t, []int{2, 2, 2, 1, 1, 1, 1, 1, 1}, columnWidths(9))
	assert.Equal(t, []int{12}, columnWidths(1))
	assert.Equal(t, []int{4, 4, 4}, columnWidths(3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "ñañ…", truncate("ñañañaña", 4))
}

func TestChangeListPDF_Encode(t *testing.T) {
	g := NewChangeListPDF()
	data, err := g.Encode(&admin.Dataset{
		Title:   "Productos",
		Headers: []string{"id", "name", "is_in_stock"},
		Rows:    [][]string{{"1", "Blue Mug", "1"}, {"2", strings.Repeat("x", 80), "0"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestChangeListPDF_RejectsTooManyColumns(t *testing.T) {
	headers := make([]string, gridColumns+1)
	_, err := NewChangeListPDF().Encode(&admin.Dataset{Headers: headers})
	assert.Error(t, err)
}

func TestChangeListPDF_DecodeUnsupported(t *testing.T) {
	_, err := NewChangeListPDF().Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, admin.ErrDecodeUnsupported)
}
