package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader_ParsesHeader(t *testing.T) {
	r, err := NewReader(strings.NewReader("Product_Code, Type ,quantity\nCM500,cash,2\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"product_code", "type", "quantity"}, r.Headers())
	assert.Empty(t, r.RequireColumns("product_code", "type", "quantity"))
	assert.Equal(t, []string{"unit_price"}, r.RequireColumns("unit_price"))
}

func TestNewReader_StripsBOM(t *testing.T) {
	r, err := NewReader(strings.NewReader("\xEF\xBB\xBFproduct_code,quantity\nCM500,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"product_code", "quantity"}, r.Headers())
}

func TestNewReader_EmptyFile(t *testing.T) {
	_, err := NewReader(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestNewReader_InvalidEncoding(t *testing.T) {
	_, err := NewReader(strings.NewReader("product\xFF\xFEcode,qty\n"))
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestReadAll_MapsRowsToColumns(t *testing.T) {
	input := "product_code,type,quantity,notes\n" +
		"CM500,cash,2,\n" +
		"\n" +
		"BM1000,credit,1.5,monthly customer\n"
	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "CM500", rows[0].Get("product_code"))
	assert.Equal(t, "", rows[0].Get("notes"))

	// Blank line was skipped, so the second data row keeps its file line
	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "credit", rows[1].Get("type"))
	assert.Equal(t, "monthly customer", rows[1].Get("notes"))
}

func TestReadAll_ShortRowsPadMissingColumns(t *testing.T) {
	r, err := NewReader(strings.NewReader("product_code,type,quantity\nCM500,cash\n"))
	require.NoError(t, err)

	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get("quantity"))
}

func TestRowError_Format(t *testing.T) {
	withColumn := RowError{Line: 3, Column: "quantity", Message: "must be a number"}
	assert.Equal(t, `line 3, column "quantity": must be a number`, withColumn.Error())

	withoutColumn := RowError{Line: 5, Message: "unknown product"}
	assert.Equal(t, "line 5: unknown product", withoutColumn.Error())
}
