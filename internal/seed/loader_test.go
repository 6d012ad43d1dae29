package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2023-05-10", time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)},
		{"2023/05/10", time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)},
		{"10-05-2023", time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)},
		{"2023-05-10 13:45:00", time.Date(2023, 5, 10, 13, 45, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseDate(c.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(c.want))
		})
	}

	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := ParseDate("05.10.2023")
		var dfe *DateFormatError
		require.ErrorAs(t, err, &dfe)
		assert.Equal(t, "05.10.2023", dfe.Value)
	})
}

func TestLoadOrders(t *testing.T) {
	t.Run("parses typed records", func(t *testing.T) {
		path := writeCSV(t, "id,order_date,user_id\n1,2023-05-10,7\n2,2023/06/01,8\n")
		got, err := LoadOrders(path)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, 7, got[0].UserID)
		assert.Equal(t, time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC), got[0].Date)
		assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), got[1].Date)
	})

	t.Run("missing column fails with SchemaError", func(t *testing.T) {
		path := writeCSV(t, "id,order_date\n1,2023-05-10\n")
		_, err := LoadOrders(path)
		var se *SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, []string{"user_id"}, se.Missing)
	})

	t.Run("non-numeric id fails with ParseError", func(t *testing.T) {
		path := writeCSV(t, "id,order_date,user_id\nabc,2023-05-10,7\n")
		_, err := LoadOrders(path)
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "id", pe.Field)
	})
}

func TestLoadOrderDetails(t *testing.T) {
	t.Run("fixes quality typo", func(t *testing.T) {
		path := writeCSV(t, "id,order_date,user_id,product_id,quality\n1,2023-05-10,7,3,2\n")
		got, err := LoadOrderDetails(path)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].ProductID)
		assert.InDelta(t, 2.0, got[0].Quantity, 1e-9)
	})

	t.Run("quantity column kept when both present", func(t *testing.T) {
		path := writeCSV(t, "id,order_date,user_id,product_id,quantity,quality\n1,2023-05-10,7,3,4.5,9\n")
		got, err := LoadOrderDetails(path)
		require.NoError(t, err)
		assert.InDelta(t, 4.5, got[0].Quantity, 1e-9)
	})

	t.Run("header-only file yields empty slice", func(t *testing.T) {
		path := writeCSV(t, "id,order_date,user_id,product_id,quantity\n")
		got, err := LoadOrderDetails(path)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("missing columns fail with SchemaError", func(t *testing.T) {
		path := writeCSV(t, "id,order_date,user_id\n1,2023-05-10,7\n")
		_, err := LoadOrderDetails(path)
		var se *SchemaError
		require.ErrorAs(t, err, &se)
		assert.ElementsMatch(t, []string{"product_id", "quantity"}, se.Missing)
	})

	t.Run("bad quantity fails with ParseError", func(t *testing.T) {
		path := writeCSV(t, "id,order_date,user_id,product_id,quantity\n1,2023-05-10,7,3,two\n")
		_, err := LoadOrderDetails(path)
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "quantity", pe.Field)
	})
}
