package countries_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sornss/location/internal/countries"
)

func TestName(t *testing.T) {
	name, ok := countries.Name("US")
	require.True(t, ok)
	require.Equal(t, "United States", name)

	_, ok = countries.Name("XX")
	require.False(t, ok)

	// codes are case-sensitive registry keys
	_, ok = countries.Name("us")
	require.False(t, ok)
}

func TestDropdown(t *testing.T) {
	rows, err := countries.Dropdown("", "")
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	require.Equal(t, "AD", rows[0][countries.FieldCode], "rows sorted by code")
	require.Equal(t, "Andorra", rows[0][countries.FieldName])

	var found bool
	for _, row := range rows {
		if row[countries.FieldCode] == "US" {
			require.Equal(t, "United States", row[countries.FieldName])
			found = true
		}
	}
	require.True(t, found)
}

func TestDropdown_CustomFields(t *testing.T) {
	rows, err := countries.Dropdown("value", "label")
	require.NoError(t, err)
	require.Equal(t, "AD", rows[0]["value"])
	require.Equal(t, "Andorra", rows[0]["label"])
}

func TestDropdown_CollidingFields(t *testing.T) {
	_, err := countries.Dropdown("code", "code")
	require.Error(t, err)
}

func TestList_DeprecatedAlias(t *testing.T) {
	fromList, err := countries.List("", "")
	require.NoError(t, err)
	fromDropdown, err := countries.Dropdown("", "")
	require.NoError(t, err)
	require.Equal(t, fromDropdown, fromList)
}
