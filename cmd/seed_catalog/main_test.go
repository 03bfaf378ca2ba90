package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func windows1252(t *testing.T, s string) []byte {
	t.Helper()
	out, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func TestParseCatalog_DecodesAndDeduplicates(t *testing.T) {
	src := "reference;name;brand;category_slug;price;weight_kg;power_w\n" +
		"bat-100;Batterie lithium 100Ah;Victron;Électricité;1 049,90;12,5;0\n" +
		"FAN-01;Lanterneau Maxxfan;Maxxair;Aération;329,00;4;36\n" +
		"BAT-100;Batterie lithium 100 Ah;Victron;Électricité;999,00;12,5;\n"

	rows, err := parseCatalog(bytes.NewReader(windows1252(t, src)))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "BAT-100", rows[0].Reference)
	assert.Equal(t, "Batterie lithium 100 Ah", rows[0].Name, "gana la última aparición")
	assert.Equal(t, "electricite", rows[0].CategorySlug)
	assert.Equal(t, "999", rows[0].Price.String())
	assert.True(t, rows[0].PowerW.IsZero())

	assert.Equal(t, "FAN-01", rows[1].Reference)
	assert.Equal(t, "aeration", rows[1].CategorySlug)
	assert.Equal(t, "36", rows[1].PowerW.String())
}

func TestParseCatalog_Errors(t *testing.T) {
	head := "reference;name;brand;category_slug;price;weight_kg;power_w\n"

	_, err := parseCatalog(strings.NewReader(head + ";Sans ref;;;1;1;1\n"))
	assert.Error(t, err)

	_, err = parseCatalog(strings.NewReader(head + "X;Prix;;;abc;1;1\n"))
	assert.ErrorContains(t, err, "precio")

	_, err = parseCatalog(strings.NewReader(head + "X;Négatif;;;-1;1;1\n"))
	assert.Error(t, err)

	rows, err := parseCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWriteSQL_UpsertsByReference(t *testing.T) {
	rows, err := parseCatalog(strings.NewReader("h1;h2;h3;h4;h5;h6;h7\nREF-1;Meuble d'angle;;;10;2,5;0\n"))
	require.NoError(t, err)

	var b strings.Builder
	writeSQL(&b, rows)
	sql := b.String()

	assert.Contains(t, sql, "'Meuble d''angle'")
	assert.Contains(t, sql, "NULL, 'Meuble")
	assert.Contains(t, sql, "10.00, 2.5, 0)")
	assert.Contains(t, sql, "ON CONFLICT (reference) DO UPDATE")
	assert.True(t, strings.HasPrefix(sql, "-- Generado"))
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))

	var again strings.Builder
	writeSQL(&again, rows)
	assert.Equal(t, sql, again.String(), "ids deterministas")
}
