package llmjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"plano":          {in: `{"a":1}`, want: `{"a":1}`},
		"bloque json":    {in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		"bloque sin tag": {in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		"texto alrededor": {
			in:   "Voici le résultat : {\"a\": {\"b\": 2}} merci",
			want: `{"a": {"b": 2}}`,
		},
		"sin json": {in: "aucune donnée", want: ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Extract(tc.in))
		})
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		Supplier string  `json:"supplier"`
		Total    float64 `json:"total_ttc"`
	}
	require.NoError(t, Decode("```json\n{\"supplier\":\"Leroy\",\"total_ttc\":120.5}\n```", &out))
	assert.Equal(t, "Leroy", out.Supplier)
	assert.InDelta(t, 120.5, out.Total, 0.001)

	assert.ErrorIs(t, Decode("rien", &out), ErrNoJSON)
	assert.Error(t, Decode("{pas du json}", &out))
}
