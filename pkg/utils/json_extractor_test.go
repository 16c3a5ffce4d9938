package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{
			"bare object",
			`{"total": "12.50"}`,
			`{"total": "12.50"}`,
		},
		{
			"prose before and after",
			"Sure! Here is the receipt data:\n{\"items\": [], \"total\": \"3.00\"}\nLet me know if you need anything else.",
			`{"items": [], "total": "3.00"}`,
		},
		{
			"nested objects",
			`preamble {"a": {"b": {"c": 1}}} trailer`,
			`{"a": {"b": {"c": 1}}}`,
		},
		{
			"braces inside strings",
			`{"name": "curly {brace} soup", "qty": 1}`,
			`{"name": "curly {brace} soup", "qty": 1}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, json.Valid([]byte(got)))
		})
	}
}

func TestExtractJSONObjectMissing(t *testing.T) {
	_, err := ExtractJSONObject("the model refused to answer")
	assert.ErrorIs(t, err, ErrNoJSONObject)

	_, err = ExtractJSONObject("unterminated { object")
	assert.ErrorIs(t, err, ErrNoJSONObject)
}

func TestExtractJSONList(t *testing.T) {
	got, err := ExtractJSONList("Output: [{\"tool\": \"get_order\", \"args\": {\"order_id\": \"C9\"}}]")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"tool": "get_order", "args": {"order_id": "C9"}}]`, got)
}

func TestExtractJSONListWrapsBareObject(t *testing.T) {
	got, err := ExtractJSONList(`{"tool": "refuse"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"tool": "refuse"}]`, got)
}

func TestExtractJSONListStripsFences(t *testing.T) {
	raw := "```json\n[{\"tool\": \"refund_order\", \"args\": {\"order_id\": \"B77\", \"amount\": 5.4}}]\n```"
	got, err := ExtractJSONList(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"tool": "refund_order", "args": {"order_id": "B77", "amount": 5.4}}]`, got)
}
