package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  JSONFormatOptions
		want  string
	}{
		{
			name:  "keeps key order",
			input: `{"b":1,"a":[1,2]}`,
			opts:  JSONFormatOptions{Indent: "2"},
			want:  "{\n  \"b\": 1,\n  \"a\": [\n    1,\n    2\n  ]\n}",
		},
		{
			name:  "sorts keys",
			input: `{"b":1,"a":[1,2]}`,
			opts:  JSONFormatOptions{Indent: "2", SortKeys: true},
			want:  "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": 1\n}",
		},
		{
			name:  "tab indent",
			input: `{"a":true}`,
			opts:  JSONFormatOptions{Indent: "tab"},
			want:  "{\n\t\"a\": true\n}",
		},
		{
			name:  "large numbers survive sorting",
			input: `{"id":12345678901234567890}`,
			opts:  JSONFormatOptions{SortKeys: true},
			want:  "{\n  \"id\": 12345678901234567890\n}",
		},
		{
			name:  "html is not escaped",
			input: `{"tag":"<b>"}`,
			opts:  JSONFormatOptions{SortKeys: true},
			want:  "{\n  \"tag\": \"<b>\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatJSON(tt.input, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatJSONRejectsInvalid(t *testing.T) {
	_, err := FormatJSON(`{"a":`, JSONFormatOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = FormatJSON("   ", JSONFormatOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormatJSONErrorPositionWithLeadingWhitespace(t *testing.T) {
	input := "\n\n\n{\"a\": }"

	_, err := FormatJSON(input, JSONFormatOptions{})
	var posErr *JSONPositionError
	require.ErrorAs(t, err, &posErr)
	assert.Equal(t, 4, posErr.Line)
	assert.Equal(t, 8, posErr.Column)

	validation := ValidateJSON(input)
	assert.Equal(t, validation.Line, posErr.Line)
	assert.Equal(t, validation.Column, posErr.Column)
}

func TestFormatJSONKeepsSurroundingWhitespaceOut(t *testing.T) {
	got, err := FormatJSON("\n  {\"a\":1}  \n\n", JSONFormatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", got)
}

func TestMinifyJSON(t *testing.T) {
	got, err := MinifyJSON("{ \"a\" : [ 1 , 2 ],\n \"b\": null }")
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2],"b":null}`, got)
}

func TestValidateJSON(t *testing.T) {
	t.Run("valid object", func(t *testing.T) {
		got := ValidateJSON(`{"a":{"b":[1]},"c":2}`)
		assert.True(t, got.Valid)
		assert.Equal(t, "object", got.Kind)
		assert.Equal(t, 2, got.Size)
		assert.Equal(t, 3, got.Depth)
	})

	t.Run("valid scalar", func(t *testing.T) {
		got := ValidateJSON(`"text"`)
		assert.True(t, got.Valid)
		assert.Equal(t, "string", got.Kind)
		assert.Equal(t, 0, got.Depth)
	})

	t.Run("trailing comma reports line", func(t *testing.T) {
		got := ValidateJSON("{\n  \"a\": 1,\n}")
		assert.False(t, got.Valid)
		assert.Equal(t, 3, got.Line)
		assert.Positive(t, got.Column)
		assert.NotEmpty(t, got.Message)
	})

	t.Run("trailing data", func(t *testing.T) {
		got := ValidateJSON(`{"a":1} {"b":2}`)
		assert.False(t, got.Valid)
		assert.Equal(t, 1, got.Line)
	})

	t.Run("truncated", func(t *testing.T) {
		got := ValidateJSON("[1, 2")
		assert.False(t, got.Valid)
		assert.Equal(t, 1, got.Line)
	})

	t.Run("empty", func(t *testing.T) {
		got := ValidateJSON("")
		assert.False(t, got.Valid)
		assert.Equal(t, "empty JSON input", got.Message)
	})
}

func TestQueryJSON(t *testing.T) {
	doc := `{"items":[{"name":"x","tags":["a","b"]}],"count":1}`

	got, err := QueryJSON(doc, "items[0].name")
	require.NoError(t, err)
	assert.Equal(t, `"x"`, got)

	got, err = QueryJSON(doc, "$.items[0].tags[1]")
	require.NoError(t, err)
	assert.Equal(t, `"b"`, got)

	got, err = QueryJSON(doc, `["count"]`)
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	_, err = QueryJSON(doc, "items[3]")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = QueryJSON(doc, "count.value")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = QueryJSON(doc, "missing")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConvertJSON(t *testing.T) {
	doc := `{"name":"dev","port":8080,"tags":["a"]}`

	out, err := ConvertJSON(doc, "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: dev")
	assert.Contains(t, out, "port: 8080")
	assert.Contains(t, out, "- a")

	out, err = ConvertJSON(doc, "toml")
	require.NoError(t, err)
	assert.Contains(t, out, `name = "dev"`)
	assert.Contains(t, out, "port = 8080")

	_, err = ConvertJSON(`[1,2]`, "toml")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ConvertJSON(doc, "xml")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHighlightJSON(t *testing.T) {
	out, err := HighlightJSON(`{"a": 1}`, "monokai")
	require.NoError(t, err)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "<span")
}
