package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/format"
)

func TestParseTOML(t *testing.T) {
	input := `
title = "example"
version = 1.5
count = 3
enabled = true

[owner]
name = "Tom"
dob = 1979-05-27T07:32:00Z

[[items]]
id = 1

[[items]]
id = 2
tags = ["a", "b"]
`
	got, err := ParseString(input, format.TOMLFormat)
	require.NoError(t, err)

	// tables come out with sorted keys
	assert.Equal(t, []string{"count", "enabled", "items", "owner", "title", "version"}, got.Keys())
	assert.Equal(t,
		`{"count":3,"enabled":true,"items":[{"id":1},{"id":2,"tags":["a","b"]}],`+
			`"owner":{"dob":"1979-05-27T07:32:00Z","name":"Tom"},"title":"example","version":1.5}`,
		got.String(),
	)
}

func TestParseTOML_LocalDates(t *testing.T) {
	got, err := ParseString("day = 1979-05-27\nat = 07:32:00\n", format.TOMLFormat)
	require.NoError(t, err)

	day, _ := got.Get("day")
	assert.Equal(t, "1979-05-27", day.AsString())
	at, _ := got.Get("at")
	assert.Equal(t, "07:32:00", at.AsString())
}

func TestParseTOML_Errors(t *testing.T) {
	_, err := ParseString("key = \n", format.TOMLFormat)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidTOML)
	assert.Contains(t, err.Error(), "line 1")

	_, err = ParseString("a = 1\na = 2\n", format.TOMLFormat)
	assert.ErrorIs(t, err, errors.ErrInvalidTOML)
}
