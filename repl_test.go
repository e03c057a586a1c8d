package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_entryComplete(t *testing.T) {
	for _, tc := range []struct {
		src    string
		expect bool
	}{
		{"", true},
		{"1 2 +", true},
		{": sq dup * ;", true},
		{": sq dup", false},
		{": sq dup\n * ;", true},
		{":", false},
		{"variable", false},
		{"variable x", true},
		{"( a comment", false},
		{"( a comment\n ) 1", true},
		{"\\ to the end", true},
		{"1 ;", true},
		{"variable 3", true},
	} {
		assert.Equal(t, tc.expect, entryComplete(tc.src), "entryComplete(%q)", tc.src)
	}
}
