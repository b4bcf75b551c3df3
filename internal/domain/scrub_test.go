package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "crycurate/internal/model"
)

func TestScrubCopyrights(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "block copyright removed",
			input: "/*\n * Copyright (c) 2019 Example Corp.\n */\nf x = x\n",
			want:  "\nf x = x\n",
		},
		{
			name:  "line copyright removed",
			input: "// Copyright 2020 Someone\nf x = x\n",
			want:  "\nf x = x\n",
		},
		{
			name:  "case insensitive",
			input: "// COPYRIGHT notice\ncode\n",
			want:  "\ncode\n",
		},
		{
			name:  "indented line copyright removed",
			input: "  // copyright holder\ncode\n",
			want:  "\ncode\n",
		},
		{
			name:  "unrelated comments untouched",
			input: "// algorithm note\nf x = x\n",
			want:  "// algorithm note\nf x = x\n",
		},
		{
			name:  "block without copyright untouched",
			input: "/* proof reference */\nf x = x\n",
			want:  "/* proof reference */\nf x = x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := m.FileRecord{Filename: "f.cry", Content: tt.input}

			got := ScrubCopyrights(row)

			assert.Equal(t, tt.want, got.Content)
			assert.Equal(t, "f.cry", got.Filename)
		})
	}
}
