package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"Comma separated", "Go,Rust,C++", []string{"Go", "Rust", "C++"}},
		{"Trims whitespace", " Go , Rust ,  C++", []string{"Go", "Rust", "C++"}},
		{"Single skill", "Go", []string{"Go"}},
		{"Empty segments dropped", "Go,,Rust,", []string{"Go", "Rust"}},
		{"Only whitespace", "  ,  ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSkills(tt.raw))
		})
	}
}

func TestGravatarURL(t *testing.T) {
	got := GravatarURL("beep@example.com")
	// md5("beep@example.com")
	assert.Equal(t, "https://www.gravatar.com/avatar/64796500662cb0f5c59c4abff74c4f1e?s=200&r=pg&d=mm", got)

	// Address is case-normalized so the same mailbox maps to one avatar.
	assert.Equal(t, got, GravatarURL("  Beep@Example.COM "))
}
