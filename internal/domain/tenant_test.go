package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSubdomain(t *testing.T) {
	valid := []string{"acme", "acme-corp", "a", "tenant42", "42tenant"}
	for _, s := range valid {
		assert.True(t, ValidSubdomain(s), "expected %q to be valid", s)
	}

	invalid := []string{"", "Acme", "acme corp", "acme.corp", "-acme", "acme-", "acme_corp", strings.Repeat("a", 64)}
	for _, s := range invalid {
		assert.False(t, ValidSubdomain(s), "expected %q to be invalid", s)
	}
}
