package util

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	a := assert.New(t)

	random = rand.New(rand.NewSource(0)) // nolint:gosec
	parts := strings.SplitN(GetRandomName(), " ", 2)
	a.Contains(adjectives, parts[0])
	a.Contains(animals, parts[1])

	random = rand.New(rand.NewSource(42)) // nolint:gosec
	first := GetRandomName()
	random = rand.New(rand.NewSource(42)) // nolint:gosec
	a.Equal(first, GetRandomName())
}
