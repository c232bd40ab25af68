package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextArray(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		vs := []string{"veg", "low-fat", "salted"}
		assert.Equal(t, vs, parseTextArray(formatTextArray(vs)))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "{}", formatTextArray(nil))
		assert.Nil(t, parseTextArray("{}"))
	})
}
