package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Blue Mug":             "blue-mug",
		"  Blue   Mug  ":       "blue-mug",
		"Café Olé":             "cafe-ole",
		"Taza de Cerámica 2x": "taza-de-ceramica-2x",
		"Çiçek Sepeti":         "cicek-sepeti",
		"Hello, World!":        "hello-world",
		"snake_case-name":      "snake_case-name",
		"---":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), "entrada %q", in)
	}
}

func TestMake_IsDeterministic(t *testing.T) {
	assert.Equal(t, Make("Blue Mug"), Make("Blue Mug"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "blue", Truncate("blue-mug", 5))
	assert.Equal(t, "blue-mug", Truncate("blue-mug", 100))
	assert.Equal(t, "blue-mug", Truncate("blue-mug", 0))
}
