package delivery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDescription_Empty(t *testing.T) {
	assert.Equal(t, "", string(renderDescription("")))
}

func TestRenderDescription_Markdown(t *testing.T) {
	got := string(renderDescription("Sells **fresh** bread"))
	assert.Contains(t, got, "<strong>fresh</strong>")
}

func TestRenderDescription_StripsScripts(t *testing.T) {
	got := string(renderDescription("Hello <script>alert('x')</script> world"))
	assert.False(t, strings.Contains(got, "<script>"))
	assert.Contains(t, got, "Hello")
}
