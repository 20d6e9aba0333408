package markup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Storefront-api/internal/infrastructure/markup"
)

func TestRender_Markdown(t *testing.T) {
	r := markup.NewRenderer()
	html, err := r.Render("**Georgette** lehenga\n\n- Hand wash\n- Dry clean")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Georgette</strong>")
	assert.Contains(t, html, "<li>Hand wash</li>")
}

func TestRender_EliminaScripts(t *testing.T) {
	r := markup.NewRenderer()
	html, err := r.Render("Hola <script>alert(1)</script> [x](javascript:alert(1))")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "javascript:")
}

func TestRender_Vacio(t *testing.T) {
	html, err := markup.NewRenderer().Render("   ")
	require.NoError(t, err)
	assert.Empty(t, html)
}
