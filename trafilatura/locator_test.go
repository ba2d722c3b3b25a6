package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_Locate(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewLocator().Locate("  ")

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/">Home</a><a href="/news">News</a></nav>
<article>
<h1>City council approves budget</h1>
<p>This is important article content that should be extracted by the locator.</p>
<p>The council voted on Tuesday after a long debate about road repairs.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2024</footer>
</body>
</html>`

		n, err := trafilatura.NewLocator().Locate(html)

		require.NoError(t, err)
		require.NotNil(t, n)
		assert.Contains(t, n.Text(), "important article content")
	})

	t.Run("removes footer boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h1>Article Title</h1>
<p>Article body with substantive content for readers of the local news.</p>
<p>Another paragraph explains what happens next with the project.</p>
</article>
<footer>
<p>Copyright 2024 Example Corp</p>
<nav>Privacy | Terms | Contact</nav>
</footer>
</body>
</html>`

		n, err := trafilatura.NewLocator().Locate(html)

		require.NoError(t, err)
		assert.Contains(t, n.Text(), "substantive content")
		assert.NotContains(t, n.Text(), "Copyright 2024 Example Corp")
	})
}
