package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/newsparse"
	main "github.com/fwojciec/newsparse/cmd/newsparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><head><title>Bridge</title><script>var x = 1;</script></head><body>
<nav><a href="/">Home</a></nav>
<div class="article">
  <p>Мэр открыл мост.</p>
  <p><img src="/img/bridge.jpg" alt="Мост"></p>
  <h2>Подробности</h2>
  <p>Движение начнется завтра.</p>
  <div class="ads">Реклама</div>
</div>
</body></html>`

func runExtract(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	m := main.NewMain()
	m.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), append([]string{"extract"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestCmdExtract(t *testing.T) {
	t.Parallel()

	t.Run("extracts blocks from file as JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte(articlePage), 0o644))

		stdout, _, err := runExtract(t, "", path,
			"--selector", "div.article",
			"--remove", "div.ads",
			"--base-url", "https://news.example.com/1",
		)
		require.NoError(t, err)

		var got newsparse.Extraction
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, []newsparse.Block{
			newsparse.TextBlock("Мэр открыл мост."),
			newsparse.ImageBlock("https://news.example.com/img/bridge.jpg", "Мост"),
			newsparse.HeaderBlock("Подробности", 2),
			newsparse.TextBlock("Движение начнется завтра."),
		}, got.Blocks)
	})

	t.Run("reads stdin when no file given", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runExtract(t, articlePage, "--selector", "div.article", "--remove", "div.ads")
		require.NoError(t, err)

		var got newsparse.Extraction
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Len(t, got.Blocks, 4)
	})

	t.Run("drops text duplicated by summary", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runExtract(t, articlePage,
			"--selector", "div.article",
			"--remove", "div.ads",
			"--summary", "Мэр открыл мост.",
		)
		require.NoError(t, err)

		var got newsparse.Extraction
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.NotContains(t, got.Blocks, newsparse.TextBlock("Мэр открыл мост."))
		assert.Equal(t, "Мэр открыл мост.", got.Summary)
	})

	t.Run("captures first paragraph as summary", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runExtract(t, articlePage,
			"--selector", "div.article",
			"--remove", "div.ads",
			"--dedup", "capture",
		)
		require.NoError(t, err)

		var got newsparse.Extraction
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, "Мэр открыл мост.", got.Summary)
		assert.NotContains(t, got.Blocks, newsparse.TextBlock("Мэр открыл мост."))
	})

	t.Run("renders markdown", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runExtract(t, articlePage,
			"--selector", "div.article",
			"--remove", "div.ads",
			"--base-url", "https://news.example.com/1",
			"--format", "markdown",
		)
		require.NoError(t, err)

		assert.Contains(t, stdout, "Мэр открыл мост.")
		assert.Contains(t, stdout, "## Подробности")
		assert.Contains(t, stdout, "![Мост](https://news.example.com/img/bridge.jpg)")
		assert.NotContains(t, stdout, "Реклама")
	})

	t.Run("returns error when body not found", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := runExtract(t, articlePage, "--selector", "div.missing")

		require.Error(t, err)
		assert.Equal(t, newsparse.ENOTFOUND, newsparse.ErrorCode(err))
		assert.Contains(t, stderr, "error:")
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := runExtract(t, "", filepath.Join(t.TempDir(), "missing.html"))

		require.Error(t, err)
		assert.Equal(t, newsparse.ENOTFOUND, newsparse.ErrorCode(err))
	})

	t.Run("rejects unknown dedup mode", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := runExtract(t, articlePage, "--dedup", "fuzzy")

		require.Error(t, err)
		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
		assert.Contains(t, stderr, "error: unknown dedup mode")
	})

	t.Run("keeps line breaks as paragraph separators", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><div class="article"><p>Первая строка<br>Вторая строка</p></div></body></html>`
		stdout, _, err := runExtract(t, page,
			"--selector", "div.article",
			"--dedup", "substring",
			"--keep-breaks",
			"--entities", "br",
		)
		require.NoError(t, err)

		var got newsparse.Extraction
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, []newsparse.Block{
			newsparse.TextBlock("Первая строка"),
			newsparse.TextBlock("Вторая строка"),
		}, got.Blocks)
	})
}
