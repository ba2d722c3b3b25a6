package gofeed_test

import (
	"testing"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const turboFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:turbo="http://turbo.yandex.ru" xmlns:yandex="http://news.yandex.ru">
<channel>
<title>Oa News</title>
<link>https://oane.ws</link>
<item turbo="true">
<title> Мост открыт </title>
<link>https://oane.ws/2024/05/01/most.html</link>
<pubDate>Wed, 01 May 2024 10:30:00 +0300</pubDate>
<enclosure url="https://oane.ws/img/most.jpg" type="image/jpeg"/>
<turbo:content><![CDATA[<header><h1>Мост открыт</h1></header><p>Первый абзац.</p>]]></turbo:content>
</item>
<item>
<title>Без ссылки</title>
</item>
<item>
<title>Второй</title>
<link>https://oane.ws/2024/05/01/second.html</link>
<description>Краткое описание</description>
</item>
</channel>
</rss>`

const fullTextFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:yandex="http://news.yandex.ru">
<channel>
<title>Ok Inform</title>
<link>https://ok-inform.ru</link>
<item>
<title>Новость</title>
<link>https://ok-inform.ru/news/1.html</link>
<description>Кратко</description>
<yandex:full-text><![CDATA[<p>Полный текст статьи.</p>]]></yandex:full-text>
</item>
</channel>
</rss>`

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("maps rss items", func(t *testing.T) {
		t.Parallel()

		items, err := gofeed.NewParser().Parse(turboFeed)

		require.NoError(t, err)
		require.Len(t, items, 2)

		first := items[0]
		assert.Equal(t, "Мост открыт", first.Title)
		assert.Equal(t, "https://oane.ws/2024/05/01/most.html", first.Link)
		assert.Equal(t, "https://oane.ws/img/most.jpg", first.Image)
		assert.Equal(t, time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC), first.PublishedAt)
		assert.Contains(t, first.Content, "<p>Первый абзац.</p>")

		second := items[1]
		assert.Equal(t, "Краткое описание", second.Description)
		assert.Empty(t, second.Content)
		assert.True(t, second.PublishedAt.IsZero())
	})

	t.Run("reads yandex full text", func(t *testing.T) {
		t.Parallel()

		items, err := gofeed.NewParser().Parse(fullTextFeed)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "<p>Полный текст статьи.</p>", items[0].Content)
	})

	t.Run("parses atom", func(t *testing.T) {
		t.Parallel()

		atom := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
<title>News</title>
<entry>
<title>Entry</title>
<link href="https://news.example.com/entry"/>
<updated>2024-05-01T10:00:00Z</updated>
<summary>Summary</summary>
</entry>
</feed>`

		items, err := gofeed.NewParser().Parse(atom)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "https://news.example.com/entry", items[0].Link)
		assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), items[0].PublishedAt)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := gofeed.NewParser().Parse("")

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		_, err := gofeed.NewParser().Parse("not a feed")

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})
}
