package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/mock"
	npslog "github.com/fwojciec/newsparse/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		err     error
		wantLog []string
	}{
		{
			name:    "logs article size and duration",
			body:    "<html>Мост</html>",
			wantLog: []string{"msg=fetch", "url=https://news.example.com/1", "bytes=21", "duration=", "err=<nil>"},
		},
		{
			name:    "logs fetch error",
			err:     newsparse.Errorf(newsparse.ENOTFOUND, "HTTP 404"),
			wantLog: []string{"msg=fetch", "bytes=0", "message=HTTP 404"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			inner := &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return tt.body, tt.err
				},
			}

			body, err := npslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&buf, nil))).
				Fetch(context.Background(), "https://news.example.com/1")

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.body, body)
			}
			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := 0
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed++
			return nil
		},
	}

	err := npslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).Close()

	require.NoError(t, err)
	assert.Equal(t, 1, closed)
}
