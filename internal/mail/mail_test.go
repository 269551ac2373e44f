package mail

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReset_EscapesLink(t *testing.T) {
	html, err := renderReset(`https://app.test/reset?token=abc"><script>`)

	require.NoError(t, err)
	assert.Contains(t, html, "https://app.test/reset?token=abc")
	assert.NotContains(t, html, "<script>")
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, m.SendPasswordReset(context.Background(), "a@b.c", "https://app.test/reset?token=t"))

	assert.Contains(t, buf.String(), `"to":"a@b.c"`)
	assert.Contains(t, buf.String(), "token=t")
}
