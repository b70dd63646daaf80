package present

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/docsmith/pkg/api"
)

func TestParseMode(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"preview", ModePreview, true},
		{"raw", ModeRaw, true},
		{"json", ModeJSON, true},
		{"tui", ModePreview, false},
	} {
		got, ok := ParseMode(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
	assert.Equal(t, "json", ModeJSON.String())
	assert.Equal(t, ModeRaw, ModeForView(api.ViewRaw))
	assert.Equal(t, ModePreview, ModeForView(api.ViewPreview))
}

func TestRenderResultModes(t *testing.T) {
	res := api.GenerationResult{Kind: api.KindDockerfile, Text: "FROM alpine"}
	ctx := context.Background()

	var raw bytes.Buffer
	require.NoError(t, RenderResult(ctx, &raw, res, Options{Mode: ModeRaw}))
	assert.Equal(t, "FROM alpine\n", raw.String())

	var js bytes.Buffer
	require.NoError(t, RenderResult(ctx, &js, res, Options{Mode: ModeJSON}))
	assert.Contains(t, js.String(), `"endpoint":"generate-dockerfile"`)

	var pv bytes.Buffer
	require.NoError(t, RenderResult(ctx, &pv, res, Options{Mode: ModePreview, Style: "notty", WordWrap: 60}))
	assert.Contains(t, pv.String(), "FROM alpine")
}

func TestRenderResultCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RenderResult(ctx, &bytes.Buffer{}, api.GenerationResult{Text: "x"}, Options{Mode: ModeRaw})
	assert.ErrorIs(t, err, context.Canceled)
}
