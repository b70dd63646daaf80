package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerationResult_Digest(t *testing.T) {
	base := GenerationResult{
		URL:         "https://github.com/octocat/Hello-World",
		Kind:        KindDocumentation,
		Raw:         "```markdown\n# Title\n```",
		Text:        "# Title\n",
		CompletedAt: time.Now(),
	}

	t.Run("identical results produce identical digests", func(t *testing.T) {
		r1 := base
		r2 := base
		assert.Equal(t, r1.Digest(), r2.Digest())
	})

	t.Run("raw body and timestamps are ignored", func(t *testing.T) {
		r1 := base
		r2 := base
		r2.Raw = "# Title\n"
		r2.CompletedAt = base.CompletedAt.Add(time.Hour)
		assert.Equal(t, r1.Digest(), r2.Digest())
	})

	t.Run("kind and text change the digest", func(t *testing.T) {
		r1 := base

		r2 := base
		r2.Kind = KindDockerfile

		r3 := base
		r3.Text = "# Other\n"

		assert.NotEqual(t, r1.Digest(), r2.Digest())
		assert.NotEqual(t, r1.Digest(), r3.Digest())
	})

	t.Run("hex encoded 32 bytes", func(t *testing.T) {
		assert.Len(t, base.Digest(), 64)
	})
}
