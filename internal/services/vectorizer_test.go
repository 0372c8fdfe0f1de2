package services

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/talentgrid/internmatch/internal/config"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func testRating() config.RatingConfig {
	return config.RatingConfig{Min: 1, Max: 5, Neutral: 3.0}
}

func TestTextVectorizerFit(t *testing.T) {
	t.Run("empty corpus is a configuration error", func(t *testing.T) {
		v := NewTextVectorizer(testLogger())
		err := v.Fit(nil)
		require.Error(t, err)

		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	})

	t.Run("corpus of only stop words is a configuration error", func(t *testing.T) {
		v := NewTextVectorizer(testLogger())
		err := v.Fit([]string{"the and of", "to in is"})
		require.Error(t, err)
	})

	t.Run("vocabulary covers all corpus terms", func(t *testing.T) {
		v := NewTextVectorizer(testLogger())
		require.NoError(t, v.Fit([]string{"python sql", "java spring", "python ml"}))
		assert.Equal(t, 5, v.Dimensions())
	})
}

func TestTextVectorizerTransform(t *testing.T) {
	v := NewTextVectorizer(testLogger())
	require.NoError(t, v.Fit([]string{"python sql", "java spring", "python ml"}))

	t.Run("identical text has cosine similarity one", func(t *testing.T) {
		a := v.Transform("python ml")
		b := v.Transform("python ml")
		assert.Equal(t, a, b)
		assert.InDelta(t, 1.0, floats.Dot(a, b), 1e-12)
	})

	t.Run("out of vocabulary terms contribute nothing", func(t *testing.T) {
		vec := v.Transform("haskell prolog")
		for _, x := range vec {
			assert.Zero(t, x)
		}
	})

	t.Run("vectors are unit length or zero", func(t *testing.T) {
		assert.InDelta(t, 1.0, floats.Norm(v.Transform("python sql java"), 2), 1e-12)
		assert.Zero(t, floats.Norm(v.Transform(""), 2))
	})

	t.Run("transform is deterministic across fits", func(t *testing.T) {
		w := NewTextVectorizer(testLogger())
		require.NoError(t, w.Fit([]string{"python sql", "java spring", "python ml"}))
		assert.Equal(t, v.Transform("python spring"), w.Transform("python spring"))
	})
}

func TestTokenize(t *testing.T) {
	t.Run("lower-cases and splits on punctuation", func(t *testing.T) {
		assert.Equal(t, []string{"python", "sql", "c99"}, tokenize("Python, SQL/c99"))
	})

	t.Run("drops single characters and stop words", func(t *testing.T) {
		assert.Equal(t, []string{"go", "rust"}, tokenize("a go and the rust c"))
	})

	t.Run("length is measured in runes not bytes", func(t *testing.T) {
		// A single multibyte letter is still one character and must be
		// dropped like any other one-character token.
		assert.Empty(t, tokenize("é ß"))
		assert.Equal(t, []string{"機械", "学習"}, tokenize("機械 学習"))
	})

	t.Run("empty input yields no tokens", func(t *testing.T) {
		assert.Empty(t, tokenize("  ,;  "))
	})
}
