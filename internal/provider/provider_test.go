package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_MessageAndUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := &Error{Provider: "grok", Kind: KindTimeout, Err: inner}

	assert.Equal(t, "grok: timeout: boom", err.Error())
	assert.True(t, errors.Is(err, inner))

	bare := &Error{Provider: "leonardo", Kind: KindSession}
	assert.Equal(t, "leonardo: session", bare.Error())
}

func TestError_KindExtractableViaAs(t *testing.T) {
	var wrapped error = fmt.Errorf("generate: %w", &Error{Provider: "firefly", Kind: KindElementNotFound})

	var pErr *Error
	require.True(t, errors.As(wrapped, &pErr))
	assert.Equal(t, KindElementNotFound, pErr.Kind)
	assert.Equal(t, "firefly", pErr.Provider)
}

func TestSiteByName(t *testing.T) {
	s, err := SiteByName("grok")
	require.NoError(t, err)
	assert.Equal(t, "https://grok.com", s.URL)

	_, err = SiteByName("bing")
	assert.Error(t, err)
}

func TestSites_ConfigsAreComplete(t *testing.T) {
	require.Len(t, Sites, 7)
	seen := map[string]bool{}
	for _, s := range Sites {
		assert.False(t, seen[s.Name], "duplicate site %s", s.Name)
		seen[s.Name] = true
		assert.NotEmpty(t, s.URL, s.Name)
		assert.NotEmpty(t, s.PromptSelectors, s.Name)
		assert.NotEmpty(t, s.CDNHints, s.Name)
		assert.Positive(t, s.PollBudget, s.Name)
	}
}

func TestGenerate_NilSessionFailsAsSessionError(t *testing.T) {
	p := NewWeb(Sites[0], nil)
	_, err := p.Generate(context.Background(), "a prompt")

	var pErr *Error
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, KindSession, pErr.Kind)
}
