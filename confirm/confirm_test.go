package confirm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompt(input string) (*PromptConfirmer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &PromptConfirmer{
		In:     strings.NewReader(input),
		Out:    out,
		Logger: logrus.New(),
	}, out
}

func Test_PromptConfirmer_Accepts(t *testing.T) {
	for _, answer := range []string{"y\n", "Y\n", "yes\n", " YES \r\n", "y"} {
		prompt, out := newPrompt(answer)

		confirmed, err := prompt.Confirm("ai-web", "Update Pricing Plan")

		require.NoError(t, err)
		assert.True(t, confirmed, answer)
		assert.Contains(t, out.String(), `"Update Pricing Plan" on target "ai-web"`)
	}
}

func Test_PromptConfirmer_Declines(t *testing.T) {
	for _, answer := range []string{"n\n", "\n", "maybe\n", ""} {
		prompt, _ := newPrompt(answer)

		confirmed, err := prompt.Confirm("ai-web", "Update Pricing Plan")

		require.NoError(t, err)
		assert.False(t, confirmed, answer)
	}
}

func Test_ForceConfirmer(t *testing.T) {
	confirmed, err := (&ForceConfirmer{Logger: logrus.New()}).Confirm("ai-web", "Update Pricing Plan")

	require.NoError(t, err)
	assert.True(t, confirmed)
}

func Test_WhatIfConfirmer(t *testing.T) {
	logger, hook := test.NewNullLogger()

	confirmed, err := (&WhatIfConfirmer{Logger: logger}).Confirm("ai-web", "Update Pricing Plan")

	require.NoError(t, err)
	assert.False(t, confirmed)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, `What if: Performing the operation "Update Pricing Plan" on target "ai-web".`, hook.LastEntry().Message)
}
