package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_AllowListGetsNSESuffix(t *testing.T) {
	for _, token := range []string{"RELIANCE", "TCS", "HDFCBANK", "INFY", "SBIN", "TATAMOTORS", "WIPRO"} {
		resolved, guessed := Resolve(token)
		assert.Equal(t, token+".NS", resolved)
		assert.True(t, guessed, "suffix was defaulted for %s", token)
	}
}

func TestResolve_RecognizedSuffixPassesThrough(t *testing.T) {
	for _, token := range []string{"RELIANCE.NS", "INFY.BO", "AAPL.NS", "SBIN.BO"} {
		resolved, guessed := Resolve(token)
		assert.Equal(t, token, resolved)
		assert.False(t, guessed)
	}
}

func TestResolve_UnknownTokenPassesThrough(t *testing.T) {
	resolved, guessed := Resolve("AAPL")
	assert.Equal(t, "AAPL", resolved)
	assert.True(t, guessed)

	resolved, guessed = Resolve("MSFT")
	assert.Equal(t, "MSFT", resolved)
	assert.True(t, guessed)
}
