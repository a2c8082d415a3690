package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_LowercasesInput(t *testing.T) {
	tokens := Tokenize("Kubernetes TERRAFORM GoLang")

	assert.Equal(t, []string{"kubernetes", "terraform", "golang"}, tokens)
}

func TestTokenize_KeepsTechnicalTokens(t *testing.T) {
	tokens := Tokenize("We use C++, C# and CI/CD pipelines with scikit-learn")

	assert.Contains(t, tokens, "c++")
	assert.Contains(t, tokens, "c#")
	assert.Contains(t, tokens, "ci/cd")
	assert.Contains(t, tokens, "scikit-learn")
}

func TestTokenize_DropsStopwords(t *testing.T) {
	tokens := Tokenize("the team with strong skills and experience in python")

	assert.Equal(t, []string{"python"}, tokens)
}

func TestTokenize_DropsPureNumbers(t *testing.T) {
	tokens := Tokenize("5 years 2024 budget of 10000 for s3")

	assert.NotContains(t, tokens, "2024")
	assert.NotContains(t, tokens, "10000")
	assert.Contains(t, tokens, "s3")
	assert.Contains(t, tokens, "budget")
}

func TestTokenize_MinimumLengthTwo(t *testing.T) {
	tokens := Tokenize("a b c go")

	assert.Equal(t, []string{"go"}, tokens)
}

func TestTokenize_EmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("!!! ??? ..."))
}
