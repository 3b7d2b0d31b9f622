package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertSecretRedacted verifies that a secret value does not appear in a string.
//
// It checks that the secret value is not present in the output, and that the
// [REDACTED] marker is present instead.
func AssertSecretRedacted(t *testing.T, output, secretValue string) {
	t.Helper()

	assert.NotContains(t, output, secretValue,
		"Secret value %q should be redacted, but appears in output", secretValue)
	assert.Contains(t, output, "[REDACTED]",
		"Expected [REDACTED] marker when secret is used")
}

// AssertNoSecrets verifies that none of the values appear in output.
func AssertNoSecrets(t *testing.T, output string, secrets ...string) {
	t.Helper()

	for _, s := range secrets {
		assert.NotContains(t, output, s, "Secret value %q leaked into output", s)
	}
}
