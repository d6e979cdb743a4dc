package cli

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	cmd := RootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuote(t *testing.T) {
	out, err := run("quote", "--travel", "1000", "--accommodation", "2000", "--food", "500", "--tax", "300")
	require.NoError(t, err)
	assert.Equal(t, "Total price: 3800.00\n", out)
}

func TestQuoteRejectsNegative(t *testing.T) {
	_, err := run("quote", "--tax", "-1")
	assert.ErrorContains(t, err, "must not be negative")
}

func TestGrantRoleValidatesArgs(t *testing.T) {
	_, err := run("grant-role", "nope", "admin")
	assert.ErrorContains(t, err, "invalid user id")

	_, err = run("grant-role", uuid.NewString(), "superuser")
	assert.ErrorContains(t, err, "unknown role")

	_, err = run("grant-role", uuid.NewString())
	assert.Error(t, err)
}
