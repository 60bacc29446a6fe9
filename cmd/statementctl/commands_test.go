package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const statementYAML = `statement_number: STM-20240701-00042
statement_date: 2024-07-01T00:00:00Z
period_start: 2024-06-01T00:00:00Z
period_end: 2024-06-30T00:00:00Z
partner:
  id: prt-001-adventure
  business_name: Adventure Sports Inc
  contact_name: Dana Reyes
  contact_email: dana@adventure.example
  commission_tier: Gold
  commission_rate: 0.45
summary:
  total_policies: 1
  total_premium: 40.00
  total_commission: 18.00
  previous_balance: 0
  payments_received: 0
  current_balance: 18.00
line_items:
  - date: "2024-06-03"
    description: Rock Climbing - premium coverage (4 participants)
    policy_number: POL-20240603-00001
    premium: 40.00
    commission_rate: 0.45
    commission_amount: 18.00
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeStatement(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNumberCommand(t *testing.T) {
	out, err := run(t, "number", "-n", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	re := regexp.MustCompile(`^STM-\d{8}-\d{5}$`)
	for _, l := range lines {
		assert.Regexp(t, re, l)
	}
}

func TestRenderFromFixtures(t *testing.T) {
	out, err := run(t, "render", "--partner", "prt-001-adventure",
		"--start", "2024-06-01", "--end", "2024-06-30", "--format", "csv", "--out", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "SETTLEMENT STATEMENT"))
	assert.Contains(t, out, "Adventure Sports Inc")
}

func TestRenderFromFileIntoDirectory(t *testing.T) {
	in := writeStatement(t, statementYAML)
	dir := t.TempDir()

	out, err := run(t, "render", "-i", in, "-f", "html", "-o", dir)
	require.NoError(t, err)

	want := filepath.Join(dir, "statement-STM-20240701-00042.html")
	assert.Equal(t, want, strings.TrimSpace(out))
	body, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Statement ID: STM-20240701-00042")
}

func TestRenderRequiresSource(t *testing.T) {
	_, err := run(t, "render", "--format", "csv")
	assert.Error(t, err)

	_, err = run(t, "render", "-i", writeStatement(t, statementYAML), "--format", "docx", "--out", "-")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", writeStatement(t, statementYAML))
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(out))

	bad := strings.Replace(statementYAML, "total_premium: 40.00", "total_premium: 45.00", 1)
	out, err = run(t, "check", writeStatement(t, bad))
	require.Error(t, err)
	assert.Contains(t, out, "total_premium: supplied 45.00, derived 40.00")
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := run(t, "hash-password", "s3cret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("s3cret")))
}

func TestTierCommand(t *testing.T) {
	out, err := run(t, "tier", "--volume", "1200", "--premium", "100", "--policies", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "tier: Silver (45.0%)")
	assert.Contains(t, out, "next: Gold in 1300 participants (+5.0%)")
	assert.Contains(t, out, "commission: $45.00 + bonus $20.00 = $65.00")
}
