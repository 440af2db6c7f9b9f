package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/jsfront/core/tokenfmt"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// runCLI executes the command line with dir as the working directory for
// config lookup.
func runCLI(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	a := &app{stdin: strings.NewReader(stdin), stdout: &stdout, stderr: &stderr, workDir: dir}
	code := a.execute(context.Background(), args)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTokensText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.js", "let x = 0x10;")

	res := runCLI(t, dir, "", "tokens", path)
	require.Equal(t, ExitOK, res.code, res.stderr)

	want := strings.Join([]string{
		`LET("let")@1:1`,
		`IDENTIFIER("x")@1:5`,
		`ASSIGN("=")@1:7`,
		`NUMERIC_HEX("0x10")@1:9 = 16`,
		`SEMICOLON(";")@1:13`,
		`EOF@1:14`,
	}, "\n") + "\n"
	assert.Equal(t, want, res.stdout)
}

func TestTokensFromStdin(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{{"tokens", "-"}, {"tokens"}} {
		res := runCLI(t, dir, "a", args...)
		require.Equal(t, ExitOK, res.code, res.stderr)
		assert.Equal(t, "IDENTIFIER(\"a\")@1:1\nEOF@1:2\n", res.stdout)
	}
}

func TestTokensFirst(t *testing.T) {
	res := runCLI(t, t.TempDir(), "const a = 1;", "tokens", "--first")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "CONST(\"const\")@1:1\n", res.stdout)
}

func TestTokensFirstStopsBeforeLaterErrors(t *testing.T) {
	res := runCLI(t, t.TempDir(), "ok 'unterminated", "tokens", "--first")
	assert.Equal(t, ExitOK, res.code, res.stderr)
}

func TestTokensJSON(t *testing.T) {
	res := runCLI(t, t.TempDir(), "1.5 'a'", "tokens", "--format", "json")
	require.Equal(t, ExitOK, res.code, res.stderr)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "NUMERIC_DECIMAL", records[0]["type"])
	assert.Equal(t, 1.5, records[0]["value"])
	assert.Equal(t, "a", records[1]["text"])
	assert.Equal(t, "EOF", records[2]["type"])
}

func TestTokensCBOR(t *testing.T) {
	res := runCLI(t, t.TempDir(), "a + b", "tokens", "--format", "cbor")
	require.Equal(t, ExitOK, res.code, res.stderr)

	stream, err := tokenfmt.Decode(strings.NewReader(res.stdout))
	require.NoError(t, err)
	require.Len(t, stream.Tokens, 4)
	assert.Equal(t, "ADD", stream.Tokens[1].Type)
}

func TestTokensTelemetry(t *testing.T) {
	res := runCLI(t, t.TempDir(), "a = a;", "tokens", "--telemetry")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "IDENTIFIER         2\n")
	assert.Contains(t, res.stderr, "total              5\n")
}

func TestTokensLexError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.js", "let s = 'open\n")

	res := runCLI(t, dir, "", "tokens", path)
	assert.Equal(t, ExitSyntax, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Error: failed to process "+path)
	assert.Contains(t, res.stderr, "lexical error: unterminated string literal")
	assert.Contains(t, res.stderr, " 1 | let s = 'open\n   |         ^")
}

func TestTokensInvalidFormat(t *testing.T) {
	res := runCLI(t, t.TempDir(), "a", "tokens", "--format", "xml")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "must be one of text, json, cbor")
}

func TestTokensMissingFile(t *testing.T) {
	dir := t.TempDir()
	res := runCLI(t, dir, "", "tokens", filepath.Join(dir, "nope.js"))
	assert.Equal(t, ExitIO, res.code)
	assert.Contains(t, res.stderr, "error opening file")
}

func TestTooManyArguments(t *testing.T) {
	res := runCLI(t, t.TempDir(), "", "tokens", "a.js", "b.js")
	assert.Equal(t, ExitUsage, res.code)
}

func TestWatchNeedsFile(t *testing.T) {
	res := runCLI(t, t.TempDir(), "a", "tokens", "--watch", "-")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "--watch needs a file path")
}

func TestLenientSeparatorsFlag(t *testing.T) {
	dir := t.TempDir()

	strict := runCLI(t, dir, "1__0", "tokens")
	assert.Equal(t, ExitSyntax, strict.code)
	assert.Contains(t, strict.stderr, "invalid numeric literal")

	lenient := runCLI(t, dir, "1__0", "--lenient-separators", "tokens")
	require.Equal(t, ExitOK, lenient.code, lenient.stderr)
	assert.Contains(t, lenient.stdout, `NUMERIC_DECIMAL("1__0")@1:1 = 10`)
}

func TestParseJSON(t *testing.T) {
	res := runCLI(t, t.TempDir(), "let a = 1 + 2 * 3;", "parse")
	require.Equal(t, ExitOK, res.code, res.stderr)

	var prog map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &prog))
	assert.Equal(t, "Program", prog["type"])

	decl := prog["body"].([]any)[0].(map[string]any)
	assert.Equal(t, "let", decl["kind"])
	init := decl["list"].([]any)[0].(map[string]any)["init"].(map[string]any)
	assert.Equal(t, "+", init["operator"])
	assert.Equal(t, "*", init["right"].(map[string]any)["operator"])
	assert.True(t, strings.HasPrefix(res.stdout, "{\n  \""), "output is indented")
}

func TestParseError(t *testing.T) {
	res := runCLI(t, t.TempDir(), "cosnt x = 1;", "parse")
	assert.Equal(t, ExitSyntax, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Error: failed to process <stdin>")
	assert.Contains(t, res.stderr, "did you mean 'const'?")
}

func TestParseRedeclaration(t *testing.T) {
	res := runCLI(t, t.TempDir(), "let a; let a;", "parse")
	assert.Equal(t, ExitSyntax, res.code)
	assert.Contains(t, res.stderr, `already declared: identifier "a" has already been declared`)
}

func TestDebugFlagLogs(t *testing.T) {
	res := runCLI(t, t.TempDir(), "a;", "--debug", "parse")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "[CLI] configuration")
	assert.Contains(t, res.stderr, "[LEXER] dispatch")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(assert.AnError))
	assert.Equal(t, ExitIO, ExitCode(ioError(assert.AnError)))
	assert.Equal(t, ExitSyntax, ExitCode(syntaxError("x", assert.AnError)))
}

func TestFormatErrorColor(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, usageError("bad", "try again"), true)
	assert.Equal(t, ColorRed+"Error: "+ColorReset+"bad\n"+ColorYellow+"Hint: "+ColorReset+"try again\n", buf.String())

	buf.Reset()
	FormatError(&buf, assert.AnError, false)
	assert.Equal(t, "Error: "+assert.AnError.Error()+"\n", buf.String())
}
