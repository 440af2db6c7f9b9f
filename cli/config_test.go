package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    Config
	}{
		{"json", "c.json", `{"lenientSeparators": true, "format": "json"}`, Config{LenientSeparators: true, Format: "json"}},
		{"yaml", "c.yaml", "debug: true\nformat: cbor\n", Config{Debug: true, Format: "cbor"}},
		{"yml", "c.yml", "lenientSeparators: false\n", Config{}},
		{"empty json", "c.json", "  \n", Config{}},
		{"empty yaml", "c.yaml", "", Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			cfg, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		detail  string
	}{
		{"unknown key", "c.json", `{"colour": true}`, "colour"},
		{"bad format", "c.yaml", "format: xml\n", "format"},
		{"wrong type", "c.json", `{"debug": "yes"}`, "debug"},
		{"not an object", "c.yaml", "- a\n- b\n", ""},
		{"json syntax", "c.json", `{"debug": tru`, "JSON syntax"},
		{"yaml syntax", "c.yml", "debug: [\n", "YAML syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)

			var cliErr *CLIError
			require.ErrorAs(t, err, &cliErr)
			assert.Equal(t, "config", cliErr.Type)
			assert.Equal(t, ExitUsage, cliErr.Code)
			assert.Contains(t, cliErr.Error(), tt.detail)
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "none.json"))
	assert.Equal(t, ExitUsage, ExitCode(err))
	assert.ErrorContains(t, err, "configuration file not found")
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()

	path, err := findConfig("", dir)
	require.NoError(t, err)
	assert.Empty(t, path)

	yamlPath := writeFile(t, dir, ".jsfront.yaml", "debug: false\n")
	path, err = findConfig("", dir)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, path)

	jsonPath := writeFile(t, dir, ".jsfront.json", "{}")
	path, err = findConfig("", dir)
	require.NoError(t, err)
	assert.Equal(t, jsonPath, path, ".jsfront.json wins over YAML")

	path, err = findConfig("explicit.yml", dir)
	require.NoError(t, err)
	assert.Equal(t, "explicit.yml", path)
}

func TestConfigAppliesToCommands(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".jsfront.json", `{"lenientSeparators": true, "format": "json"}`)

	res := runCLI(t, dir, "1__0", "tokens")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"value": 10`)
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".jsfront.yml", "lenientSeparators: true\nformat: json\n")

	res := runCLI(t, dir, "1__0", "--lenient-separators=false", "tokens", "--format", "text")
	assert.Equal(t, ExitSyntax, res.code)

	res = runCLI(t, dir, "1_0", "tokens", "--format", "text")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "NUMERIC_DECIMAL(\"1_0\")@1:1 = 10\nEOF@1:4\n", res.stdout)
}

func TestInvalidConfigFailsCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".jsfront.json", `{"format": "xml"}`)

	res := runCLI(t, dir, "a", "tokens")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "schema validation failed")
	assert.Contains(t, res.stderr, "Hint: Allowed keys")
}

func TestExplicitConfigFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", "format: json\n")

	res := runCLI(t, t.TempDir(), "a", "--config", path, "tokens")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"type": "IDENTIFIER"`)

	res = runCLI(t, dir, "a", "--config", filepath.Join(dir, "missing.json"), "tokens")
	assert.Equal(t, ExitUsage, res.code)
}
