package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Config holds the settings a config file may provide. Flags given on the
// command line take precedence.
type Config struct {
	LenientSeparators bool   `json:"lenientSeparators"`
	Format            string `json:"format"`
	Debug             bool   `json:"debug"`
}

// defaultConfigNames are tried in order in the working directory when
// --config is not given.
var defaultConfigNames = []string{".jsfront.json", ".jsfront.yaml", ".jsfront.yml"}

//go:embed config.schema.json
var configSchemaJSON string

var (
	configSchemaOnce sync.Once
	configSchema     *jsonschema.Schema
	configSchemaErr  error
)

// compileConfigSchema compiles the embedded schema once. $ref resolution is
// disabled; the schema is self-contained.
func compileConfigSchema() (*jsonschema.Schema, error) {
	configSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.LoadURL = func(url string) (io.ReadCloser, error) {
			return nil, fmt.Errorf("$ref not allowed: %s", url)
		}

		url := "schema://jsfront-config.json"
		if err := compiler.AddResource(url, strings.NewReader(configSchemaJSON)); err != nil {
			configSchemaErr = err
			return
		}
		configSchema, configSchemaErr = compiler.Compile(url)
	})
	return configSchema, configSchemaErr
}

// findConfig returns the config path to load: explicit when set, otherwise
// the first default name present in dir. An empty result means no config.
func findConfig(explicit, dir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, name := range defaultConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", ioError(fmt.Errorf("checking %s: %w", path, err))
		}
	}
	return "", nil
}

// LoadConfig reads, validates and decodes the config file at path. YAML is
// chosen by the .yaml/.yml extension, JSON otherwise.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, &CLIError{
				Type:    "config",
				Message: fmt.Sprintf("configuration file not found: %s", path),
				Hint:    "Create the file or drop the --config flag",
				Code:    ExitUsage,
				Err:     err,
			}
		}
		return Config{}, ioError(fmt.Errorf("reading configuration: %w", err))
	}
	return parseConfig(path, data)
}

func parseConfig(path string, data []byte) (Config, error) {
	doc, err := decodeConfigDocument(path, data)
	if err != nil {
		return Config{}, configError(path, err, "")
	}

	schema, err := compileConfigSchema()
	if err != nil {
		return Config{}, fmt.Errorf("compiling configuration schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return Config{}, configError(path, errors.New("schema validation failed"), ve.Error())
		}
		return Config{}, configError(path, err, "")
	}

	// The document already matches the schema; round-trip it through JSON
	// to fill the typed struct.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return Config{}, configError(path, err, "")
	}
	var cfg Config
	if err := json.Unmarshal(normalized, &cfg); err != nil {
		return Config{}, configError(path, err, "")
	}
	return cfg, nil
}

// decodeConfigDocument decodes data into the generic form the schema
// validator expects. An empty document is an empty object.
func decodeConfigDocument(path string, data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("YAML syntax: %w", err)
		}
		return doc, nil
	default:
		var doc any
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("JSON syntax: %w", err)
		}
		return doc, nil
	}
}
