package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"dicegame_config/internal/domain/entity"
	"dicegame_config/internal/infrastructure/export"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format is an output encoding for the configuration record.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatScript Format = "js"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatScript}
}

// ParseFormat accepts "json", "yaml"/"yml" and "js"/"javascript".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "js", "javascript":
		return FormatScript, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	case FormatScript:
		return "application/javascript; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// Render encodes cfg in the requested format.
func Render(f Format, cfg entity.ContractConfig) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(cfg)
	case FormatYAML:
		return YAML(cfg)
	case FormatScript:
		return Script(cfg)
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}

// JSON encodes cfg as indented JSON with the record's upper-case keys.
func JSON(cfg entity.ContractConfig) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contract config to JSON: %w", err)
	}
	return data, nil
}

// YAML encodes cfg as YAML.
func YAML(cfg entity.ContractConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to marshal contract config to YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML encoder: %w", err)
	}
	return buf.Bytes(), nil
}

var scriptTemplate = template.Must(template.New("contract-config.js").Parse(`// DiceGame contract configuration
// Network: {{ .NetworkName }} (chain {{ .ChainID }})

const {{ .Name }} = {{ .Body }};

if (typeof module !== 'undefined' && module.exports) {
    module.exports = {{ .Name }};
} else if (typeof window !== 'undefined') {
    window.{{ .Name }} = {{ .Name }};
}
`))

// Script renders cfg as a browser/CommonJS script. The record is published via
// module.exports when a module system is present, otherwise as a window property.
func Script(cfg entity.ContractConfig) ([]byte, error) {
	body, err := JSON(cfg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = scriptTemplate.Execute(&buf, struct {
		Name        string
		NetworkName string
		ChainID     uint64
		Body        string
	}{
		Name:        export.Name,
		NetworkName: cfg.Network.Name,
		ChainID:     cfg.Network.ChainID,
		Body:        string(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render contract config script: %w", err)
	}
	return buf.Bytes(), nil
}
