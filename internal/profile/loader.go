package profile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported content file format")

// LoadContent reads a profile from a .toml, .yaml or .yml file. An empty
// path returns fallback unchanged.
func LoadContent(path string, fallback Content) (Content, error) {
	if strings.TrimSpace(path) == "" {
		return fallback, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("read content file: %w", err)
	}

	return DecodeContent(filepath.Ext(path), raw)
}

// DecodeContent decodes raw according to the file extension ext.
func DecodeContent(ext string, raw []byte) (Content, error) {
	var content Content

	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(raw)).Decode(&content); err != nil {
			return Content{}, fmt.Errorf("decode toml content: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &content); err != nil {
			return Content{}, fmt.Errorf("decode yaml content: %w", err)
		}
	default:
		return Content{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return content, nil
}
