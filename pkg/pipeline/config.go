package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/musicbox/pkg/errors"
	"github.com/matzehuels/musicbox/pkg/fonts"
)

// LoadConfig reads options from a TOML, YAML or JSON file, chosen by
// extension. Keys missing from the file keep their [DefaultOptions] value.
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return DecodeConfig(data, filepath.Ext(path))
}

// DecodeConfig decodes options in the format named by ext (".toml",
// ".yaml", ".yml" or ".json") on top of [DefaultOptions]. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func DecodeConfig(data []byte, ext string) (Options, error) {
	opts := DefaultOptions()
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		var md toml.MetaData
		md, err = toml.Decode(string(data), &opts)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return Options{}, errors.New(errors.ErrCodeInvalidConfig,
					"unknown config key %q", undecoded[0].String())
			}
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&opts)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&opts)
	default:
		return Options{}, errors.New(errors.ErrCodeInvalidConfig,
			"unsupported config format %q (use .toml, .yaml or .json)", ext)
	}
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	return opts, nil
}

func loadFont(path string) ([]byte, error) {
	data, err := fonts.Load(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "font %s", path)
	}
	return data, nil
}
