package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quay/vecscore/libscore"
)

// LoadOptions reads libscore options from the named YAML file. An empty name
// returns the zero Options.
func loadOptions(name string) (*libscore.Options, error) {
	var opts libscore.Options
	if name == "" {
		return &opts, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	switch err := dec.Decode(&opts); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return &opts, nil
}
