package forge

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeConfigFile parses control-file content.
// An empty document decodes to nil; anything other than a mapping is malformed.
func decodeConfigFile(path string, data []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedFile, path, err)
	}

	switch v := doc.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %s: top level is %T, want mapping", ErrMalformedFile, path, doc)
	}
}
