// Package jsonsink writes query results to disk as pretty-printed JSON.
package jsonsink

import (
	"encoding/json"
	"os"
)

type Sink struct{}

func (Sink) Write(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
