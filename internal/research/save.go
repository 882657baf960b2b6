package research

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SaveResults writes a result as indented JSON under dir. An empty
// filename gets a timestamped default. Returns the path written.
func SaveResults(v any, dir, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("research_results_%s.json", time.Now().Format("20060102_150405"))
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}

	path := filepath.Join(dir, filename)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}

	log.Printf("[INFO] results saved to %s", path)
	return path, nil
}
