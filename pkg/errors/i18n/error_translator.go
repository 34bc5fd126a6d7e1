package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed *.json
var i18nFiles embed.FS

// DefaultLocale is loaded at package init so messages resolve before Load runs.
const DefaultLocale = "en"

var (
	mu       sync.RWMutex
	messages map[string]string
)

func init() {
	if err := Load(DefaultLocale); err != nil {
		panic(err)
	}
}

// Load replaces the active catalog with the embedded <locale>.json.
func Load(locale string) error {
	filename := locale + ".json"

	data, err := i18nFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read embedded i18n file %s: %w", filename, err)
	}

	loaded := make(map[string]string)
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse i18n file %s: %w", filename, err)
	}

	mu.Lock()
	messages = loaded
	mu.Unlock()
	return nil
}

func T(code string) string {
	mu.RLock()
	defer mu.RUnlock()
	if msg, ok := messages[code]; ok {
		return msg
	}
	return code // fallback
}

// Tf formats the catalog entry for code with args. Unknown codes come back
// unformatted.
func Tf(code string, args ...any) string {
	mu.RLock()
	msg, ok := messages[code]
	mu.RUnlock()
	if !ok {
		return code
	}
	return fmt.Sprintf(msg, args...)
}
