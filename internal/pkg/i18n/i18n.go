package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type Translations map[string]string

const DefaultLocale = "en"

// Built-in English messages, used until (or unless) locale files override them.
var defaults = Translations{
	"FOLLOW":  "%s followed you",
	"LIKE":    "%s liked your post",
	"COMMENT": "%s commented on your post",
}

var (
	locales = map[string]Translations{DefaultLocale: defaults}
	mu      sync.RWMutex
)

// LoadTranslations reads <localePath>/<locale>/notifications.yaml for every locale
// directory. Directories without the file are skipped.
func LoadTranslations(localePath string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := os.ReadDir(localePath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := filepath.Join(localePath, locale, "notifications.yaml")

		data, err := os.ReadFile(filePath)
		if err != nil {
			continue
		}

		var file struct {
			Notifications Translations `yaml:"NOTIFICATIONS"`
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		merged := Translations{}
		if locale == DefaultLocale {
			for k, v := range defaults {
				merged[k] = v
			}
		}
		for k, v := range file.Notifications {
			merged[k] = v
		}
		locales[locale] = merged
	}

	return nil
}

// Translate looks key up in locale, then in English, and finally returns the key itself.
func Translate(locale, key string) string {
	mu.RLock()
	defer mu.RUnlock()

	locale = normalize(locale)
	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != DefaultLocale {
		if trans, ok := locales[DefaultLocale]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}

func Format(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(Translate(locale, key), args...)
}

// normalize maps "es-MX", "ES" or an Accept-Language value such as "es,en;q=0.8" to "es".
func normalize(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_,;"); i > 0 {
		locale = locale[:i]
	}
	if locale == "" {
		return DefaultLocale
	}
	return locale
}
