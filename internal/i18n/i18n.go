// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var (
	instance *I18n
	once     sync.Once
)

// Initialize loads the embedded locales once. Later calls are no-ops.
func Initialize(defaultLang string) error {
	var err error
	once.Do(func() {
		if defaultLang == "" {
			defaultLang = "en"
		}
		instance = &I18n{
			translations: make(map[string]map[string]string),
			defaultLang:  defaultLang,
		}
		err = instance.LoadTranslations()
	})
	return err
}

func (i *I18n) LoadTranslations() error {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("failed to list locales: %w", err)
	}

	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")
		filePath := path.Join("locales", entry.Name())

		data, err := localeFS.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", filePath, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", filePath, err)
		}

		i.mu.Lock()
		i.translations[lang] = translations
		i.mu.Unlock()
	}

	return nil
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if text, ok := i.lookup(lang, key); ok {
		return format(text, args)
	}
	if lang != i.defaultLang {
		if text, ok := i.lookup(i.defaultLang, key); ok {
			return format(text, args)
		}
	}

	// Return key if no translation found
	return key
}

func (i *I18n) lookup(lang, key string) (string, bool) {
	translations, ok := i.translations[lang]
	if !ok {
		return "", false
	}
	text, ok := translations[key]
	return text, ok
}

func format(text string, args []interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// Global functions
func T(lang, key string, args ...interface{}) string {
	if instance != nil {
		return instance.T(lang, key, args...)
	}
	return key
}

func GetSupportedLanguages() []string {
	if instance == nil {
		return []string{"en"}
	}

	instance.mu.RLock()
	defer instance.mu.RUnlock()

	langs := make([]string, 0, len(instance.translations))
	for lang := range instance.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func IsSupported(lang string) bool {
	if instance == nil {
		return lang == "en"
	}

	instance.mu.RLock()
	defer instance.mu.RUnlock()
	_, ok := instance.translations[lang]
	return ok
}
