package locale

import (
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

type yamlDictionary struct {
	entries map[string]string
}

func (d *yamlDictionary) Lookup(key string) (data string, ok bool) {
	if value, ok := d.entries[key]; ok {
		// \x02 is STX (start of text); it marks the value as a literal
		// message in the catalog encoding.
		return "\x02" + value, true
	}
	return "", false
}

func parseDict(file []byte) (*yamlDictionary, error) {
	data := map[string]string{}
	if err := yaml.Unmarshal(file, &data); err != nil {
		return nil, err
	}
	return &yamlDictionary{entries: data}, nil
}

// newCatalogFromFS reads all dictionary files from dir and builds a
// translation catalog. Each file must be named as the BCP 47 tag of
// its language, e.g. "en.yml", "de.yml". Languages other than the
// fallback may omit keys; lookups then fall through to fallbackLang.
func newCatalogFromFS(dir fs.FS, root, fallbackLang string) (catalog.Catalog, []language.Tag, error) {
	files, err := fs.ReadDir(dir, root)
	if err != nil {
		return nil, nil, err
	}

	translations := map[string]catalog.Dictionary{}
	var langs []string
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		yamlFile, err := fs.ReadFile(dir, root+"/"+file.Name())
		if err != nil {
			return nil, nil, err
		}
		lang := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		dict, err := parseDict(yamlFile)
		if err != nil {
			return nil, nil, err
		}
		translations[lang] = dict
		langs = append(langs, lang)
	}

	fallback := language.MustParse(fallbackLang)
	cat, err := catalog.NewFromMap(translations, catalog.Fallback(fallback))
	if err != nil {
		return nil, nil, err
	}

	// The fallback language leads so the matcher defaults to it.
	tags := []language.Tag{fallback}
	for _, lang := range langs {
		if lang == fallbackLang {
			continue
		}
		tags = append(tags, language.MustParse(lang))
	}
	return cat, tags, nil
}
