package dloc

// InjectProtagonists overwrites the protagonist names in every language of the table
// that the override knows about.
func InjectProtagonists(table Table, overrides []Override) {
	for _, override := range overrides {
		key := override.Hash.String()
		for lang, texts := range table {
			if name, ok := override.Names[lang]; ok {
				texts[key] = name
			}
		}
	}
}

// EnkaMap re-keys the table by published language id and lays the curated extra
// entries over it. Extra entries win.
func EnkaMap(table Table, extra EnkaTable) EnkaTable {
	result := make(EnkaTable, len(table)+len(extra))
	for lang, texts := range table {
		target := result.ensure(lang.EnkaID())
		for hash, text := range texts {
			target[hash] = text
		}
	}
	for lang, texts := range extra {
		target := result.ensure(lang)
		for hash, text := range texts {
			target[hash] = text
		}
	}
	return result
}

func (t EnkaTable) ensure(lang string) map[string]string {
	texts, ok := t[lang]
	if !ok {
		texts = make(map[string]string)
		t[lang] = texts
	}
	return texts
}
