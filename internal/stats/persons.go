package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// Person is one aggregated entry of the case's person registry.
type Person struct {
	Nombre     string
	DNI        string
	Frecuencia int
	Documentos []string
}

// processedDoc is the slice of a processed-document JSON we care about.
type processedDoc struct {
	ArchivoOriginal string `json:"archivo_original"`
	Personas        map[string]struct {
		DNI        string `json:"dni"`
		Frecuencia int    `json:"frecuencia"`
	} `json:"personas"`
}

// LoadPersons aggregates person mentions across every processed document in
// dir, sorted by descending total frequency. Unreadable or malformed files
// are skipped; a missing directory yields an empty registry.
func LoadPersons(dir string) []Person {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(matches) == 0 {
		return nil
	}
	sort.Strings(matches)

	byName := make(map[string]*Person)
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var doc processedDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		for nombre, info := range doc.Personas {
			p, ok := byName[nombre]
			if !ok {
				p = &Person{Nombre: nombre}
				byName[nombre] = p
			}
			p.Frecuencia += info.Frecuencia
			if p.DNI == "" && info.DNI != "" {
				p.DNI = info.DNI
			}
			if doc.ArchivoOriginal != "" && !contains(p.Documentos, doc.ArchivoOriginal) {
				p.Documentos = append(p.Documentos, doc.ArchivoOriginal)
			}
		}
	}

	persons := make([]Person, 0, len(byName))
	for _, p := range byName {
		persons = append(persons, *p)
	}
	sort.Slice(persons, func(i, j int) bool {
		if persons[i].Frecuencia != persons[j].Frecuencia {
			return persons[i].Frecuencia > persons[j].Frecuencia
		}
		return persons[i].Nombre < persons[j].Nombre
	})
	return persons
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
