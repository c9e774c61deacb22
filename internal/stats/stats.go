// Package stats loads the descriptive metadata produced by the offline
// ingestion pipeline: index totals per document and the person registry
// extracted from the processed documents.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// DocumentInfo describes one ingested document.
type DocumentInfo struct {
	ID      string
	Archivo string
	Tipo    string
	Chunks  int
}

// Meta mirrors meta_embeddings.json.
type Meta struct {
	TotalVectores int `json:"total_vectores"`
	Documentos    map[string]struct {
		Archivo string `json:"archivo"`
		Tipo    string `json:"tipo"`
		Chunks  int    `json:"chunks"`
	} `json:"documentos_incluidos"`
}

// LoadMeta reads meta_embeddings.json. A missing file yields an empty Meta:
// the metadata is descriptive, the system can serve queries without it.
func LoadMeta(path string) (*Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Meta{}, nil
		}
		return nil, fmt.Errorf("read meta: %w", err)
	}
	var m Meta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse meta %s: %w", path, err)
	}
	return &m, nil
}

// Stats aggregates the system counters shown in the sidebar.
type Stats struct {
	TotalDocumentos int
	TotalVectores   int
	TotalPersonas   int
	TiposDocumento  map[string]int
	Documentos      []DocumentInfo
}

// FromMeta derives the counters from the loaded metadata and person registry.
func FromMeta(m *Meta, persons []Person) *Stats {
	s := &Stats{
		TotalVectores:  m.TotalVectores,
		TotalPersonas:  len(persons),
		TiposDocumento: make(map[string]int),
	}
	for id, d := range m.Documentos {
		tipo := d.Tipo
		if tipo == "" {
			tipo = "otro"
		}
		s.TiposDocumento[tipo]++
		s.Documentos = append(s.Documentos, DocumentInfo{
			ID:      id,
			Archivo: d.Archivo,
			Tipo:    tipo,
			Chunks:  d.Chunks,
		})
	}
	s.TotalDocumentos = len(s.Documentos)
	sort.Slice(s.Documentos, func(i, j int) bool { return s.Documentos[i].ID < s.Documentos[j].ID })
	return s
}

// DocumentTypes returns the known document types in sorted order, for the
// search filter.
func (s *Stats) DocumentTypes() []string {
	types := make([]string, 0, len(s.TiposDocumento))
	for t := range s.TiposDocumento {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
