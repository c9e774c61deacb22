package config

import (
	"encoding/json"
	"fmt"
	"os"

	"casefile/internal/domain"
)

// CaseConfig mirrors config_caso.json: the case metadata plus the identity
// of the embedding model the index was built with.
type CaseConfig struct {
	Caso                domain.CaseInfo `json:"caso"`
	ModeloEmbeddings    string          `json:"modelo_embeddings"`
	DimensionEmbeddings int             `json:"dimension_embeddings"`
}

// LoadCase reads and validates the case configuration. A missing or invalid
// file is fatal: without it no query can be answered.
func LoadCase(path string) (*CaseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case config: %w", err)
	}
	var cc CaseConfig
	if err := json.Unmarshal(data, &cc); err != nil {
		return nil, fmt.Errorf("parse case config %s: %w", path, err)
	}
	if cc.Caso.Expediente == "" {
		return nil, fmt.Errorf("case config %s: missing expediente", path)
	}
	if cc.DimensionEmbeddings <= 0 {
		return nil, fmt.Errorf("case config %s: missing dimension_embeddings", path)
	}
	return &cc, nil
}
