package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"casefile/internal/answer"
	"casefile/internal/config"
	"casefile/internal/domain"
	"casefile/internal/embedding"
	"casefile/internal/retrieval"
	"casefile/internal/session"
	"casefile/internal/stats"
	"casefile/internal/tui"
	"casefile/internal/vectorstore"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config file (defaults to ./config.yaml, then ~/.config/casefile/config.yaml)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cc, err := config.LoadCase(cfg.DataPath(cfg.Data.CaseFile))
	if err != nil {
		log.Fatalf("load case config: %v", err)
	}

	embedder, err := embedding.NewClient(embedding.Config{
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Model:     cc.ModeloEmbeddings,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("init embedder: %v", err)
	}

	index, err := openIndex(cfg, cc.DimensionEmbeddings)
	if err != nil {
		log.Fatalf("open vector index: %v", err)
	}

	meta, err := stats.LoadMeta(cfg.DataPath(cfg.Data.MetaFile))
	if err != nil {
		log.Fatalf("load index metadata: %v", err)
	}

	bundle, err := retrieval.LoadBundle(index, cfg.DataPath(cfg.Data.ChunksFile), meta.TotalVectores)
	if err != nil {
		log.Fatalf("load chunk store: %v", err)
	}
	defer bundle.Close()

	chat, err := answer.NewClient(answer.ClientConfig{
		BaseURL:     cfg.Chat.BaseURL,
		APIKeyEnv:   cfg.Chat.APIKeyEnv,
		Model:       cfg.Chat.Model,
		Temperature: cfg.Chat.Temperature,
		MaxTokens:   cfg.Chat.MaxTokens,
		Timeout:     time.Duration(cfg.Chat.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("init chat client: %v", err)
	}

	persons := stats.LoadPersons(cfg.DataPath(cfg.Data.ProcessedDir))

	m := tui.New(tui.Options{
		Retriever: retrieval.New(embedder, bundle),
		Answer:    answer.NewGenerator(chat, cc.Caso),
		Session:   session.New(cfg.Users()),
		Caso:      cc.Caso,
		Stats:     stats.FromMeta(meta, persons),
		Persons:   persons,
		ReportDir: cfg.ReportDir,
		TopK:      cfg.Retrieval.TopK,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func openIndex(cfg *config.AppConfig, dimension int) (domain.VectorIndex, error) {
	switch cfg.VectorIndex.Type {
	case "", "snapshot":
		return vectorstore.OpenSnapshot(cfg.DataPath(cfg.Data.IndexFile), dimension)
	case "qdrant":
		qc := cfg.VectorIndex.Qdrant
		if qc == nil || qc.URL == "" || qc.Collection == "" {
			return nil, fmt.Errorf("qdrant backend selected but url/collection not configured")
		}
		return vectorstore.NewQdrant(vectorstore.QdrantConfig{
			URL:        qc.URL,
			APIKey:     os.Getenv(qc.APIKeyEnv),
			Collection: qc.Collection,
			Timeout:    time.Duration(qc.TimeoutSecs) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown vector index type %q", cfg.VectorIndex.Type)
	}
}
