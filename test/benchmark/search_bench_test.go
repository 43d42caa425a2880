package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/hyperjump/photofind/internal/config"
	"github.com/hyperjump/photofind/internal/models"
	"github.com/hyperjump/photofind/internal/parser"
	"github.com/hyperjump/photofind/internal/search"
)

var keywordPool = []string{
	"sunset", "beach", "mountain", "snow", "family", "portrait",
	"dog", "cat", "city", "forest", "lake", "wedding",
}

func syntheticPhotos(n int) []*models.PhotoRecord {
	photos := make([]*models.PhotoRecord, 0, n)
	for i := 0; i < n; i++ {
		photos = append(photos, &models.PhotoRecord{
			ID:       fmt.Sprintf("photo-%05d", i),
			Filename: fmt.Sprintf("img_%05d.jpg", i),
			Metadata: models.PhotoMetadata{
				Keywords:   []string{keywordPool[i%len(keywordPool)], keywordPool[(i+3)%len(keywordPool)]},
				Location:   []string{"Hawaii", "Central Park", "Swiss Alps"}[i%3],
				Confidence: 0.5 + float64(i%5)*0.1,
			},
		})
	}
	return photos
}

func benchEngine(b *testing.B, n int) *search.Engine {
	b.Helper()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	engine := search.NewEngine(nil, &cfg.Search, nil)
	if err := engine.IndexPhotos(context.Background(), syntheticPhotos(n)); err != nil {
		b.Fatal(err)
	}
	return engine
}

func BenchmarkSearchExact(b *testing.B) {
	engine := benchEngine(b, 5000)
	query := &models.ParsedQuery{Semantic: &models.SemanticFilter{Keywords: []string{"sunset"}}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Search(context.Background(), query, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearchFuzzy(b *testing.B) {
	engine := benchEngine(b, 5000)
	query := &models.ParsedQuery{Semantic: &models.SemanticFilter{Keywords: []string{"sunest"}}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Search(context.Background(), query, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIndexBuild(b *testing.B) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	photos := syntheticPhotos(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine := search.NewEngine(nil, &cfg.Search, nil)
		if err := engine.IndexPhotos(context.Background(), photos); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseQuery(b *testing.B) {
	p := parser.NewParser()
	for i := 0; i < b.N; i++ {
		intent := p.ExtractIntent("show me sunset photos from Hawaii with Sarah in summer 2023")
		_ = p.ExtractParameters("show me sunset photos from Hawaii with Sarah in summer 2023", intent.Type)
	}
}
