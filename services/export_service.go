package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/bracket-service/brackets"
	"github.com/Dosada05/bracket-service/storage"
)

// BracketExport описывает опубликованный снимок сетки.
type BracketExport struct {
	Key         string `json:"key"`
	PublicURL   string `json:"public_url"`
	GeneratedAt string `json:"generated_at"`
}

// ExportService публикует текстовое представление сетки во внешнее
// объектное хранилище, чтобы делиться ссылкой вне сервиса.
type ExportService interface {
	PublishBracket(ctx context.Context, guildID int64, divisionID string) (*BracketExport, error)
	PublishSimulation(ctx context.Context, guildID int64, divisionID string) (*BracketExport, error)
}

type exportService struct {
	bracketService BracketService
	uploader       storage.FileUploader
}

func NewExportService(bracketService BracketService, uploader storage.FileUploader) ExportService {
	return &exportService{
		bracketService: bracketService,
		uploader:       uploader,
	}
}

func (s *exportService) PublishBracket(ctx context.Context, guildID int64, divisionID string) (*BracketExport, error) {
	rendered, err := s.bracketService.RenderBracket(ctx, guildID, divisionID, false)
	if err != nil {
		return nil, err
	}
	key := exportKey(guildID, divisionID, "bracket")
	return s.upload(ctx, key, rendered)
}

// PublishSimulation прогоняет симуляцию и публикует все её снимки одним
// документом, раунд за раундом.
func (s *exportService) PublishSimulation(ctx context.Context, guildID int64, divisionID string) (*BracketExport, error) {
	_, snapshots, err := s.bracketService.SimulateBracket(ctx, guildID, divisionID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for i, snapshot := range snapshots {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("=== " + snapshot.Label + " ===\n")
		b.WriteString(brackets.Render(snapshot.State, false))
	}

	key := exportKey(guildID, divisionID, "simulation")
	return s.upload(ctx, key, b.String())
}

func (s *exportService) upload(ctx context.Context, key, content string) (*BracketExport, error) {
	result, err := s.uploader.Upload(ctx, key, "text/plain; charset=utf-8", strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to publish export %s: %w", key, err)
	}
	return &BracketExport{
		Key:         result.Key,
		PublicURL:   result.Location,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func exportKey(guildID int64, divisionID, kind string) string {
	return fmt.Sprintf("exports/%d/%s/%s-%d.txt", guildID, divisionID, kind, time.Now().UTC().Unix())
}
