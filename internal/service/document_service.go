package service

import (
	"context"
	"strings"

	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/internal/pkg/logger"
	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/events"
	"ai-health-assistant-be/pkg/rag/ingest"
)

const documentModule = "DocumentService"

type IDocumentService interface {
	Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	Enqueue(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
}

type documentService struct {
	ingester         *ingest.Ingester
	publisherService IPublisherService
	publisher        events.Publisher
	logger           logger.ILogger
}

func NewDocumentService(
	ingester *ingest.Ingester,
	publisherService IPublisherService,
	publisher events.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		ingester:         ingester,
		publisherService: publisherService,
		publisher:        publisher,
		logger:           log,
	}
}

func (s *documentService) Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	ingestFn := s.ingester.Ingest
	if req.Replace {
		ingestFn = s.ingester.Reindex
	}

	count, err := ingestFn(ctx, req.Source, req.Text)
	if err != nil {
		s.logger.Error(documentModule, "Document ingestion failed", map[string]interface{}{
			"source":  req.Source,
			"replace": req.Replace,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info(documentModule, "Document ingested", map[string]interface{}{
		"source":  req.Source,
		"replace": req.Replace,
		"chunks":  count,
	})
	publish(ctx, s.publisher, s.logger, documentModule, events.DocumentIngested(req.Source, count))

	return &dto.IngestDocumentResponse{Source: req.Source, Chunks: count, Replaced: req.Replace}, nil
}

// Enqueue hands the document to the background consumer and returns at once.
func (s *documentService) Enqueue(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperror.NewValidationError("text", "must not be empty")
	}

	err := s.publisherService.Publish(ctx, dto.PublishIngestDocumentMessage{
		Source:  req.Source,
		Text:    req.Text,
		Replace: req.Replace,
	})
	if err != nil {
		return nil, err
	}

	return &dto.IngestDocumentResponse{Source: req.Source, Queued: true, Replaced: req.Replace}, nil
}
