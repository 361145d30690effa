package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/pkg/logger"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/specification"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/unitofwork"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/embedding"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/events"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/extractor"
	pktNats "github.com/ArthurLoboLobo/projeto-estudos/pkg/nats"
	pktStorage "github.com/ArthurLoboLobo/projeto-estudos/pkg/storage"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// DocumentNotifier pushes extraction progress to connected clients.
type DocumentNotifier interface {
	NotifyDocumentStatus(sessionId uuid.UUID, event *dto.DocumentStatusEvent)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	storageClient     *pktStorage.Client
	pdfExtractor      *extractor.PdfExtractor
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	notifier          DocumentNotifier
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	storageClient *pktStorage.Client,
	pdfExtractor *extractor.PdfExtractor,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	notifier DocumentNotifier,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		storageClient:     storageClient,
		pdfExtractor:      pdfExtractor,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		notifier:          notifier,
		log:               log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var job dto.ExtractDocumentJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		cs.log.Error("ingestion", "failed to unmarshal job", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.log.Info("ingestion", "processing document", map[string]interface{}{
		"document_id": job.DocumentId.String(),
		"session_id":  job.SessionId.String(),
	})

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: job.DocumentId})
	if err != nil {
		cs.log.Error("ingestion", "failed to load document", map[string]interface{}{
			"document_id": job.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}
	if document == nil {
		cs.log.Warn("ingestion", "document vanished before extraction", map[string]interface{}{
			"document_id": job.DocumentId.String(),
		})
		msg.Ack() // Document deleted? Ack.
		return
	}

	if err := uow.DocumentRepository().UpdateExtractionStatus(ctx, document.Id, entity.ExtractionStatusProcessing); err != nil {
		msg.Nack()
		return
	}
	cs.publishStatus(ctx, document, entity.ExtractionStatusProcessing, "")

	if err := cs.extract(ctx, uow, document); err != nil {
		cs.log.Error("ingestion", "extraction failed", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
		if statusErr := uow.DocumentRepository().UpdateExtractionStatus(ctx, document.Id, entity.ExtractionStatusFailed); statusErr != nil {
			cs.log.Error("ingestion", "failed to mark document failed", map[string]interface{}{
				"document_id": document.Id.String(),
				"error":       statusErr.Error(),
			})
		}
		cs.publishStatus(ctx, document, entity.ExtractionStatusFailed, err.Error())
		// A failed extraction is terminal, no retry
		msg.Ack()
		return
	}

	cs.publishStatus(ctx, document, entity.ExtractionStatusCompleted, "")
	cs.log.Info("ingestion", "document processed", map[string]interface{}{
		"document_id": document.Id.String(),
		"pages":       document.PageCount,
	})
	msg.Ack()
}

func (cs *consumerService) extract(ctx context.Context, uow unitofwork.UnitOfWork, document *entity.Document) error {
	// 1. Fetch the PDF
	pdfData, err := cs.storageClient.Download(ctx, document.FilePath)
	if err != nil {
		return fmt.Errorf("download pdf: %w", err)
	}

	// 2. Render pages and transcribe them
	processed, err := cs.pdfExtractor.Process(ctx, pdfData)
	if err != nil {
		return fmt.Errorf("process pdf: %w", err)
	}

	// 3. Split and embed for retrieval
	// ChunkSize 1500 chars with 200 overlap keeps each chunk well inside
	// embedding context limits.
	chunks := utils.SplitText(processed.ExtractedText, 1500, 200)

	newChunks := make([]*entity.DocumentChunk, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return fmt.Errorf("embed chunk %d: %w", i, err)
		}
		newChunks = append(newChunks, &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: document.Id,
			SessionId:  document.SessionId,
			ChunkIndex: i,
			ChunkText:  chunk,
			Embedding:  res.Embedding.Values,
			CreatedAt:  time.Now(),
		})
	}

	// 4. Persist everything in one transaction
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	pageCount := processed.PageCount
	document.ExtractedText = processed.ExtractedText
	document.ContentLength = len(processed.ExtractedText)
	document.PageCount = &pageCount
	document.ExtractionStatus = entity.ExtractionStatusCompleted

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, document.Id); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().CreateBulk(ctx, newChunks); err != nil {
		return err
	}
	return uow.Commit()
}

func (cs *consumerService) publishStatus(ctx context.Context, document *entity.Document, status entity.ExtractionStatus, errMsg string) {
	now := time.Now()

	if cs.notifier != nil {
		cs.notifier.NotifyDocumentStatus(document.SessionId, &dto.DocumentStatusEvent{
			DocumentId:       document.Id,
			SessionId:        document.SessionId,
			FileName:         document.FileName,
			ExtractionStatus: string(status),
			PageCount:        document.PageCount,
			Error:            errMsg,
			OccurredAt:       now,
		})
	}

	if cs.eventPublisher != nil {
		evt := events.DocumentStatusChanged{
			DocumentId: document.Id,
			SessionId:  document.SessionId,
			FileName:   document.FileName,
			Status:     string(status),
			Error:      errMsg,
			OccurredAt: now,
		}
		// Notification fan-out is auxiliary, never fail extraction on it
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.log.Warn("ingestion", "failed to publish status event", map[string]interface{}{
				"document_id": document.Id.String(),
				"error":       err.Error(),
			})
		}
	}
}
