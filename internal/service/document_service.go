package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/pkg/logger"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/specification"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/unitofwork"
	pktStorage "github.com/ArthurLoboLobo/projeto-estudos/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

var (
	ErrDocumentNotFound = fiber.NewError(fiber.StatusNotFound, "document not found")
	ErrNotPdf           = fiber.NewError(fiber.StatusBadRequest, "only PDF files are accepted")
	ErrFileTooLarge     = fiber.NewError(fiber.StatusBadRequest, "file exceeds the 50MB limit")
)

type IDocumentService interface {
	Upload(ctx context.Context, userId, sessionId uuid.UUID, fileName string, content []byte) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context, userId, sessionId uuid.UUID) (*dto.ListDocumentsResponse, error)
	Delete(ctx context.Context, userId, documentId uuid.UUID) error
	SignedUrl(ctx context.Context, userId, documentId uuid.UUID) (*dto.SignedUrlResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	storageClient    *pktStorage.Client
	publisherService IPublisherService
	log              logger.ILogger
	maxFileSizeBytes int64
	signedUrlTTL     time.Duration
	signedUrlCache   *gocache.Cache
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	storageClient *pktStorage.Client,
	publisherService IPublisherService,
	log logger.ILogger,
	maxFileSizeBytes int64,
	signedUrlTTL time.Duration,
) IDocumentService {
	if maxFileSizeBytes <= 0 {
		maxFileSizeBytes = 50 * 1024 * 1024
	}
	if signedUrlTTL <= 0 {
		signedUrlTTL = time.Hour
	}
	// Cache entries expire a few minutes before the storage-side URL does,
	// so a cached URL is always still usable when handed out.
	cacheTTL := signedUrlTTL - 5*time.Minute
	if cacheTTL <= 0 {
		cacheTTL = signedUrlTTL / 2
	}
	return &documentService{
		uowFactory:       uowFactory,
		storageClient:    storageClient,
		publisherService: publisherService,
		log:              log,
		maxFileSizeBytes: maxFileSizeBytes,
		signedUrlTTL:     signedUrlTTL,
		signedUrlCache:   gocache.New(cacheTTL, 10*time.Minute),
	}
}

func (s *documentService) Upload(ctx context.Context, userId, sessionId uuid.UUID, fileName string, content []byte) (*dto.UploadDocumentResponse, error) {
	if !strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return nil, ErrNotPdf
	}
	if int64(len(content)) > s.maxFileSizeBytes {
		return nil, ErrFileTooLarge
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	documentId := uuid.New()
	storagePath := fmt.Sprintf("%s/%s/%s.pdf", userId, session.Id, documentId)

	if _, err := s.storageClient.Upload(ctx, storagePath, content, "application/pdf"); err != nil {
		s.log.Error("document", "storage upload failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"file_name":  fileName,
			"error":      err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusBadGateway, "failed to store file")
	}

	document := &entity.Document{
		Id:               documentId,
		SessionId:        session.Id,
		FileName:         fileName,
		FilePath:         storagePath,
		ExtractionStatus: entity.ExtractionStatusPending,
		CreatedAt:        time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}

	job := dto.ExtractDocumentJob{
		DocumentId: document.Id,
		SessionId:  session.Id,
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, err
	}

	s.log.Info("document", "document queued for extraction", map[string]interface{}{
		"document_id": document.Id.String(),
		"session_id":  session.Id.String(),
		"size_bytes":  len(content),
	})

	return &dto.UploadDocumentResponse{
		Id:               document.Id,
		FileName:         document.FileName,
		ExtractionStatus: string(document.ExtractionStatus),
	}, nil
}

func (s *documentService) List(ctx context.Context, userId, sessionId uuid.UUID) (*dto.ListDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListDocumentsResponse{
		Documents: make([]dto.DocumentResponse, len(documents)),
	}
	for i, d := range documents {
		res.Documents[i] = dto.DocumentResponse{
			Id:               d.Id,
			SessionId:        d.SessionId,
			FileName:         d.FileName,
			ExtractionStatus: string(d.ExtractionStatus),
			PageCount:        d.PageCount,
			ContentLength:    d.ContentLength,
			CreatedAt:        d.CreatedAt,
			UpdatedAt:        d.UpdatedAt,
		}
		switch d.ExtractionStatus {
		case entity.ExtractionStatusCompleted:
			res.CompletedCount++
		case entity.ExtractionStatusFailed:
			res.FailedCount++
		default:
			res.PendingCount++
		}
	}
	return res, nil
}

func (s *documentService) Delete(ctx context.Context, userId, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := s.findOwnedDocument(ctx, uow, userId, documentId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, document.Id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, document.Id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// Storage cleanup is best effort, the row is already gone.
	if err := s.storageClient.Delete(ctx, document.FilePath); err != nil {
		s.log.Warn("document", "storage delete failed", map[string]interface{}{
			"document_id": document.Id.String(),
			"file_path":   document.FilePath,
			"error":       err.Error(),
		})
	}
	s.signedUrlCache.Delete(document.Id.String())

	return nil
}

func (s *documentService) SignedUrl(ctx context.Context, userId, documentId uuid.UUID) (*dto.SignedUrlResponse, error) {
	// Ownership is checked before the cache: a cached URL must never be
	// handed to a caller who does not own the document.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := s.findOwnedDocument(ctx, uow, userId, documentId)
	if err != nil {
		return nil, err
	}

	if cached, found := s.signedUrlCache.Get(documentId.String()); found {
		return cached.(*dto.SignedUrlResponse), nil
	}

	url, err := s.storageClient.SignedURL(ctx, document.FilePath, s.signedUrlTTL)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadGateway, "failed to sign download url")
	}

	res := &dto.SignedUrlResponse{
		Url:       url,
		ExpiresAt: time.Now().Add(s.signedUrlTTL),
	}
	s.signedUrlCache.SetDefault(documentId.String(), res)
	return res, nil
}

func (s *documentService) findOwnedDocument(ctx context.Context, uow unitofwork.UnitOfWork, userId, documentId uuid.UUID) (*entity.Document, error) {
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}
	if _, err := findOwnedSession(ctx, uow, userId, document.SessionId); err != nil {
		return nil, ErrDocumentNotFound
	}
	return document, nil
}
