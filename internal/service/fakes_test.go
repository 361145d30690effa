package service

import (
	"context"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/contract"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/specification"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repositories for service tests. State lives on the fake unit of
// work so assertions can inspect it after the service call returns. Methods
// the tests never hit return zero values.

type fakeUow struct {
	sessions  map[uuid.UUID]*entity.Session
	documents map[uuid.UUID]*entity.Document
	chats     map[uuid.UUID]*entity.Chat
	users     map[string]*entity.User

	userFindErr error

	begun      bool
	committed  bool
	rolledBack bool

	deletedSessions      []uuid.UUID
	deletedMessageChats  []uuid.UUID
	deletedChatSessions  []uuid.UUID
	deletedTopicSessions []uuid.UUID
	deletedPlanSessions  []uuid.UUID
	deletedChunkSessions []uuid.UUID
	deletedDocSessions   []uuid.UUID
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		sessions:  make(map[uuid.UUID]*entity.Session),
		documents: make(map[uuid.UUID]*entity.Document),
		chats:     make(map[uuid.UUID]*entity.Chat),
		users:     make(map[string]*entity.User),
	}
}

func (u *fakeUow) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return u }

func (u *fakeUow) Begin(ctx context.Context) error { u.begun = true; return nil }
func (u *fakeUow) Commit() error                   { u.committed = true; return nil }
func (u *fakeUow) Rollback() error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository { return &fakeUserRepo{u} }
func (u *fakeUow) SessionRepository() contract.SessionRepository { return &fakeSessionRepo{u} }
func (u *fakeUow) DocumentRepository() contract.DocumentRepository { return &fakeDocumentRepo{u} }
func (u *fakeUow) DocumentChunkRepository() contract.DocumentChunkRepository {
	return &fakeChunkRepo{u}
}
func (u *fakeUow) StudyPlanRepository() contract.StudyPlanRepository { return &fakePlanRepo{u} }
func (u *fakeUow) TopicRepository() contract.TopicRepository { return &fakeTopicRepo{u} }
func (u *fakeUow) ChatRepository() contract.ChatRepository { return &fakeChatRepo{u} }
func (u *fakeUow) MessageRepository() contract.MessageRepository { return &fakeMessageRepo{u} }

// specValue extracts the target of a ByID or FilterBy specification.
func specValue(specs []specification.Specification) (byID *uuid.UUID, filter *specification.FilterBy) {
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			id := v.ID
			byID = &id
		case specification.FilterBy:
			f := v
			filter = &f
		}
	}
	return
}

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error { return nil }

type fakeUserRepo struct{ u *fakeUow }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.u.users[user.Email] = user
	return nil
}
func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	if r.u.userFindErr != nil {
		return nil, r.u.userFindErr
	}
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByEmail:
			return r.u.users[v.Email], nil
		case specification.ByID:
			for _, user := range r.u.users {
				if user.Id == v.ID {
					return user, nil
				}
			}
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeSessionRepo struct{ u *fakeUow }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.u.sessions[session.Id] = session
	return nil
}
func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.Session) error { return nil }
func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.u.sessions, id)
	r.u.deletedSessions = append(r.u.deletedSessions, id)
	return nil
}
func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	byID, _ := specValue(specs)
	if byID != nil {
		return r.u.sessions[*byID], nil
	}
	return nil, nil
}
func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	return nil, nil
}
func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeSessionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SessionStatus) error {
	return nil
}
func (r *fakeSessionRepo) UpdateDraftPlan(ctx context.Context, id uuid.UUID, plan *entity.DraftPlan) error {
	return nil
}

type fakeDocumentRepo struct{ u *fakeUow }

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	r.u.documents[document.Id] = document
	return nil
}
func (r *fakeDocumentRepo) Update(ctx context.Context, document *entity.Document) error { return nil }
func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.u.documents, id)
	return nil
}
func (r *fakeDocumentRepo) DeleteBySessionIdUnscoped(ctx context.Context, sessionId uuid.UUID) error {
	for id, d := range r.u.documents {
		if d.SessionId == sessionId {
			delete(r.u.documents, id)
		}
	}
	r.u.deletedDocSessions = append(r.u.deletedDocSessions, sessionId)
	return nil
}
func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	byID, _ := specValue(specs)
	if byID != nil {
		return r.u.documents[*byID], nil
	}
	return nil, nil
}
func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	_, filter := specValue(specs)
	var out []*entity.Document
	for _, d := range r.u.documents {
		if filter != nil && filter.Field == "session_id" {
			if sid, ok := filter.Value.(uuid.UUID); ok && d.SessionId != sid {
				continue
			}
		}
		out = append(out, d)
	}
	return out, nil
}
func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.u.documents)), nil
}
func (r *fakeDocumentRepo) UpdateExtractionStatus(ctx context.Context, id uuid.UUID, status entity.ExtractionStatus) error {
	return nil
}

type fakeChunkRepo struct{ u *fakeUow }

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	return nil
}
func (r *fakeChunkRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}
func (r *fakeChunkRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.u.deletedChunkSessions = append(r.u.deletedChunkSessions, sessionId)
	return nil
}
func (r *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	return nil, nil
}
func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeChunkRepo) SearchSimilar(ctx context.Context, embedding []float32, limit int, sessionId uuid.UUID) ([]*contract.ScoredDocumentChunk, error) {
	return nil, nil
}

type fakePlanRepo struct{ u *fakeUow }

func (r *fakePlanRepo) Create(ctx context.Context, plan *entity.StudyPlan) error { return nil }
func (r *fakePlanRepo) Update(ctx context.Context, plan *entity.StudyPlan) error { return nil }
func (r *fakePlanRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudyPlan, error) {
	return nil, nil
}
func (r *fakePlanRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudyPlan, error) {
	return nil, nil
}
func (r *fakePlanRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakePlanRepo) FindLatest(ctx context.Context, sessionId uuid.UUID) (*entity.StudyPlan, error) {
	return nil, nil
}
func (r *fakePlanRepo) MaxVersion(ctx context.Context, sessionId uuid.UUID) (int, error) {
	return 0, nil
}
func (r *fakePlanRepo) DeleteVersion(ctx context.Context, sessionId uuid.UUID, version int) error {
	return nil
}
func (r *fakePlanRepo) DeleteBySessionIdUnscoped(ctx context.Context, sessionId uuid.UUID) error {
	r.u.deletedPlanSessions = append(r.u.deletedPlanSessions, sessionId)
	return nil
}

type fakeTopicRepo struct{ u *fakeUow }

func (r *fakeTopicRepo) Create(ctx context.Context, topic *entity.Topic) error { return nil }
func (r *fakeTopicRepo) CreateBulk(ctx context.Context, topics []*entity.Topic) error { return nil }
func (r *fakeTopicRepo) Update(ctx context.Context, topic *entity.Topic) error { return nil }
func (r *fakeTopicRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (r *fakeTopicRepo) DeleteBySessionIdUnscoped(ctx context.Context, sessionId uuid.UUID) error {
	r.u.deletedTopicSessions = append(r.u.deletedTopicSessions, sessionId)
	return nil
}
func (r *fakeTopicRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Topic, error) {
	return nil, nil
}
func (r *fakeTopicRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Topic, error) {
	return nil, nil
}
func (r *fakeTopicRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeChatRepo struct{ u *fakeUow }

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.u.chats[chat.Id] = chat
	return nil
}
func (r *fakeChatRepo) CreateBulk(ctx context.Context, chats []*entity.Chat) error {
	for _, c := range chats {
		r.u.chats[c.Id] = c
	}
	return nil
}
func (r *fakeChatRepo) Update(ctx context.Context, chat *entity.Chat) error { return nil }
func (r *fakeChatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.u.chats, id)
	return nil
}
func (r *fakeChatRepo) DeleteBySessionIdUnscoped(ctx context.Context, sessionId uuid.UUID) error {
	for id, c := range r.u.chats {
		if c.SessionId == sessionId {
			delete(r.u.chats, id)
		}
	}
	r.u.deletedChatSessions = append(r.u.deletedChatSessions, sessionId)
	return nil
}
func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	return nil, nil
}
func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	_, filter := specValue(specs)
	var out []*entity.Chat
	for _, c := range r.u.chats {
		if filter != nil && filter.Field == "session_id" {
			if sid, ok := filter.Value.(uuid.UUID); ok && c.SessionId != sid {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}
func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeChatRepo) MarkStarted(ctx context.Context, id uuid.UUID) error { return nil }

type fakeMessageRepo struct{ u *fakeUow }

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error { return nil }
func (r *fakeMessageRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }
func (r *fakeMessageRepo) DeleteByChatIdUnscoped(ctx context.Context, chatId uuid.UUID) error {
	r.u.deletedMessageChats = append(r.u.deletedMessageChats, chatId)
	return nil
}
func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	return nil, nil
}
func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	return nil, nil
}
func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeMessageRepo) FindRecent(ctx context.Context, chatId uuid.UUID, limit int) ([]*entity.Message, error) {
	return nil, nil
}
func (r *fakeMessageRepo) FindLastPair(ctx context.Context, chatId uuid.UUID) ([]*entity.Message, error) {
	return nil, nil
}
