package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/unitofwork"
	"github.com/ArthurLoboLobo/projeto-estudos/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDB(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.SessionRepository())
	assert.NotNil(t, uow.StudyPlanRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Document Chunk Repository", func(t *testing.T) {
		count, err := uow.DocumentChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DocumentChunk count: %d", count)
	})

	t.Run("Check Transactional Session Setup", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:           userId,
			Email:        "test-integration-" + uuid.New().String() + "@example.com",
			PasswordHash: "not-a-real-hash",
			CreatedAt:    time.Now(),
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		sessionId := uuid.New()
		session := &entity.Session{
			Id:        sessionId,
			ProfileId: userId,
			Title:     "Integration Session",
			Status:    entity.SessionStatusPlanning,
			CreatedAt: time.Now(),
		}
		err = uow.SessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		plan := &entity.StudyPlan{
			Id:        uuid.New(),
			SessionId: sessionId,
			Version:   1,
			ContentMd: "# Study Plan\n",
			Content: &entity.PlanContent{
				Topics: []entity.PlanTopic{
					{Id: "t1", Title: "Topic 1", Description: "First topic", Status: entity.TopicStatusNeedToLearn},
				},
			},
			CreatedAt: time.Now(),
		}
		err = uow.StudyPlanRepository().Create(ctx, plan)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		latest, err := uow.StudyPlanRepository().FindLatest(ctx, sessionId)
		assert.NoError(t, err)
		if assert.NotNil(t, latest) {
			assert.Equal(t, 1, latest.Version)
		}

		t.Log("Successfully created Session with Plan in Transaction")
	})
}
