package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/repository/specification"
	"ai-advisor-be/internal/repository/unitofwork"
	"ai-advisor-be/pkg/database"

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

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.TopicRepository())
	assert.NotNil(t, uow.MessageRepository())
	assert.NotNil(t, uow.ProfileRepository())
	assert.NotNil(t, uow.CollegeRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Topic Repository", func(t *testing.T) {
		count, err := uow.TopicRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Topic count: %d", count)
	})

	t.Run("Check College Repository", func(t *testing.T) {
		count, err := uow.CollegeRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("College count: %d", count)
	})

	t.Run("Check Transactional Turn Commit", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		topicId := uuid.New()
		topic := &entity.Topic{
			Id:      topicId,
			UserId:  userId,
			Caption: "集成测试话题",
		}
		err := uow.TopicRepository().Create(ctx, topic)
		assert.NoError(t, err)

		// Commit a user turn and a topic touch in one transaction, the
		// same shape the chat service uses per turn.
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		msg := &entity.Message{
			Id:          uuid.New(),
			TopicId:     topicId,
			UserId:      userId,
			MessageType: "user",
			Content:     "我想学计算机",
		}
		err = uow.MessageRepository().Create(ctx, msg)
		assert.NoError(t, err)

		err = uow.TopicRepository().Touch(ctx, topicId)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		// Seq must come back assigned and messages must list in order.
		stored, err := uow.MessageRepository().FindAll(ctx,
			specification.ByTopicID{TopicID: topicId},
			specification.OrderBy{Field: "seq"},
		)
		assert.NoError(t, err)
		if assert.Len(t, stored, 1) {
			assert.NotZero(t, stored[0].Seq)
		}

		t.Log("Successfully committed Message with Topic touch in Transaction")
	})

	t.Run("Check Profile Requirement Update", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		profile := &entity.Profile{
			UserId:        userId,
			Province:      "北京",
			SubjectChoice: []string{"物理", "化学", "生物"},
			Score:         650,
		}
		err := uow.ProfileRepository().Create(ctx, profile)
		assert.NoError(t, err)

		err = uow.ProfileRepository().UpdateRequirement(ctx, userId, "- 想学计算机")
		assert.NoError(t, err)

		stored, err := uow.ProfileRepository().FindByUserId(ctx, userId)
		assert.NoError(t, err)
		if assert.NotNil(t, stored) {
			assert.Equal(t, "- 想学计算机", stored.Requirement)
		}
	})
}
