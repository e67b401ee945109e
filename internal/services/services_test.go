package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/blossom-focus/blossom-api/internal/database"
	"github.com/blossom-focus/blossom-api/internal/models"
	"github.com/blossom-focus/blossom-api/internal/repository"
	"github.com/blossom-focus/blossom-api/internal/token"
	"github.com/blossom-focus/blossom-api/internal/utils"
)

// stubMailer records outgoing mail instead of dialing SMTP.
type stubMailer struct {
	sent []stubMail
	err  error
}

type stubMail struct {
	To      string
	Subject string
	Body    string
}

func (m *stubMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, stubMail{To: to, Subject: subject, Body: body})
	return nil
}

type serviceTestEnv struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	taskRepo  repository.TaskRepository
	petRepo   repository.PetRepository
	focusRepo repository.FocusTimeRepository
	tokens    *token.Service
	mail      *stubMailer
}

func setupServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Pet{},
		&models.FocusTime{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &serviceTestEnv{
		db:        db,
		userRepo:  repository.NewUserRepository(db),
		taskRepo:  repository.NewTaskRepository(db),
		petRepo:   repository.NewPetRepository(db),
		focusRepo: repository.NewFocusTimeRepository(db),
		tokens:    token.NewService("test-secret", 20*time.Minute),
		mail:      &stubMailer{},
	}
}

// createVerifiedUser inserts a verified local user with the given XP.
func (env *serviceTestEnv) createVerifiedUser(t *testing.T, username string, xp int) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("Secret123!")
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Provider:     models.ProviderLocal,
		Verified:     true,
		XP:           &xp,
		Theme:        "dark",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

// createLegacyUser inserts a verified user with no XP value at all.
func (env *serviceTestEnv) createLegacyUser(t *testing.T, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		Provider:     models.ProviderLocal,
		Verified:     true,
		Theme:        "dark",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *serviceTestEnv) reloadUser(t *testing.T, id uint64) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, env.db.First(&user, id).Error)
	return &user
}
