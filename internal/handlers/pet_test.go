package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/blossom-focus/blossom-api/internal/database"
	"github.com/blossom-focus/blossom-api/internal/dto"
	"github.com/blossom-focus/blossom-api/internal/middleware"
	"github.com/blossom-focus/blossom-api/internal/models"
	"github.com/blossom-focus/blossom-api/internal/repository"
	"github.com/blossom-focus/blossom-api/internal/services"
	"github.com/blossom-focus/blossom-api/internal/token"
)

type petTestEnv struct {
	db     *gorm.DB
	tokens *token.Service
	router *gin.Engine
}

func setupPetTestEnv(t *testing.T) petTestEnv {
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

	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	tokens := token.NewService("test-secret", 20*time.Minute)
	handler := NewPetHandler(services.NewPetService(petRepo, userRepo))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	pets := router.Group("/api/pets")
	pets.Use(middleware.RequireAuth(tokens, userRepo))
	{
		pets.GET("", handler.ListPets)
		pets.POST("", handler.CreatePet)
		pets.PUT("/:id", handler.UpdatePet)
		pets.PATCH("/:id/feed", handler.FeedPet)
		pets.DELETE("/:id", handler.DeletePet)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return petTestEnv{db: db, tokens: tokens, router: router}
}

func (env petTestEnv) createUser(t *testing.T, username string, xp int) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Provider:     models.ProviderLocal,
		Verified:     true,
		XP:           &xp,
		Theme:        "dark",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env petTestEnv) doRequest(t *testing.T, method, url string, payload any, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	bearer, err := env.tokens.Issue(user.Username)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+bearer)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestPetHandler_CreateAndFeed(t *testing.T) {
	env := setupPetTestEnv(t)
	user := env.createUser(t, "amy", 100)

	w := env.doRequest(t, http.MethodPost, "/api/pets", map[string]string{
		"name": "Mochi",
		"type": "cat",
	}, user)
	require.Equal(t, http.StatusCreated, w.Code)

	var pet dto.PetDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pet))
	require.Equal(t, "Mochi", pet.Name)
	require.Equal(t, "cat", pet.Type)
	require.Equal(t, 100, pet.Hunger)
	require.True(t, pet.IsAlive)

	w = env.doRequest(t, http.MethodPatch, "/api/pets/"+itoa(pet.ID)+"/feed", nil, user)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pet))
	require.Equal(t, 50, pet.Hunger)
	require.InDelta(t, 0.1, pet.Age, 1e-9)

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	require.Equal(t, 65, *stored.XP)
}

func TestPetHandler_FeedWithoutXP(t *testing.T) {
	env := setupPetTestEnv(t)
	user := env.createUser(t, "broke", 10)

	pet := &models.Pet{Name: "Mochi", UserID: user.ID, Hunger: 80, Alive: true, LastFed: time.Now()}
	require.NoError(t, env.db.Create(pet).Error)

	w := env.doRequest(t, http.MethodPatch, "/api/pets/"+itoa(pet.ID)+"/feed", nil, user)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "PRECONDITION_FAILED")
}

func TestPetHandler_FeedDeadPet(t *testing.T) {
	env := setupPetTestEnv(t)
	user := env.createUser(t, "amy", 100)

	pet := &models.Pet{Name: "Ghost", UserID: user.ID, Hunger: 0, Alive: true, LastFed: time.Now().Add(-9 * 24 * time.Hour)}
	require.NoError(t, env.db.Create(pet).Error)

	w := env.doRequest(t, http.MethodPatch, "/api/pets/"+itoa(pet.ID)+"/feed", nil, user)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "PRECONDITION_FAILED")

	// Listing now shows the pet as dead.
	w = env.doRequest(t, http.MethodGet, "/api/pets", nil, user)
	require.Equal(t, http.StatusOK, w.Code)

	var pets []dto.PetDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pets))
	require.Len(t, pets, 1)
	require.False(t, pets[0].IsAlive)
}

func TestPetHandler_UpdateOtherUsersPet(t *testing.T) {
	env := setupPetTestEnv(t)
	amy := env.createUser(t, "amy", 100)
	bob := env.createUser(t, "bob", 100)

	pet := &models.Pet{Name: "Mochi", UserID: amy.ID, Hunger: 50, Alive: true, LastFed: time.Now()}
	require.NoError(t, env.db.Create(pet).Error)

	w := env.doRequest(t, http.MethodPut, "/api/pets/"+itoa(pet.ID), map[string]string{"name": "Stolen"}, bob)
	require.Equal(t, http.StatusNotFound, w.Code)
}
