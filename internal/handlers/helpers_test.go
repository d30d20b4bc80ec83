package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/togongs/goods-shop/internal/models"
	"github.com/togongs/goods-shop/internal/service"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	A      *AuthHandler
	G      *GoodsHandler
	C      *CartHandler
	Tokens *service.TokenService
}

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Goods{}, &models.CartItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := InitTestDB(t)
	tokens := &service.TokenService{Secret: []byte("test-secret")}

	// Producer left nil: event publishing is a no-op in tests.
	return &testEnv{
		T:      t,
		E:      echo.New(),
		DB:     db,
		A:      &AuthHandler{DB: db, Tokens: tokens},
		G:      &GoodsHandler{DB: db},
		C:      &CartHandler{DB: db},
		Tokens: tokens,
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) createUser(email, nickname, password string) *models.User {
	user := &models.User{Email: email, Nickname: nickname, Password: password}
	require.NoError(env.T, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) createGoods(id uint, name, category string) *models.Goods {
	goods := &models.Goods{ID: id, Name: name, Category: category, Price: 1000}
	require.NoError(env.T, env.DB.Create(goods).Error)
	return goods
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["errorMessage"]
}
