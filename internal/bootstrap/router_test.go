package bootstrap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpHandler "github.com/kano20041101/xuexizhushou/internal/handler/http"
	gormpersistence "github.com/kano20041101/xuexizhushou/internal/infra/persistence/gorm"
	"github.com/kano20041101/xuexizhushou/internal/infra/storage/local"
	"github.com/kano20041101/xuexizhushou/internal/service"
	"github.com/kano20041101/xuexizhushou/internal/testutil"
)

func newTestRouter(t *testing.T) (*gin.Engine, *local.AvatarStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	store := local.NewAvatarStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, store.EnsureDirs())

	userRepo := gormpersistence.NewGormUserRepository(db)
	tx := gormpersistence.NewGormTransactor(db)
	handlers := httpHandler.Handlers{
		Health: httpHandler.NewHealthHandler(db),
		Auth:   httpHandler.NewAuthHandler(service.NewAuthService(userRepo, tx, service.PlainPasswordHasher{})),
		Profile: httpHandler.NewProfileHandler(
			service.NewProfileService(userRepo, gormpersistence.NewGormProfileRepository(db), tx, store, nil), 0),
		KnowledgePoint: httpHandler.NewKnowledgePointHandler(
			service.NewKnowledgePointService(userRepo, gormpersistence.NewGormKnowledgePointRepository(db), tx)),
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &Config{AppEnv: "test", CORSAllowedOrigin: "http://localhost:3000", MaxAvatarSize: 1 << 20}
	return NewRouter(cfg, log, nil, store, handlers), store
}

func TestNewRouter_CORS(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/register", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	// 其他来源被拒绝
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNewRouter_ServesUploadedAvatars(t *testing.T) {
	router, store := newTestRouter(t)

	rel, err := store.SaveAvatar(context.Background(), "a.png", strings.NewReader("png-data"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+rel, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-data", w.Body.String())
}
