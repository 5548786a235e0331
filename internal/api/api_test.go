package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipe-chatbot/backend/internal/history"
	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/search"
	"github.com/pageza/recipe-chatbot/backend/internal/service"
	"github.com/pageza/recipe-chatbot/backend/internal/store"
	"github.com/pageza/recipe-chatbot/backend/internal/store/memory"
	"github.com/pageza/recipe-chatbot/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type testEnv struct {
	router *gin.Engine
	store  *memory.Store
}

type envOption func(*Deps, *memory.Store)

func withRecipeStore(recipes store.RecipeStore) envOption {
	return func(d *Deps, _ *memory.Store) {
		d.Recipes = service.NewRecipeService(recipes, nil, 5, zap.NewNop())
		d.Chat = service.NewChatService(d.Recipes, history.NewMemoryStore(), nil, zap.NewNop())
	}
}

func withRouter(router *search.Router) envOption {
	return func(d *Deps, s *memory.Store) {
		d.Recipes = service.NewRecipeService(s, router, 5, zap.NewNop())
	}
}

func withStorePing(err error) envOption {
	return func(d *Deps, _ *memory.Store) {
		d.Store = pingFunc(func(context.Context) error { return err })
	}
}

func withExposedDetails() envOption {
	return func(d *Deps, _ *memory.Store) { d.ExposeDetails = true }
}

// newTestEnv wires the handlers to in-memory backends seeded with the two
// canonical recipes.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	s := memory.New()
	_, err := s.InsertRecipes(context.Background(), []model.Recipe{testhelpers.ChickenSoup(), testhelpers.VegCurry()})
	require.NoError(t, err)

	recipes := service.NewRecipeService(s, nil, 5, zap.NewNop())
	deps := Deps{
		Recipes: recipes,
		Auth:    service.NewAuthService(s, "", zap.NewNop()),
		Chat:    service.NewChatService(recipes, history.NewMemoryStore(), nil, zap.NewNop()),
		Store:   s,
	}
	for _, opt := range opts {
		opt(&deps, s)
	}

	router := gin.New()
	SetupAPI(router, deps)
	return &testEnv{router: router, store: s}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

var errBoom = errors.New("boom")
