package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/recipebox-backend/internal/handlers"
	"github.com/recipebox/recipebox-backend/internal/middleware"
	"github.com/recipebox/recipebox-backend/internal/repos"
	"github.com/recipebox/recipebox-backend/internal/repos/testutil"
	"github.com/recipebox/recipebox-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	userTokenRepo := repos.NewUserTokenRepo(db, log)
	tagRepo := repos.NewTagRepo(db, log)
	ingredientRepo := repos.NewIngredientRepo(db, log)
	recipeRepo := repos.NewRecipeRepo(db, log)

	authService := services.NewAuthService(db, log, userRepo, userTokenRepo, "router-test-secret", time.Hour, 24*time.Hour)
	recipeService := services.NewRecipeService(db, log, recipeRepo, tagRepo, ingredientRepo, nil)
	tagService := services.NewTagService(db, log, tagRepo)
	ingredientService := services.NewIngredientService(db, log, ingredientRepo)
	publicService := services.NewPublicRecipeService(db, log, recipeRepo, nil, time.Minute)

	return NewRouter(RouterConfig{
		ServiceName:       "recipebox-test",
		AuthHandler:       handlers.NewAuthHandler(authService),
		AuthMiddleware:    middleware.NewAuthMiddleware(log, authService),
		RecipeHandler:     handlers.NewRecipeHandler(log, recipeService, publicService),
		TagHandler:        handlers.NewTagHandler(tagService),
		IngredientHandler: handlers.NewIngredientHandler(ingredientService),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequestWithContext(context.Background(), method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouterAuthBoundary(t *testing.T) {
	router := newTestRouter(t)

	if rec := doJSON(t, router, http.MethodGet, "/healthcheck", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthcheck: expected 200, got %d", rec.Code)
	}

	// Every scoped route rejects before touching data.
	for _, path := range []string{"/api/recipes", "/api/tags", "/api/ingredients"} {
		if rec := doJSON(t, router, http.MethodGet, path, "", nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s without token: expected 401, got %d", path, rec.Code)
		}
	}
	if rec := doJSON(t, router, http.MethodGet, "/api/recipes", "nonsense-token", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("GET /api/recipes with bad token: expected 401, got %d", rec.Code)
	}

	// The public listing is reachable without credentials.
	if rec := doJSON(t, router, http.MethodGet, "/api/p/recipes", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("GET /api/p/recipes: expected 200, got %d", rec.Code)
	}
}

func TestRouterRecipeFlow(t *testing.T) {
	router := newTestRouter(t)

	if rec := doJSON(t, router, http.MethodPost, "/api/register", "", gin.H{
		"email":    "flow@example.com",
		"password": "supersafe",
		"name":     "Flow",
	}); rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	loginRec := doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"email":    "flow@example.com",
		"password": "supersafe",
	})
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", loginRec.Code, loginRec.Body.String())
	}
	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(loginRec.Body.Bytes(), &pair); err != nil || pair.AccessToken == "" {
		t.Fatalf("login: bad token pair: err=%v body=%s", err, loginRec.Body.String())
	}

	createRec := doJSON(t, router, http.MethodPost, "/api/recipes", pair.AccessToken, gin.H{
		"title":        "ramen",
		"time_minutes": 25,
		"price":        "9.50",
		"description":  "late night",
		"tags":         []gin.H{{"name": "dinner"}},
		"ingredients":  []gin.H{{"name": "noodles"}, {"name": "egg"}},
	})
	if createRec.Code != http.StatusCreated {
		t.Fatalf("create recipe: expected 201, got %d: %s", createRec.Code, createRec.Body.String())
	}
	var detail struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Tags        []struct {
			Name string `json:"name"`
		} `json:"tags"`
	}
	if err := json.Unmarshal(createRec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("create recipe: decode: %v", err)
	}
	if detail.Title != "ramen" || len(detail.Tags) != 1 || detail.Tags[0].Name != "dinner" {
		t.Fatalf("create recipe: unexpected body: %s", createRec.Body.String())
	}

	listRec := doJSON(t, router, http.MethodGet, "/api/recipes", pair.AccessToken, nil)
	if listRec.Code != http.StatusOK {
		t.Fatalf("list recipes: expected 200, got %d", listRec.Code)
	}
	var summaries []map[string]any
	if err := json.Unmarshal(listRec.Body.Bytes(), &summaries); err != nil || len(summaries) != 1 {
		t.Fatalf("list recipes: err=%v body=%s", err, listRec.Body.String())
	}
	// The summary projection omits the description.
	if _, present := summaries[0]["description"]; present {
		t.Fatalf("summary should not carry description: %v", summaries[0])
	}

	getRec := doJSON(t, router, http.MethodGet, "/api/recipes/"+detail.ID, pair.AccessToken, nil)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get recipe: expected 200, got %d", getRec.Code)
	}

	// Validation failures surface as field errors.
	badRec := doJSON(t, router, http.MethodPost, "/api/recipes", pair.AccessToken, gin.H{
		"title": "broken",
		"price": "-1",
	})
	if badRec.Code != http.StatusBadRequest {
		t.Fatalf("invalid recipe: expected 400, got %d", badRec.Code)
	}
	var envelope struct {
		Error struct {
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.Unmarshal(badRec.Body.Bytes(), &envelope); err != nil || envelope.Error.Fields["price"] == "" {
		t.Fatalf("invalid recipe: expected price field error, body=%s", badRec.Body.String())
	}

	// Malformed and unknown ids are indistinguishable, on every entity.
	if rec := doJSON(t, router, http.MethodGet, "/api/recipes/not-a-uuid", pair.AccessToken, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("malformed recipe id: expected 404, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPatch, "/api/tags/not-a-uuid", pair.AccessToken, gin.H{"name": "x"}); rec.Code != http.StatusNotFound {
		t.Fatalf("malformed tag id: expected 404, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodDelete, "/api/ingredients/not-a-uuid", pair.AccessToken, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("malformed ingredient id: expected 404, got %d", rec.Code)
	}

	tagsRec := doJSON(t, router, http.MethodGet, "/api/tags?assigned_only=1", pair.AccessToken, nil)
	if tagsRec.Code != http.StatusOK {
		t.Fatalf("list tags: expected 200, got %d", tagsRec.Code)
	}
	var tags []map[string]any
	if err := json.Unmarshal(tagsRec.Body.Bytes(), &tags); err != nil || len(tags) != 1 {
		t.Fatalf("list tags: err=%v body=%s", err, tagsRec.Body.String())
	}

	publicRec := doJSON(t, router, http.MethodGet, "/api/p/recipes", "", nil)
	if publicRec.Code != http.StatusOK {
		t.Fatalf("public list: expected 200, got %d", publicRec.Code)
	}
	var publicList []map[string]any
	if err := json.Unmarshal(publicRec.Body.Bytes(), &publicList); err != nil || len(publicList) != 1 {
		t.Fatalf("public list: err=%v body=%s", err, publicRec.Body.String())
	}

	if rec := doJSON(t, router, http.MethodPost, "/api/logout", pair.AccessToken, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rec.Code)
	}
}
