//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf-api/internal/handler"
	"github.com/snnyvrz/bookshelf-api/internal/middleware"
	"github.com/snnyvrz/bookshelf-api/internal/model"
	"github.com/snnyvrz/bookshelf-api/internal/repository"
	"github.com/snnyvrz/bookshelf-api/internal/response"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	testDB     *gorm.DB
	testRouter *gin.Engine
)

func TestMain(m *testing.M) {
	DBHost := os.Getenv("POSTGRES_HOST")
	DBPort := os.Getenv("POSTGRES_PORT")
	DBUser := os.Getenv("POSTGRES_USER")
	DBPass := os.Getenv("POSTGRES_PASSWORD")
	DBName := os.Getenv("POSTGRES_DB")
	DBSSLMode := "disable"
	TZ := os.Getenv("TZ")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		DBHost,
		DBUser,
		DBPass,
		DBName,
		DBPort,
		DBSSLMode,
		TZ,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	testDB = db

	if err := db.AutoMigrate(&model.Book{}); err != nil {
		panic("failed to migrate: " + err.Error())
	}
	if err := repository.InstallResetProcedure(context.Background(), db); err != nil {
		panic("failed to install reset procedure: " + err.Error())
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.NoRoute(response.BadRoute)

	bookHandler := handler.NewBookHandler(
		repository.NewGormBookRepository(db),
		repository.NewGormBookResetter(db),
	)
	bookHandler.RegisterRoutes(r.Group("/api/v1"))

	testRouter = r

	code := m.Run()
	os.Exit(code)
}

func resetDB(t *testing.T) {
	t.Helper()
	if err := testDB.Exec("TRUNCATE TABLE books RESTART IDENTITY;").Error; err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Take      int               `json:"take"`
		Page      int               `json:"page"`
		Total     int64             `json:"total"`
		TotalPage int               `json:"totalPage"`
		Filter    map[string]string `json:"filter"`
	} `json:"meta"`
}

func call(t *testing.T, client *http.Client, method, url string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func createTestBook(t *testing.T, client *http.Client, baseURL, title, author string) uint {
	t.Helper()

	code, env := call(t, client, http.MethodPost, baseURL+"/api/v1/books", map[string]any{
		"title":  title,
		"author": author,
	})
	if code != http.StatusCreated {
		t.Fatalf("expected 201 when creating book, got %d", code)
	}

	var book struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &book); err != nil || book.ID == 0 {
		t.Fatalf("expected book id in response, got %s", env.Data)
	}
	return book.ID
}

func TestBookLifecycle_BackendIntegration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := srv.Client()

	id := createTestBook(t, client, srv.URL, "Dune", "Frank Herbert")

	code, env := call(t, client, http.MethodGet, fmt.Sprintf("%s/api/v1/books?id=%d", srv.URL, id), nil)
	if code != http.StatusOK || !env.Status {
		t.Fatalf("expected detail 200, got %d %+v", code, env)
	}

	code, _ = call(t, client, http.MethodPut, fmt.Sprintf("%s/api/v1/books?id=%d", srv.URL, id), map[string]any{
		"title":  "Dune Messiah",
		"author": "Frank Herbert",
	})
	if code != http.StatusOK {
		t.Fatalf("expected update 200, got %d", code)
	}

	code, _ = call(t, client, http.MethodDelete, fmt.Sprintf("%s/api/v1/books?id=%d", srv.URL, id), nil)
	if code != http.StatusOK {
		t.Fatalf("expected delete 200, got %d", code)
	}

	code, _ = call(t, client, http.MethodGet, fmt.Sprintf("%s/api/v1/books?id=%d", srv.URL, id), nil)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
}

func TestListFilterIsCaseInsensitive_BackendIntegration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := srv.Client()

	for i := 1; i <= 12; i++ {
		createTestBook(t, client, srv.URL, fmt.Sprintf("Dune %d", i), "Frank Herbert")
	}
	createTestBook(t, client, srv.URL, "Emma", "Jane Austen")

	code, env := call(t, client, http.MethodGet, srv.URL+"/api/v1/books?title=dUNE&take=5&page=2", nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if env.Meta == nil || env.Meta.Total != 12 || env.Meta.TotalPage != 3 {
		t.Fatalf("unexpected meta: %+v", env.Meta)
	}

	var books []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(env.Data, &books); err != nil {
		t.Fatalf("failed to decode books: %v", err)
	}
	if len(books) != 5 || books[0].Title != "Dune 7" || books[4].Title != "Dune 3" {
		t.Fatalf("unexpected page: %+v", books)
	}
}

func TestDeleteAllCallsProcedure_BackendIntegration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := srv.Client()

	createTestBook(t, client, srv.URL, "Dune", "Frank Herbert")
	createTestBook(t, client, srv.URL, "Emma", "Jane Austen")

	code, env := call(t, client, http.MethodDelete, srv.URL+"/api/v1/books?delete=all", nil)
	if code != http.StatusOK || string(env.Data) != "null" {
		t.Fatalf("expected 200 with null data, got %d %s", code, env.Data)
	}

	var count int64
	if err := testDB.Model(&model.Book{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table after reset, got %d", count)
	}

	if id := createTestBook(t, client, srv.URL, "Fresh", "Start"); id != 1 {
		t.Errorf("expected identity restart at 1, got %d", id)
	}
}
