package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/minipost-backend/internal/domain/entities"
	"github.com/rafabene/minipost-backend/internal/domain/ports"
	"github.com/rafabene/minipost-backend/internal/domain/valueobjects"
	"github.com/rafabene/minipost-backend/internal/handlers/middleware"
	"github.com/rafabene/minipost-backend/internal/infrastructure/i18n"
	"github.com/rafabene/minipost-backend/internal/services"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)      {}
func (nopLogger) Error(string, ...any)     {}
func (nopLogger) Debug(string, ...any)     {}
func (nopLogger) Warn(string, ...any)      {}
func (nopLogger) With(...any) ports.Logger { return nopLogger{} }

// fakeImageStore implementa ports.ImageStore em memória
type fakeImageStore struct {
	uploadErr error
	deleteErr error
	uploads   []string
	deletes   []string
}

func (f *fakeImageStore) Upload(_ context.Context, _ io.Reader, _ int64, filename, _ string) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	key := "images/" + filename
	f.uploads = append(f.uploads, key)
	return key, "https://storage.local/" + key, nil
}

func (f *fakeImageStore) PresignedURL(_ context.Context, key string) string {
	return "https://storage.local/" + key
}

func (f *fakeImageStore) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, key)
	return nil
}

// fakePostRepo implementa repositories.PostRepository em memória
type fakePostRepo struct {
	posts  []*entities.Post
	nextID int64
}

func (r *fakePostRepo) Create(_ context.Context, post *entities.Post) error {
	r.nextID++
	post.ID = r.nextID
	r.posts = append(r.posts, post)
	return nil
}

func (r *fakePostRepo) FindAll(_ context.Context) ([]*entities.Post, error) {
	return r.posts, nil
}

func (r *fakePostRepo) FindByUser(_ context.Context, userID int64) ([]*entities.Post, error) {
	var found []*entities.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			found = append(found, p)
		}
	}
	return found, nil
}

func (r *fakePostRepo) FindByUserAndID(_ context.Context, userID, postID int64) (*entities.Post, error) {
	for _, p := range r.posts {
		if p.UserID == userID && p.ID == postID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) UpdateByUserAndID(_ context.Context, userID, postID int64, fields map[string]any) (*entities.Post, error) {
	for _, p := range r.posts {
		if p.UserID == userID && p.ID == postID {
			if title, ok := fields["title"].(string); ok {
				p.Title = title
			}
			if content, ok := fields["content"].(string); ok {
				p.Content = content
			}
			if key, ok := fields["image_key"].(string); ok {
				p.ImageKey = &key
			}
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) DeleteByUserAndID(_ context.Context, userID, postID int64) (*entities.Post, error) {
	for i, p := range r.posts {
		if p.UserID == userID && p.ID == postID {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) DeleteByUser(_ context.Context, userID int64) error {
	var kept []*entities.Post
	for _, p := range r.posts {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	r.posts = kept
	return nil
}

// fakeUserRepo implementa repositories.UserRepository em memória
type fakeUserRepo struct {
	users        []*entities.User
	nextID       int64
	updateCalled bool
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entities.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) UpdateByID(_ context.Context, id int64, fields map[string]any) (*entities.User, error) {
	r.updateCalled = true
	for _, u := range r.users {
		if u.ID == id {
			if username, ok := fields["username"].(string); ok {
				u.Username = username
			}
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) DeleteByID(_ context.Context, id int64) (*entities.User, error) {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return u, nil
		}
	}
	return nil, nil
}

// setupRouter monta um router de teste com as mesmas rotas e
// middlewares do cmd/api
func setupRouter(t *testing.T, postRepo *fakePostRepo, userRepo *fakeUserRepo, store *fakeImageStore) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	i18nService, err := i18n.NewService("en")
	if err != nil {
		t.Fatalf("failed to initialize i18n service: %v", err)
	}

	postService := services.NewPostService(postRepo, store, nopLogger{})
	userService := services.NewUserService(userRepo, postRepo, store, nopLogger{})

	postHandler := NewPostHandler(postService)
	userHandler := NewUserHandler(userService)

	router := gin.New()
	router.Use(middleware.NewI18nMiddleware(i18nService).DetectLanguage())

	api := router.Group("/api")
	posts := api.Group("/posts")
	posts.GET("", postHandler.ListPosts)
	posts.GET("/get-post/:userid/:postid", postHandler.GetPost)
	posts.GET("/get-posts/:userid", postHandler.ListUserPosts)
	posts.POST("/create-post/:id", postHandler.CreatePost)
	posts.PATCH("/update-post/:userid/:postid", postHandler.UpdatePost)
	posts.DELETE("/delete-post/:userid/:postid", postHandler.DeletePost)

	user := api.Group("/user")
	user.GET("", userHandler.ListUsers)
	user.GET("/get-users-posts/:id", userHandler.ListUserPosts)
	user.POST("/create-user", userHandler.CreateUser)
	user.PATCH("/update-user/:id", userHandler.UpdateUser)
	user.DELETE("/delete-user/:id", userHandler.DeleteUser)

	return router
}

type testImage struct {
	name        string
	contentType string
	data        []byte
}

// multipartBody monta um corpo multipart com campos de texto e uma
// imagem opcional
func multipartBody(t *testing.T, fields map[string]string, image *testImage) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field %s: %v", k, err)
		}
	}

	if image != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, image.name))
		header.Set("Content-Type", image.contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create image part: %v", err)
		}
		if _, err := part.Write(image.data); err != nil {
			t.Fatalf("failed to write image data: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return buf, w.FormDataContentType()
}

func mustEmail(t *testing.T, raw string) valueobjects.Email {
	t.Helper()
	email, err := valueobjects.NewEmail(raw)
	if err != nil {
		t.Fatalf("invalid test email %q: %v", raw, err)
	}
	return email
}

func strPtr(s string) *string {
	return &s
}
