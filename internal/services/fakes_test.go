package services

import (
	"context"
	"io"

	"github.com/rafabene/minipost-backend/internal/domain/entities"
	"github.com/rafabene/minipost-backend/internal/domain/ports"
	"github.com/rafabene/minipost-backend/internal/domain/valueobjects"
)

// callLog registra a ordem das chamadas entre storage e banco para os
// testes de ordenação (imagem antes da linha)
type callLog struct {
	calls []string
}

func (l *callLog) add(call string) {
	l.calls = append(l.calls, call)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)      {}
func (nopLogger) Error(string, ...any)     {}
func (nopLogger) Debug(string, ...any)     {}
func (nopLogger) Warn(string, ...any)      {}
func (nopLogger) With(...any) ports.Logger { return nopLogger{} }

// fakeImageStore implementa ports.ImageStore em memória
type fakeImageStore struct {
	log          *callLog
	uploadErr    error
	deleteErr    map[string]error
	presignEmpty bool
	nextKey      string
	uploads      []string
	deletes      []string
}

func (f *fakeImageStore) Upload(_ context.Context, _ io.Reader, _ int64, filename, _ string) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	key := f.nextKey
	if key == "" {
		key = "images/" + filename
	}
	f.uploads = append(f.uploads, key)
	if f.log != nil {
		f.log.add("store.upload:" + key)
	}
	return key, "https://storage.local/" + key, nil
}

func (f *fakeImageStore) PresignedURL(_ context.Context, key string) string {
	if f.presignEmpty {
		return ""
	}
	return "https://storage.local/" + key
}

func (f *fakeImageStore) Delete(_ context.Context, key string) error {
	if err, ok := f.deleteErr[key]; ok && err != nil {
		return err
	}
	f.deletes = append(f.deletes, key)
	if f.log != nil {
		f.log.add("store.delete:" + key)
	}
	return nil
}

// fakePostRepo implementa repositories.PostRepository em memória
type fakePostRepo struct {
	log          *callLog
	posts        []*entities.Post
	nextID       int64
	createErr    error
	updateCalled bool
	updateFields map[string]any
}

func (r *fakePostRepo) Create(_ context.Context, post *entities.Post) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	post.ID = r.nextID
	r.posts = append(r.posts, post)
	if r.log != nil {
		r.log.add("db.create_post")
	}
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
	r.updateCalled = true
	r.updateFields = fields
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
			if r.log != nil {
				r.log.add("db.delete_post")
			}
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
	if r.log != nil {
		r.log.add("db.delete_user_posts")
	}
	return nil
}

// fakeUserRepo implementa repositories.UserRepository em memória
type fakeUserRepo struct {
	log          *callLog
	users        []*entities.User
	nextID       int64
	createErr    error
	updateCalled bool
	updateFields map[string]any
	deleteCalled bool
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	if r.createErr != nil {
		return r.createErr
	}
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
	r.updateFields = fields
	for _, u := range r.users {
		if u.ID == id {
			if username, ok := fields["username"].(string); ok {
				u.Username = username
			}
			if email, ok := fields["email"].(string); ok {
				u.Email = mustEmail(email)
			}
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) DeleteByID(_ context.Context, id int64) (*entities.User, error) {
	r.deleteCalled = true
	if r.log != nil {
		r.log.add("db.delete_user")
	}
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return u, nil
		}
	}
	return nil, nil
}

// Helpers

func mustEmail(raw string) valueobjects.Email {
	email, err := valueobjects.NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return email
}

func strPtr(s string) *string {
	return &s
}
