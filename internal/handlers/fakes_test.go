package handlers

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/communityhub/internal/models"
	"github.com/example/communityhub/internal/store"
)

// fakeUserStore is the in-memory UserStore used to exercise the workflows.
// Updates queued by the verification workflow only land when the batch commit
// runs, mirroring the real adapter.
type fakeUserStore struct {
	users      map[string]*models.User
	batchCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (s *fakeUserStore) add(user models.User) {
	u := user
	s.users[u.Username] = &u
}

func (s *fakeUserStore) GetByUsername(username string) (*models.User, error) {
	if u, ok := s.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (s *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetByPhone(phone string) (*models.User, error) {
	for _, u := range s.users {
		if u.PhoneNumber == phone {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByVerificationToken(token string) (*models.User, error) {
	for _, u := range s.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) ListUnverified() ([]models.User, error) {
	var unverified []models.User
	for _, u := range s.users {
		if !u.Verified {
			unverified = append(unverified, *u)
		}
	}
	return unverified, nil
}

func (s *fakeUserStore) Create(user *models.User) error {
	u := *user
	u.CreatedAt = time.Now()
	s.users[u.Username] = &u
	return nil
}

func (s *fakeUserStore) UpdateVerification(username string, verified bool, token *string) error {
	u, ok := s.users[username]
	if !ok {
		return errors.New("no such user")
	}
	u.Verified = verified
	u.VerificationToken = token
	return nil
}

func (s *fakeUserStore) BatchUpdateVerification(updates []store.VerificationUpdate) error {
	s.batchCalls++
	for _, update := range updates {
		if err := s.UpdateVerification(update.Username, update.Verified, update.Token); err != nil {
			return err
		}
	}
	return nil
}

type sentMail struct {
	to   string
	code string
}

// fakeMailer records every dispatch and can be primed to fail.
type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendVerificationCode(to, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, code: code})
	return nil
}

// fakePostStore keeps posts in insertion order; List returns newest first.
type fakePostStore struct {
	posts []*models.Post
}

func (s *fakePostStore) find(id uuid.UUID) *models.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *fakePostStore) GetByID(id uuid.UUID) (*models.Post, error) {
	p := s.find(id)
	if p == nil {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *fakePostStore) List() ([]models.Post, error) {
	out := make([]models.Post, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		out = append(out, *s.posts[i])
	}
	return out, nil
}

func (s *fakePostStore) Create(post *models.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	post.CreatedAt = time.Now()
	copied := *post
	s.posts = append(s.posts, &copied)
	return nil
}

func (s *fakePostStore) Update(id uuid.UUID, fields map[string]interface{}) error {
	p := s.find(id)
	if p == nil {
		return nil
	}
	if content, ok := fields["content"].(string); ok {
		p.Content = content
	}
	if imageURL, ok := fields["image_url"].(string); ok {
		p.ImageURL = &imageURL
	}
	return nil
}

func (s *fakePostStore) Delete(id uuid.UUID) error {
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakePostStore) AddLike(id uuid.UUID, username string) error {
	p := s.find(id)
	if p == nil {
		return nil
	}
	for _, liker := range p.Likes {
		if liker == username {
			return nil
		}
	}
	p.Likes = append(p.Likes, username)
	return nil
}

func (s *fakePostStore) AddComment(comment *models.Comment) error {
	p := s.find(comment.PostID)
	if p == nil {
		return nil
	}
	c := *comment
	c.CreatedAt = time.Now()
	p.Comments = append(p.Comments, c)
	return nil
}

type fakeHistoryStore struct {
	pages map[string]*models.HistoryPage
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{pages: map[string]*models.HistoryPage{}}
}

func (s *fakeHistoryStore) GetBySlug(slug string) (*models.HistoryPage, error) {
	if p, ok := s.pages[slug]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (s *fakeHistoryStore) Upsert(page *models.HistoryPage) error {
	p := *page
	s.pages[p.Slug] = &p
	return nil
}
