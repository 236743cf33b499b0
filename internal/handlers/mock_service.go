package handlers

import (
	"context"
	"net/http"

	"linkfeed/internal/models"
	"linkfeed/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	payload  models.AuthPayload
	err      error
	parseID  int
	parseErr error

	lastEmail    string
	lastPassword string
	lastName     string
	lastToken    string
}

func (m *mockAuth) Signup(_ context.Context, email, password, name string) (models.AuthPayload, error) {
	m.lastEmail, m.lastPassword, m.lastName = email, password, name
	return m.payload, m.err
}
func (m *mockAuth) Login(_ context.Context, email, password string) (models.AuthPayload, error) {
	m.lastEmail, m.lastPassword = email, password
	return m.payload, m.err
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastToken = token
	return m.parseID, m.parseErr
}

type mockFeed struct {
	resp     models.Feed
	err      error
	lastArgs models.FeedArgs
	calls    int
}

func (m *mockFeed) Feed(_ context.Context, args models.FeedArgs) (models.Feed, error) {
	m.calls++
	m.lastArgs = args
	return m.resp, m.err
}

type mockLinks struct {
	detail *models.LinkDetail
	link   *models.Link
	err    error

	lastID     int
	lastPatch  models.LinkPatch
	lastUserID int
	lastAuthed bool
}

func (m *mockLinks) record(ctx context.Context, id int) {
	m.lastID = id
	m.lastUserID, m.lastAuthed = service.UserIDFrom(ctx)
}

func (m *mockLinks) Link(ctx context.Context, id int) (*models.LinkDetail, error) {
	m.record(ctx, id)
	return m.detail, m.err
}
func (m *mockLinks) Post(ctx context.Context, description, url string) (*models.Link, error) {
	m.record(ctx, 0)
	if m.err != nil {
		return nil, m.err
	}
	// mirror the guard so handler tests see the real message
	if _, err := service.RequireAuthenticated(ctx, "post links"); err != nil {
		return nil, err
	}
	return &models.Link{ID: 1, Description: description, URL: url}, nil
}
func (m *mockLinks) UpdateLink(ctx context.Context, id int, patch models.LinkPatch) (*models.Link, error) {
	m.record(ctx, id)
	m.lastPatch = patch
	return m.link, m.err
}
func (m *mockLinks) DeleteLink(ctx context.Context, id int) (*models.Link, error) {
	m.record(ctx, id)
	return m.link, m.err
}

type mockVoter struct {
	resp   *models.Vote
	err    error
	lastID int
}

func (m *mockVoter) Vote(ctx context.Context, linkID int) (*models.Vote, error) {
	m.lastID = linkID
	if _, err := service.RequireAuthenticated(ctx, "vote"); err != nil {
		return nil, err
	}
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
