package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitecomments/domain"
	"sitecomments/domain/mocks"
	identityPkg "sitecomments/internal/identity"
	"sitecomments/internal/rest"
	"sitecomments/internal/rest/middleware"
	"sitecomments/internal/rest/response"
)

func newRouter(svc domain.CommentUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rest.RegisterValidations()

	handler := rest.NewCommentHandler(svc)
	route := gin.New()
	route.Use(middleware.RequestID())
	route.Use(middleware.Identity(identityPkg.NewHeaderProvider()))

	route.GET("/pages/:slug/comments", handler.ListComments)

	authorized := route.Group("/")
	authorized.Use(middleware.RequireIdentity())
	{
		authorized.POST("/pages/:slug/comments", handler.CreateComment)
		authorized.POST("/comments/:id/reactions", handler.ToggleReaction)
		authorized.PATCH("/comments/:id", handler.EditComment)
		authorized.DELETE("/comments/:id", handler.DeleteComment)
	}
	return route
}

func asUser(req *http.Request, id string, username string) {
	req.Header.Set(identityPkg.HeaderUserID, id)
	req.Header.Set(identityPkg.HeaderUsername, username)
}

func TestListCommentsAnonymous(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("List", mock.Anything, (*domain.Identity)(nil), "foo", 1, 10).
		Return(domain.CommentPage{
			Comments:   []*domain.Comment{},
			Pagination: domain.Pagination{Page: 1},
		})

	req := httptest.NewRequest(http.MethodGet, "/pages/foo/comments", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body response.CommentPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Comments)
	assert.Equal(t, 1, body.Pagination.Page)
	svc.AssertExpectations(t)
}

func TestListCommentsPassesViewerAndPaging(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("List", mock.Anything, mock.MatchedBy(func(id *domain.Identity) bool {
		return id != nil && id.ID == 7 && id.Username == "uma"
	}), "foo", 2, 5).Return(domain.CommentPage{
		Comments:   []*domain.Comment{},
		Pagination: domain.Pagination{Page: 2, TotalPages: 3, TotalComments: 11, HasMore: true},
	})

	req := httptest.NewRequest(http.MethodGet, "/pages/foo/comments?page=2&pageSize=5", nil)
	asUser(req, "7", "uma")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCreateCommentUnauthenticated(t *testing.T) {
	svc := new(mocks.CommentUsecase)

	req := httptest.NewRequest(http.MethodPost, "/pages/foo/comments", strings.NewReader(`{"content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateComment(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(id *domain.Identity) bool {
		return id != nil && id.ID == 1 && id.Username == "ann"
	}), "foo", "hi", (*int64)(nil)).Return(&domain.Comment{ID: 42, PageSlug: "foo", Content: "hi", UserID: 1, Username: "ann"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/pages/foo/comments", strings.NewReader(`{"content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	asUser(req, "1", "ann")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body response.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.ID)
	svc.AssertExpectations(t)
}

func TestCreateCommentMissingContent(t *testing.T) {
	svc := new(mocks.CommentUsecase)

	req := httptest.NewRequest(http.MethodPost, "/pages/foo/comments", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	asUser(req, "1", "ann")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReplyToReplyIsBadRequest(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("Create", mock.Anything, mock.Anything, "foo", "hi", mock.Anything).
		Return(nil, domain.ErrReplyToReply)

	req := httptest.NewRequest(http.MethodPost, "/pages/foo/comments", strings.NewReader(`{"content":"hi","parent_id":5}`))
	req.Header.Set("Content-Type", "application/json")
	asUser(req, "1", "ann")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot reply to a reply")
}

func TestToggleReactionUnknownTypeRejectedAtBinding(t *testing.T) {
	svc := new(mocks.CommentUsecase)

	req := httptest.NewRequest(http.MethodPost, "/comments/1/reactions", strings.NewReader(`{"reaction_type":"sparkles"}`))
	req.Header.Set("Content-Type", "application/json")
	asUser(req, "1", "ann")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ToggleReaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleReaction(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	agg := domain.NewReactionAggregate()
	agg.Counts[domain.ReactionHeart] = 1
	agg.ViewerApplied = []domain.ReactionType{domain.ReactionHeart}
	svc.On("ToggleReaction", mock.Anything, mock.Anything, int64(1), domain.ReactionHeart).
		Return(domain.ReactionState{CommentID: 1, Type: domain.ReactionHeart, Active: true, Aggregate: agg}, nil)

	req := httptest.NewRequest(http.MethodPost, "/comments/1/reactions", strings.NewReader(`{"reaction_type":"heart"}`))
	req.Header.Set("Content-Type", "application/json")
	asUser(req, "7", "uma")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body response.ReactionState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Active)
	assert.Equal(t, int64(1), body.Reactions.Counts["heart"])
	assert.Equal(t, []string{"heart"}, body.Reactions.ViewerApplied)
}

func TestDeleteCommentForbidden(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("Delete", mock.Anything, mock.Anything, int64(10)).Return(domain.ErrForbidden)

	req := httptest.NewRequest(http.MethodDelete, "/comments/10", nil)
	asUser(req, "3", "bob")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteComment(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("Delete", mock.Anything, mock.Anything, int64(10)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/comments/10", nil)
	asUser(req, "1", "ann")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestEditCommentNotFound(t *testing.T) {
	svc := new(mocks.CommentUsecase)
	svc.On("Edit", mock.Anything, mock.Anything, int64(99), "after").Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest(http.MethodPatch, "/comments/99", strings.NewReader(`{"content":"after"}`))
	req.Header.Set("Content-Type", "application/json")
	asUser(req, "1", "ann")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
