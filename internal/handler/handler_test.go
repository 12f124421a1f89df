package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository/memory"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const testSecret = "test-access-secret"

type HandlerSuite struct {
	suite.Suite
	router *gin.Engine
	store  *memory.Repository
	author uuid.UUID
	reader uuid.UUID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *HandlerSuite) SetupTest() {
	s.setupRouter(service.Options{})
	s.author = uuid.New()
	s.reader = uuid.New()
}

func (s *HandlerSuite) setupRouter(opts service.Options) {
	s.store = memory.New()
	services := service.New(zap.NewNop(), s.store, nil, opts)
	h := New(services, zap.NewNop(), Config{
		AccessSecret: testSecret,
		ClientOrigin: "*",
	})
	s.router = h.InitRoutes()
}

func (s *HandlerSuite) token(userID uuid.UUID, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	s.Require().NoError(err)

	return signed
}

func (s *HandlerSuite) do(method string, path string, body any, userID uuid.UUID) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(bodyJSON)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+s.token(userID, testSecret))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w
}

func (s *HandlerSuite) createPost(title string, content string) model.Post {
	w := s.do(http.MethodPost, "/", map[string]any{"title": title, "content": content}, s.author)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var post model.Post
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &post))

	return post
}

func (s *HandlerSuite) TestHealthz() {
	w := s.do(http.MethodGet, "/healthz", nil, uuid.Nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerSuite) TestAuth() {
	w := s.do(http.MethodPost, "/", map[string]any{"title": "t", "content": "c"}, uuid.Nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{"title":"t","content":"c"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token(s.author, "another-secret"))
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{"title":"t","content":"c"}`)))
	req.Header.Set("Authorization", "Token "+s.token(s.author, testSecret))
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerSuite) TestCreatePost() {
	w := s.do(http.MethodPost, "/", map[string]any{
		"title":       "Hello",
		"content":     "World",
		"likes_count": 50,
	}, s.author)
	s.Require().Equal(http.StatusCreated, w.Code)

	var post model.Post
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &post))
	s.NotZero(post.ID)
	s.Equal(s.author, post.AuthorID)
	s.Zero(post.LikesCount)

	w = s.do(http.MethodGet, "/", nil, uuid.Nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var posts []model.Post
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &posts))
	s.Len(posts, 1)
}

func (s *HandlerSuite) TestCreatePost_Validation() {
	w := s.do(http.MethodPost, "/", map[string]any{"title": "", "content": "body"}, s.author)
	s.Require().Equal(http.StatusBadRequest, w.Code)

	var res dto.ValidationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.False(res.Ok)
	s.Equal("This field may not be blank.", res.Fields["title"])
}

func (s *HandlerSuite) TestEmptyBody() {
	post := s.createPost("title", "body")

	tests := []struct {
		method string
		path   string
		fields []string
	}{
		{http.MethodPost, "/", []string{"title", "content"}},
		{http.MethodPut, fmt.Sprintf("/%d", post.ID), []string{"title", "content"}},
		{http.MethodPost, fmt.Sprintf("/%d/comments", post.ID), []string{"content"}},
	}

	for _, tt := range tests {
		w := s.do(tt.method, tt.path, nil, s.author)
		s.Require().Equal(http.StatusBadRequest, w.Code, tt.method+" "+tt.path)

		var res dto.ValidationResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
		s.Len(res.Fields, len(tt.fields))
		for _, field := range tt.fields {
			s.Equal("This field may not be blank.", res.Fields[field])
		}
	}
}

func (s *HandlerSuite) TestEmptyBody_BackupOnRejectedEdit() {
	s.setupRouter(service.Options{BackupOnRejectedEdit: true})
	post := s.createPost("title", "body")

	w := s.do(http.MethodPut, fmt.Sprintf("/%d", post.ID), nil, s.reader)
	s.Require().Equal(http.StatusBadRequest, w.Code)

	var res dto.ValidationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Contains(res.Fields, "title")

	backups, err := s.store.Backups().FindByPost(context.Background(), post.ID)
	s.Require().NoError(err)
	s.Len(backups, 1)
	s.Equal("body", backups[0].Content)
}

func (s *HandlerSuite) TestGetPost() {
	post := s.createPost("title", "body")

	w := s.do(http.MethodGet, fmt.Sprintf("/%d", post.ID), nil, uuid.Nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/%d", post.ID), nil, s.reader)
	s.Require().Equal(http.StatusOK, w.Code)
	var detail model.PostDetail
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	s.Equal(post.ID, detail.ID)
	s.Empty(detail.Comments)

	w = s.do(http.MethodGet, "/abc", nil, s.reader)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/%d", post.ID+10), nil, s.reader)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestEditPost() {
	post := s.createPost("title", "v0")
	path := fmt.Sprintf("/%d", post.ID)

	w := s.do(http.MethodPut, path, map[string]any{"title": "title", "content": "v1"}, s.reader)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, path+"/backup", nil, uuid.Nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, path, map[string]any{"title": "title", "content": "v1"}, s.author)
	s.Require().Equal(http.StatusOK, w.Code)
	var updated model.Post
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	s.Equal("v1", updated.Content)

	w = s.do(http.MethodGet, path+"/backup", nil, uuid.Nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var backups []model.PostBackup
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &backups))
	s.Require().Len(backups, 1)
	s.Equal("v0", backups[0].Content)
}

func (s *HandlerSuite) TestDeletePost() {
	post := s.createPost("title", "body")
	path := fmt.Sprintf("/%d", post.ID)

	w := s.do(http.MethodDelete, path, nil, s.reader)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, path, nil, s.author)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, path, nil, s.author)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestToggleLike() {
	post := s.createPost("title", "body")
	path := fmt.Sprintf("/%d/like", post.ID)

	w := s.do(http.MethodGet, path, nil, uuid.Nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, path, nil, s.reader)
	s.Require().Equal(http.StatusCreated, w.Code)
	var toggle model.LikeToggle
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &toggle))
	s.Equal(model.Liked, toggle.Result)
	s.EqualValues(1, toggle.LikesCount)

	w = s.do(http.MethodGet, fmt.Sprintf("/%d/likes", post.ID), nil, uuid.Nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var likes []model.Like
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &likes))
	s.Require().Len(likes, 1)
	s.Equal(s.reader, likes[0].AuthorID)

	w = s.do(http.MethodGet, path, nil, s.reader)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/%d/likes", post.ID+10), nil, uuid.Nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/%d/like", post.ID+10), nil, s.reader)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestComments() {
	post := s.createPost("title", "body")
	path := fmt.Sprintf("/%d/comments", post.ID)

	w := s.do(http.MethodPost, path, map[string]any{"content": "nice"}, s.reader)
	s.Require().Equal(http.StatusCreated, w.Code)
	var comment model.Comment
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &comment))
	s.Equal(s.reader, comment.AuthorID)

	w = s.do(http.MethodPost, path, map[string]any{"content": " "}, s.reader)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, path, nil, uuid.Nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var comments []model.Comment
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &comments))
	s.Len(comments, 1)

	commentPath := fmt.Sprintf("/%d/comments", comment.ID)

	w = s.do(http.MethodPut, commentPath, map[string]any{"content": "edited"}, s.author)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, commentPath, map[string]any{"content": "edited"}, s.reader)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &comment))
	s.Equal("edited", comment.Content)

	w = s.do(http.MethodDelete, commentPath, nil, s.reader)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodDelete, commentPath, nil, s.reader)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestAnalytics() {
	w := s.do(http.MethodGet, "/analytics/date_from=2021-04-04&date_to=2021-04-06", nil, uuid.Nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var res dto.AnalyticsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Equal("2021-04-04", res.DateFrom)
	s.Equal("2021-04-06", res.DateTo)
	s.Zero(res.LikesCount)

	w = s.do(http.MethodGet, "/analytics?date_from=2021-04-04&date_to=2021-04-06", nil, uuid.Nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/analytics?date_from=04.04.2021&date_to=2021-04-06", nil, uuid.Nil)
	s.Require().Equal(http.StatusBadRequest, w.Code)
	var validation dto.ValidationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &validation))
	s.Contains(validation.Fields, "date_from")
}
