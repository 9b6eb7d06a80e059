package main

import (
	"net/http"
)

func (s *APISuite) TestCreatePost() {
	// when:
	resp := s.send("POST", "/api/v1/posts", "12345", `{"text": "1234"}`)

	// then:
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var p post
	s.decode(resp, &p)
	s.Equal("12345", p.AuthorId)
	s.Equal("1234", p.Text)
	s.NotNil(p.Likes)
	s.NotNil(p.Comments)
}

func (s *APISuite) TestCreatePostWithEmptyText() {
	// when:
	resp := s.send("POST", "/api/v1/posts", "12345", `{"text": ""}`)

	// then:
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestCommentOnMissingPost() {
	// when:
	resp := s.send("POST", "/api/v1/posts/comment/not-a-real-id-format", "12345", `{"text": "hi"}`)

	// then:
	s.Require().Equal(http.StatusNotFound, resp.StatusCode)
}
