package main

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	openapi3_routers "github.com/getkin/kin-openapi/routers"
	openapi3_legacy "github.com/getkin/kin-openapi/routers/legacy"
	_ "github.com/motemen/go-loghttp/global"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

//go:embed api.yaml
var apiSpec []byte

var ctx = context.Background()

func TestAPI(t *testing.T) {
	suite.Run(t, &APISuite{})
}

type APISuite struct {
	suite.Suite

	server        *httptest.Server
	client        http.Client
	apiSpecRouter openapi3_routers.Router
}

func (s *APISuite) SetupSuite() {
	s.Require().NoError(os.Setenv("STORAGE_MODE", "inmemory"))
	s.Require().NoError(os.Setenv("JWT_SECRET", ""))
	srv := CreateServer(zap.NewNop())
	s.server = httptest.NewServer(srv.Handler)
	log.Printf("Start serving on %s", s.server.URL)

	spec, err := openapi3.NewLoader().LoadFromData(apiSpec)
	s.Require().NoError(err)
	s.Require().NoError(spec.Validate(ctx))
	router, err := openapi3_legacy.NewRouter(spec)
	s.Require().NoError(err)
	s.apiSpecRouter = router
	s.client.Transport = s.specValidating(http.DefaultTransport)
}

func (s *APISuite) TearDownSuite() {
	s.server.Close()
}

func (s *APISuite) specValidating(transport http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		log.Println("Send HTTP request:")
		reqBody := s.printReq(req)

		// validate request
		route, params, err := s.apiSpecRouter.FindRoute(req)
		s.Require().NoError(err)
		reqDescriptor := &openapi3filter.RequestValidationInput{
			Request:     req,
			PathParams:  params,
			QueryParams: req.URL.Query(),
			Route:       route,
		}
		s.Require().NoError(openapi3filter.ValidateRequest(ctx, reqDescriptor))

		// do request
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
		resp, err := transport.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		log.Println("Got HTTP response:")
		respBody := s.printResp(resp)

		// Validate response against OpenAPI spec
		s.Require().NoError(openapi3filter.ValidateResponse(ctx, &openapi3filter.ResponseValidationInput{
			RequestValidationInput: reqDescriptor,
			Status:                 resp.StatusCode,
			Header:                 resp.Header,
			Body:                   io.NopCloser(bytes.NewReader(respBody)),
		}))

		return resp, nil
	})
}

func (s *APISuite) printReq(req *http.Request) []byte {
	body := s.readAll(req.Body)

	req.Body = io.NopCloser(bytes.NewReader(body))
	s.Require().NoError(req.Write(os.Stdout))
	fmt.Println()

	req.Body = io.NopCloser(bytes.NewReader(body))
	return body
}

func (s *APISuite) printResp(resp *http.Response) []byte {
	body := s.readAll(resp.Body)

	resp.Body = io.NopCloser(bytes.NewReader(body))
	s.Require().NoError(resp.Write(os.Stdout))
	fmt.Println()

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return body
}

func (s *APISuite) readAll(in io.Reader) []byte {
	if in == nil {
		return nil
	}
	data, err := io.ReadAll(in)
	s.Require().NoError(err)
	return data
}

type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (fn RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return fn(req)
}

type like struct {
	Id     string `json:"id"`
	UserId string `json:"userId"`
}

type comment struct {
	Id       string `json:"id"`
	AuthorId string `json:"authorId"`
	Text     string `json:"text"`
}

type post struct {
	Id        string    `json:"id"`
	AuthorId  string    `json:"authorId"`
	Text      string    `json:"text"`
	Likes     []like    `json:"likes"`
	Comments  []comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *APISuite) send(method, path, userId, body string) *http.Response {
	var reader io.Reader = strings.NewReader(body)
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("System-Design-User-Id", userId)
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *APISuite) decode(resp *http.Response, v interface{}) {
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func (s *APISuite) TestSimple() {
	// User A creates a post
	respPost := s.send("POST", "/api/v1/posts", "A", `{"text": "hello"}`)
	s.Require().Equal(http.StatusOK, respPost.StatusCode)
	var p post
	s.decode(respPost, &p)

	// It is listed first
	respList := s.send("GET", "/api/v1/posts", "A", "")
	s.Require().Equal(http.StatusOK, respList.StatusCode)
	var list []post
	s.decode(respList, &list)
	s.Require().NotEmpty(list)
	s.Equal(p.Id, list[0].Id)

	// User B likes it, twice
	respLike := s.send("PUT", "/api/v1/posts/like/"+p.Id, "B", "")
	s.Require().Equal(http.StatusOK, respLike.StatusCode)
	var likes []like
	s.decode(respLike, &likes)
	s.Require().Len(likes, 1)
	s.Equal("B", likes[0].UserId)

	respLike = s.send("PUT", "/api/v1/posts/like/"+p.Id, "B", "")
	s.Equal(http.StatusBadRequest, respLike.StatusCode)

	// and takes the like back
	respUnlike := s.send("PUT", "/api/v1/posts/unlike/"+p.Id, "B", "")
	s.Require().Equal(http.StatusOK, respUnlike.StatusCode)
	s.decode(respUnlike, &likes)
	s.Empty(likes)

	// User A comments
	respComment := s.send("POST", "/api/v1/posts/comment/"+p.Id, "A", `{"text": "nice"}`)
	s.Require().Equal(http.StatusOK, respComment.StatusCode)
	var comments []comment
	s.decode(respComment, &comments)
	s.Require().Len(comments, 1)
	s.Equal("nice", comments[0].Text)
	s.Equal("A", comments[0].AuthorId)

	// User C cannot remove it
	respUncomment := s.send("DELETE", "/api/v1/posts/comment/"+p.Id+"/"+comments[0].Id, "C", "")
	s.Equal(http.StatusForbidden, respUncomment.StatusCode)

	respGet := s.send("GET", "/api/v1/posts/"+p.Id, "C", "")
	s.Require().Equal(http.StatusOK, respGet.StatusCode)
	s.decode(respGet, &p)
	s.Require().Len(p.Comments, 1)
	s.Equal(comments[0].Id, p.Comments[0].Id)
}

func (s *APISuite) TestGetMalformedId() {
	resp := s.send("GET", "/api/v1/posts/not-a-real-id-format", "A", "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestDeletePost() {
	respPost := s.send("POST", "/api/v1/posts", "A", `{"text": "to be removed"}`)
	s.Require().Equal(http.StatusOK, respPost.StatusCode)
	var p post
	s.decode(respPost, &p)

	resp := s.send("DELETE", "/api/v1/posts/"+p.Id, "B", "")
	s.Equal(http.StatusForbidden, resp.StatusCode)
	s.Equal(http.StatusOK, s.send("GET", "/api/v1/posts/"+p.Id, "B", "").StatusCode)

	resp = s.send("DELETE", "/api/v1/posts/"+p.Id, "A", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(http.StatusNotFound, s.send("GET", "/api/v1/posts/"+p.Id, "A", "").StatusCode)
}
