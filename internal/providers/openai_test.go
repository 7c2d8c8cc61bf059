package providers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"

	"halfmoon/widget-service/internal/providers"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type OpenAIImageGeneratorTestSuite struct {
	suite.Suite
	server    *httptest.Server
	generator providers.ImageGenerator
	request   map[string]any
	authz     string
	ctx       context.Context
}

func (s *OpenAIImageGeneratorTestSuite) SetupTest() {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		s.authz = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		s.request = map[string]any{}
		_ = json.Unmarshal(body, &s.request)

		switch s.request["prompt"] {
		case "refused":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"message": "Your request was rejected", "type": "invalid_request_error"}}`))
		case "empty":
			w.Write([]byte(`{"created": 1, "data": []}`))
		default:
			w.Write([]byte(`{"created": 1, "data": [{"url": "` + "http://" + r.Host + `/generated/img.png"}]}`))
		}
	})
	mux.HandleFunc("/generated/img.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	})
	mux.HandleFunc("/generated/huge.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(append(append([]byte{}, pngBytes...), pngBytes...))
	})
	mux.HandleFunc("/generated/missing.png", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	s.server = httptest.NewServer(mux)

	s.generator = providers.NewOpenAIImageGenerator("sk-test", providers.ClientOptions{
		BaseURL: s.server.URL,
		Timeout: time.Second,
	})
	s.ctx = context.Background()
}

func (s *OpenAIImageGeneratorTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *OpenAIImageGeneratorTestSuite) TestGenerateImage_Success() {
	imageURL, err := s.generator.GenerateImage(s.ctx, "A view of clear sky weather in Berlin.")

	s.Require().NoError(err)
	s.Equal(s.server.URL+"/generated/img.png", imageURL)
	s.Equal("Bearer sk-test", s.authz)
	s.Equal("dall-e-3", s.request["model"])
	s.Equal("A view of clear sky weather in Berlin.", s.request["prompt"])
	s.Equal(1.0, s.request["n"])
	s.Equal("1024x1024", s.request["size"])
	s.Equal("standard", s.request["quality"])
	s.Equal("url", s.request["response_format"])
}

func (s *OpenAIImageGeneratorTestSuite) TestGenerateImage_Rejected() {
	_, err := s.generator.GenerateImage(s.ctx, "refused")

	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Contains(err.Error(), "Your request was rejected")
}

func (s *OpenAIImageGeneratorTestSuite) TestGenerateImage_NoData() {
	_, err := s.generator.GenerateImage(s.ctx, "empty")

	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Contains(err.Error(), "no image url")
}

func (s *OpenAIImageGeneratorTestSuite) TestDownloadImage() {
	data, err := s.generator.DownloadImage(s.ctx, s.server.URL+"/generated/img.png")

	s.NoError(err)
	s.Equal(pngBytes, data)
}

func (s *OpenAIImageGeneratorTestSuite) TestDownloadImage_Failure() {
	_, err := s.generator.DownloadImage(s.ctx, s.server.URL+"/generated/missing.png")

	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Contains(err.Error(), "status code 403")
}

func (s *OpenAIImageGeneratorTestSuite) TestDownloadImage_BodyLimit() {
	generator := providers.NewOpenAIImageGenerator("sk-test", providers.ClientOptions{
		BaseURL:          s.server.URL,
		Timeout:          time.Second,
		MaxResponseBytes: int64(len(pngBytes)),
	})

	data, err := generator.DownloadImage(s.ctx, s.server.URL+"/generated/img.png")
	s.Require().NoError(err)
	s.Equal(pngBytes, data)

	data, err = generator.DownloadImage(s.ctx, s.server.URL+"/generated/huge.png")
	s.ErrorIs(err, providers.ErrUpstreamFailure)
	s.Contains(err.Error(), "response body exceeds 8 bytes")
	s.Nil(data)
}

func TestOpenAIImageGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(OpenAIImageGeneratorTestSuite))
}
