package reelsimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/reels-client/internal/reels"
	"github.com/orgball2608/reels-client/pkg/config"
	apperrors "github.com/orgball2608/reels-client/pkg/errors"
	"github.com/orgball2608/reels-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type ReelsImpl struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

func New(opts Opts) *ReelsImpl {
	timeout := opts.Config.API.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ReelsImpl{
		baseURL: strings.TrimRight(opts.Config.API.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  opts.Logger.WithComponent("ReelsAPI"),
	}
}

var _ reels.Client = (*ReelsImpl)(nil)

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	token       string
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do sends the request and decodes a 2xx JSON body into out (when non-nil).
// Transport failures and non-2xx answers come back as pkg/errors values.
func (c *ReelsImpl) do(ctx context.Context, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return apperrors.Wrap(err, "failed to build request")
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Request failed", "method", r.method, "path", r.path, "request_id", requestID, "error", err)
		return apperrors.Transport(err)
	}
	defer safeClose(resp.Body, c.logger)

	c.logger.Debug("Request finished",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"took", time.Since(started).Round(time.Millisecond).String())

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Transport(fmt.Errorf("failed to read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.Rejected(resp.StatusCode, serverMessage(data))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.BadResponse(fmt.Sprintf("%s %s: %v", r.method, r.path, err))
	}
	return nil
}

func (c *ReelsImpl) postJSON(ctx context.Context, path, token string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode request")
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(payload),
		contentType: "application/json",
		token:       token,
	}, out)
}

func serverMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

func safeClose(closer io.ReadCloser, log logger.Logger) {
	if err := closer.Close(); err != nil {
		log.Error("Error closing response body", "error", err)
	}
}
