package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"dicegame_config/internal/app/port"
)

// explorerClientImpl checks block explorer reachability over fasthttp.
type explorerClientImpl struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewExplorerClient creates a new block explorer client.
func NewExplorerClient(timeout time.Duration, logger *zap.Logger) port.ExplorerClient {
	return &explorerClientImpl{
		client: &fasthttp.Client{
			Name:                "dicegame-config",
			MaxResponseBodySize: 1 << 20,
		},
		timeout: timeout,
		logger:  logger.Named("ExplorerClient"),
	}
}

// Ping issues a GET against baseURL and returns the HTTP status code.
// Any response, even a non-2xx one, is returned without error; only transport failures are errors.
func (c *explorerClientImpl) Ping(ctx context.Context, baseURL string) (int, error) {
	requestURL := strings.TrimRight(baseURL, "/") + "/"

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)
	resp.SkipBody = true

	c.logger.Debug("Pinging block explorer", zap.String("url", requestURL))

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Warn("Block explorer request failed", zap.String("url", requestURL), zap.Error(err))
			return 0, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Warn("Block explorer request failed (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return 0, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	status := resp.StatusCode()
	if status >= fasthttp.StatusInternalServerError {
		c.logger.Warn("Block explorer answered with server error", zap.String("url", requestURL), zap.Int("statusCode", status))
	}
	return status, nil
}
