package gateway

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// proxy forwards a request to a backend service, translating the gateway's
// /api prefix away and passing status, headers, and body through untouched.
// The gateway owns authentication; the backends trust what it forwards.
type proxy struct {
	target string
	client *http.Client
	logger *zap.Logger
}

func newProxy(target string, logger *zap.Logger) *proxy {
	return &proxy{
		target: strings.TrimRight(target, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

func (p *proxy) handle(c *gin.Context) {
	path := strings.TrimPrefix(c.Request.URL.Path, "/api")
	url := p.target + path
	if c.Request.URL.RawQuery != "" {
		url += "?" + c.Request.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, url, c.Request.Body)
	if err != nil {
		p.logger.Error("failed to build upstream request", zap.String("url", url), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if ct := c.GetHeader("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	if rid := c.GetString(requestIDKey); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("upstream request failed", zap.String("url", url), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream service unavailable"})
		return
	}
	defer resp.Body.Close()

	c.Status(resp.StatusCode)
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		c.Header("Content-Type", ct)
	}
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		p.logger.Warn("failed to copy upstream response", zap.String("url", url), zap.Error(err))
	}
}
