package feeds

import (
    "context"
    "fmt"
    "time"

    "github.com/gman-top/Tradepilotx/pkg/config"
    xhttp "github.com/gman-top/Tradepilotx/pkg/http"
)

// HTTPServiceBase provides a DRY foundation for intelligence-service HTTP
// clients. It centralizes client construction and JSON GET request handling.
type HTTPServiceBase struct {
    baseURL  string
    attempts int
    client   *xhttp.Client
}

// NewHTTPServiceBase builds an HTTP client with timeout and base URL from config.
func NewHTTPServiceBase(cfg *config.Config) *HTTPServiceBase {
    timeout := cfg.Feeds.Timeout
    if timeout <= 0 {
        timeout = 5 * time.Second
    }
    attempts := cfg.Feeds.RetryAttempts
    if attempts <= 0 {
        attempts = 1
    }
    return &HTTPServiceBase{
        baseURL:  cfg.Feeds.IntelServiceURL,
        attempts: attempts,
        client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
    }
}

// GetJSON fetches `path` under baseURL and decodes the JSON body into dest.
func (b *HTTPServiceBase) GetJSON(ctx context.Context, path string, query map[string][]string, dest interface{}) error {
    if b.client == nil || b.baseURL == "" {
        return fmt.Errorf("intelligence http client not initialized")
    }
    err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
        Method:      xhttp.MethodGet,
        URL:         b.baseURL + path,
        QueryParams: query,
    }, dest)
    if err != nil {
        return fmt.Errorf("get %s: %w", path, err)
    }
    return nil
}

// GetJSONWithRetry fetches JSON with up to the configured attempts for
// transient errors.
func (b *HTTPServiceBase) GetJSONWithRetry(ctx context.Context, path string, query map[string][]string, dest interface{}) error {
    if b.attempts <= 1 {
        return b.GetJSON(ctx, path, query, dest)
    }
    var err error
    for i := 1; i <= b.attempts; i++ {
        err = b.GetJSON(ctx, path, query, dest)
        if err == nil {
            return nil
        }
        // simple backoff
        select {
        case <-time.After(time.Duration(i) * 50 * time.Millisecond):
        case <-ctx.Done():
            return ctx.Err()
        }
    }
    return err
}
