package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/hyperifyio/gopages/internal/extract"
	"github.com/hyperifyio/gopages/internal/textclean"
)

const (
	// DefaultUserAgent identifies the fetcher to origin servers.
	DefaultUserAgent = "Mozilla/5.0 (compatible; gopages/1.0)"
	DefaultTimeout   = 5 * time.Second

	// MinBodyBytes is the smallest body treated as a real page. Anything
	// shorter is almost always an error stub or placeholder.
	MinBodyBytes = 100

	truncationMarker = "..."
)

// Limits bounds the work done for a single URL.
type Limits struct {
	// MaxContentLength caps the cleaned body, in characters.
	MaxContentLength int
	// DownloadFloor is the minimum download cap in bytes.
	DownloadFloor int
	// ChunkSize is the read size used while streaming the body.
	ChunkSize int
}

// DefaultLimits returns the production limits: 7000 characters of content,
// a 100 KiB download floor and 1 KiB reads.
func DefaultLimits() Limits {
	return Limits{MaxContentLength: 7000, DownloadFloor: 100 * 1024, ChunkSize: 1024}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxContentLength <= 0 {
		l.MaxContentLength = d.MaxContentLength
	}
	if l.DownloadFloor <= 0 {
		l.DownloadFloor = d.DownloadFloor
	}
	if l.ChunkSize <= 0 {
		l.ChunkSize = d.ChunkSize
	}
	return l
}

// DownloadCap is the most bytes read from any one response:
// max(3*MaxContentLength, DownloadFloor).
func (l Limits) DownloadCap() int {
	l = l.withDefaults()
	return max(3*l.MaxContentLength, l.DownloadFloor)
}

// Result is the outcome of fetching one URL. A successful result has a
// non-nil Content and an empty Error; a failed one has nil Title and Content
// and a non-empty Error. Elapsed is always set.
type Result struct {
	URL     string
	Title   *string
	Content *string
	Success bool
	Error   string
	Elapsed time.Duration
}

// Fetcher downloads, extracts, cleans and truncates single pages.
// It is safe for concurrent use.
type Fetcher struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds the whole request including the body read. Zero means DefaultTimeout.
	Timeout time.Duration
	// RedirectMaxHops caps redirect following. Zero means 5.
	RedirectMaxHops int
	Limits          Limits
	Extractor       extract.Extractor
}

// Fetch never returns an error: every failure, including a panic in the
// extractor, is reported through the Result.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = failure(rawURL, fmt.Errorf("panic: %v", r))
		}
		res.Elapsed = time.Since(start)
	}()

	limits := f.Limits.withDefaults()
	body, contentType, err := f.download(ctx, rawURL, limits)
	if err != nil {
		return failure(rawURL, err)
	}
	if len(body) == 0 {
		return failure(rawURL, errors.New("no content received from URL"))
	}
	if len(body) < MinBodyBytes {
		return failure(rawURL, fmt.Errorf("content too small (%d bytes), might be an error page", len(body)))
	}

	doc, err := f.extractor().Extract(toUTF8(body, contentType))
	if err != nil {
		return failure(rawURL, fmt.Errorf("extract: %w", err))
	}

	content := Truncate(textclean.Clean(doc.Text), limits.MaxContentLength)
	res = Result{URL: rawURL, Content: &content, Success: true}
	if doc.Title != "" {
		title := textclean.Clean(doc.Title)
		res.Title = &title
	}
	return res
}

// Truncate keeps the first maxChars characters of s and appends "..." when
// s is longer. Characters are counted as runes, not bytes.
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	n := 0
	for i := range s {
		if n == maxChars {
			return s[:i] + truncationMarker
		}
		n++
	}
	return s
}

func failure(rawURL string, err error) Result {
	return Result{URL: rawURL, Error: err.Error()}
}

func (f *Fetcher) extractor() extract.Extractor {
	if f.Extractor != nil {
		return f.Extractor
	}
	return extract.Default()
}

func (f *Fetcher) download(ctx context.Context, rawURL string, limits Limits) ([]byte, string, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("new request: %w", err)
	}
	if !isHTTPScheme(req.URL) {
		return nil, "", fmt.Errorf("unsupported URL scheme: %q", req.URL.Scheme)
	}
	ua := f.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := f.httpClient().Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	body, err := readCapped(resp.Body, limits.ChunkSize, limits.DownloadCap())
	if err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// readCapped reads r in chunkSize pieces until EOF or until limit bytes have
// been accumulated. It never reads past limit.
func readCapped(r io.Reader, chunkSize, limit int) ([]byte, error) {
	buf := make([]byte, 0, min(limit, 64*1024))
	chunk := make([]byte, chunkSize)
	for len(buf) < limit {
		want := min(chunkSize, limit-len(buf))
		n, err := r.Read(chunk[:want])
		buf = append(buf, chunk[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
	}
	return buf, nil
}

// toUTF8 converts body to UTF-8 using the declared or sniffed charset.
// Undecodable input is returned unchanged.
func toUTF8(body []byte, contentType string) []byte {
	enc, name, _ := charset.DetermineEncoding(body, contentType)
	if enc == nil || name == "utf-8" {
		return body
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return body
	}
	return out
}

func (f *Fetcher) httpClient() *http.Client {
	base := http.Client{}
	if f.HTTPClient != nil {
		// Copy so the redirect policy does not leak into the caller's client.
		base = *f.HTTPClient
	}
	base.CheckRedirect = f.checkRedirectFunc()
	return &base
}

func (f *Fetcher) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	maxHops := f.RedirectMaxHops
	if maxHops <= 0 {
		maxHops = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxHops {
			return errors.New("too many redirects")
		}
		if !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
