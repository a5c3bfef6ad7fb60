package firebase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	ProjectionJSONObject   = "data/restaurant-data.json"
	ProjectionScriptObject = "js/restaurant-data.js"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeFilename removes special characters from filenames and limits length.
func sanitizeFilename(filename string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(filename, "_")

	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}

	if sanitized == "" || sanitized == "." || sanitized == ".." {
		sanitized = "file"
	}

	return sanitized
}

var privateRanges = []*net.IPNet{
	parseCIDR("10.0.0.0/8"),
	parseCIDR("172.16.0.0/12"),
	parseCIDR("192.168.0.0/16"),
	parseCIDR("127.0.0.0/8"),
	parseCIDR("169.254.0.0/16"),
	parseCIDR("0.0.0.0/8"),
	parseCIDR("::1/128"),
	parseCIDR("fc00::/7"),
	parseCIDR("fe80::/10"),
}

// isPrivateIP checks whether an IP address is a private/reserved address.
func isPrivateIP(ip net.IP) bool {
	for _, network := range privateRanges {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func parseCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("invalid CIDR: %s", cidr))
	}
	return network
}

// validateExternalURL rejects URLs that are not plain http(s) or that
// resolve to a private address.
func validateExternalURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL scheme '%s' is not allowed; only http and https are permitted", parsed.Scheme)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("URL has no hostname")
	}
	if strings.EqualFold(host, "localhost") {
		return fmt.Errorf("requests to localhost are not allowed")
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		return fmt.Errorf("failed to resolve hostname '%s': %w", host, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("URL resolves to private IP address %s, which is not allowed", ip.String())
		}
	}

	return nil
}

// Init creates the Firebase app. credentials is either inline service
// account JSON or a path to it; empty means application default credentials.
func Init(ctx context.Context, credentials string, logger *zap.Logger) (*firebase.App, error) {
	var opts []option.ClientOption

	switch {
	case strings.HasPrefix(credentials, "{"):
		logger.Info("using Firebase credentials from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(credentials)))
	case credentials != "":
		logger.Info("using Firebase credentials from file", zap.String("path", credentials))
		opts = append(opts, option.WithCredentialsFile(credentials))
	default:
		logger.Warn("GOOGLE_APPLICATION_CREDENTIALS not set, using default credentials")
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init failed: %w", err)
	}
	return app, nil
}

// FirebaseStorageClient stores menu images and mirrors the projection
// artifacts in one bucket.
type FirebaseStorageClient struct {
	app         *firebase.App
	bucketName  string
	httpClient  *http.Client
	validateURL func(string) error
	logger      *zap.Logger
}

func NewStorageClient(app *firebase.App, bucketName string, logger *zap.Logger) *FirebaseStorageClient {
	return &FirebaseStorageClient{
		app:         app,
		bucketName:  bucketName,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		validateURL: validateExternalURL,
		logger:      logger,
	}
}

func (f *FirebaseStorageClient) Bucket() string {
	return f.bucketName
}

func (f *FirebaseStorageClient) bucket(ctx context.Context) (*storage.BucketHandle, error) {
	if f.app == nil {
		return nil, fmt.Errorf("firebase app not initialized")
	}
	if f.bucketName == "" {
		return nil, fmt.Errorf("FIREBASE_STORAGE_BUCKET not set")
	}

	client, err := f.app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage client: %w", err)
	}
	return client.Bucket(f.bucketName)
}

// put uploads r to objectPath, makes it public and returns its public URL.
func (f *FirebaseStorageClient) put(ctx context.Context, objectPath string, r io.Reader, contentType, cacheControl string) (string, error) {
	bucket, err := f.bucket(ctx)
	if err != nil {
		return "", err
	}

	obj := bucket.Object(objectPath)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = cacheControl

	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to upload %s: %w", objectPath, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload of %s: %w", objectPath, err)
	}

	// Make object publicly readable so the URL works without authentication
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		f.logger.Warn("failed to set public ACL", zap.String("object", objectPath), zap.Error(err))
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", f.bucketName, objectPath), nil
}

func menuImagePath(itemID int64, filename string) string {
	return fmt.Sprintf("menu/%d_%s_%s", itemID, uuid.New().String()[:8], sanitizeFilename(filename))
}

// UploadMenuImage stores an uploaded image for a menu item.
func (f *FirebaseStorageClient) UploadMenuImage(ctx context.Context, itemID int64, file io.Reader, filename, contentType string) (string, error) {
	return f.put(ctx, menuImagePath(itemID, filename), file, contentType, "public, max-age=86400")
}

// MaxImportSize caps images downloaded by ImportMenuImage.
const MaxImportSize = 5 << 20

// ImportMenuImage downloads an image from a public URL and stores it for a
// menu item. Images larger than MaxImportSize are rejected.
func (f *FirebaseStorageClient) ImportMenuImage(ctx context.Context, itemID int64, imageURL string) (string, error) {
	if err := f.validateURL(imageURL); err != nil {
		return "", fmt.Errorf("URL validation failed for %s: %w", imageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image from %s: %w", imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("URL %s returned non-image content-type: %q", imageURL, contentType)
	}

	if resp.ContentLength > MaxImportSize {
		return "", fmt.Errorf("image at %s is %d bytes, limit is %d", imageURL, resp.ContentLength, MaxImportSize)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImportSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image from %s: %w", imageURL, err)
	}
	if len(data) > MaxImportSize {
		return "", fmt.Errorf("image at %s exceeds %d bytes", imageURL, MaxImportSize)
	}

	name := "imported"
	if parsed, err := url.Parse(imageURL); err == nil {
		if segs := strings.Split(parsed.Path, "/"); segs[len(segs)-1] != "" {
			name = segs[len(segs)-1]
		}
	}

	return f.put(ctx, menuImagePath(itemID, name), bytes.NewReader(data), contentType, "public, max-age=86400")
}

// DeleteFile deletes an object from the bucket.
func (f *FirebaseStorageClient) DeleteFile(ctx context.Context, objectPath string) error {
	bucket, err := f.bucket(ctx)
	if err != nil {
		return err
	}

	if err := bucket.Object(objectPath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectPath, err)
	}

	f.logger.Info("deleted file", zap.String("object", objectPath), zap.String("bucket", f.bucketName))
	return nil
}

// PublishProjection mirrors the saved document and its script so sites on
// other hosts can fetch them. Both objects are served uncached.
func (f *FirebaseStorageClient) PublishProjection(ctx context.Context, document, script []byte) error {
	if _, err := f.put(ctx, ProjectionJSONObject, bytes.NewReader(document), "application/json", "no-cache"); err != nil {
		return err
	}
	if _, err := f.put(ctx, ProjectionScriptObject, bytes.NewReader(script), "application/javascript", "no-cache"); err != nil {
		return err
	}
	return nil
}
