// Package cloudinary implements media.Uploader against the Cloudinary
// upload API using signed requests.
package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/atlas/internal/media"
)

const cloudinaryAPIURL = "https://api.cloudinary.com/v1_1"

// Client implements media.Uploader for Cloudinary
type Client struct {
	httpClient *http.Client
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
}

// NewClient creates a new Cloudinary client for the given cloud
func NewClient(cloudName, apiKey, apiSecret string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:   cloudinaryAPIURL,
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

// uploadResponse represents the response from the image upload API
type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// Upload sends the image to Cloudinary under the given public ID and
// returns the HTTPS delivery URL.
func (c *Client) Upload(ctx context.Context, data []byte, publicID string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image data", media.ErrUploadFailed)
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", publicID)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	_ = writer.WriteField("public_id", publicID)
	_ = writer.WriteField("timestamp", timestamp)
	_ = writer.WriteField("api_key", c.apiKey)
	_ = writer.WriteField("signature", c.sign(map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}))
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", media.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: cloudinary API error (status %d): %s",
			media.ErrUploadFailed, resp.StatusCode, string(respBody))
	}

	var uploadResp uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", media.ErrUploadFailed, err)
	}
	if uploadResp.SecureURL != "" {
		return uploadResp.SecureURL, nil
	}
	return uploadResp.URL, nil
}

// Destroy removes an uploaded image. Destroying a public ID that no longer
// exists is not an error.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", timestamp)
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}))

	destroyURL := fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, "POST", destroyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to destroy asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cloudinary API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var destroyResp struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&destroyResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if destroyResp.Result != "ok" && destroyResp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy failed: %s", destroyResp.Result)
	}
	return nil
}

// sign computes the request signature: the SHA-1 hex digest of the
// alphabetically sorted parameters concatenated with the API secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	digest := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(digest[:])
}
