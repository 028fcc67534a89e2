package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/journly/internal/common"
)

const (
	driveFilesURL  = "https://www.googleapis.com/drive/v3/files"
	driveUploadURL = "https://www.googleapis.com/upload/drive/v3/files"

	backupFilename = "journly-backup.json"

	// multipart/related boundary for the metadata+content upload body
	uploadBoundary = "---journly-sync-boundary"
)

// DriveTransport stores the backup blob in a Drive-style HTTP file store,
// inside the hidden application data space so it can never touch user
// files. It speaks raw HTTP rather than a vendor SDK.
type DriveTransport struct {
	filesURL  string
	uploadURL string
	tokens    TokenSource
	client    *http.Client
}

func NewDriveTransport(tokens TokenSource) *DriveTransport {
	return &DriveTransport{
		filesURL:  driveFilesURL,
		uploadURL: driveUploadURL,
		tokens:    tokens,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (d *DriveTransport) do(ctx context.Context, method, rawURL, contentType string, body io.Reader) (*http.Response, error) {
	token, err := d.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive request: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: drive returned 401", common.ErrAuthInvalid)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: drive returned 429", common.ErrRateLimited)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("drive request failed: status %d", resp.StatusCode)
	}
	return nil
}

// FindBackupObject looks the backup file up by name in the app data space
// and returns its file id, or "" when none exists.
func (d *DriveTransport) FindBackupObject(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("spaces", "appDataFolder")
	q.Set("q", fmt.Sprintf("name='%s'", backupFilename))
	q.Set("fields", "files(id)")

	resp, err := d.do(ctx, http.MethodGet, d.filesURL+"?"+q.Encode(), "", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var data struct {
		Files []struct {
			Id string `json:"id"`
		} `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decoding drive file list: %w", err)
	}
	if len(data.Files) == 0 {
		return "", nil
	}
	return data.Files[0].Id, nil
}

// Upload creates the backup file on first push and updates it in place
// afterwards, using a multipart/related body of metadata plus content.
func (d *DriveTransport) Upload(ctx context.Context, p *Payload) error {
	existingId, err := d.FindBackupObject(ctx)
	if err != nil {
		return err
	}

	content, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	metadata := []byte("{}")
	if existingId == "" {
		metadata, err = json.Marshal(map[string]any{
			"name":    backupFilename,
			"parents": []string{"appDataFolder"},
		})
		if err != nil {
			return err
		}
	}

	var body strings.Builder
	fmt.Fprintf(&body, "--%s\r\n", uploadBoundary)
	body.WriteString("Content-Type: application/json; charset=UTF-8\r\n\r\n")
	body.Write(metadata)
	fmt.Fprintf(&body, "\r\n--%s\r\n", uploadBoundary)
	body.WriteString("Content-Type: application/json\r\n\r\n")
	body.Write(content)
	fmt.Fprintf(&body, "\r\n--%s--", uploadBoundary)

	method := http.MethodPost
	uploadURL := d.uploadURL + "?uploadType=multipart"
	if existingId != "" {
		method = http.MethodPatch
		uploadURL = d.uploadURL + "/" + existingId + "?uploadType=multipart"
	}

	contentType := "multipart/related; boundary=" + uploadBoundary
	resp, err := d.do(ctx, method, uploadURL, contentType, strings.NewReader(body.String()))
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Download fetches the backup blob by file id.
func (d *DriveTransport) Download(ctx context.Context, id string) (*Payload, error) {
	resp, err := d.do(ctx, http.MethodGet, d.filesURL+"/"+id+"?alt=media", "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var p Payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding backup payload: %w", err)
	}
	return &p, nil
}
