package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"metdesk/pkg/apperrors"
)

// DriveClient talks to the Google Drive v3 REST API with a bearer token. Only
// the two calls the resolver needs are implemented: copy a template file and
// open it to anyone with the link.
type DriveClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewDriveClient(baseURL, token string) *DriveClient {
	return &DriveClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
	}
}

type driveFile struct {
	ID          string `json:"id"`
	WebViewLink string `json:"webViewLink"`
}

// CopyFile copies the template and returns the new file's id and sharable
// link.
func (c *DriveClient) CopyFile(ctx context.Context, templateID, title string) (id, url string, err error) {
	body, _ := json.Marshal(map[string]string{"name": title})
	endpoint := fmt.Sprintf("%s/files/%s/copy?fields=id,webViewLink", c.baseURL, templateID)

	var file driveFile
	if err := c.do(ctx, endpoint, body, &file); err != nil {
		return "", "", err
	}
	return file.ID, file.WebViewLink, nil
}

// ShareAnyoneReader grants link-based read access so station staff can open
// the copy without individual grants.
func (c *DriveClient) ShareAnyoneReader(ctx context.Context, fileID string) error {
	body, _ := json.Marshal(map[string]string{"role": "reader", "type": "anyone"})
	endpoint := fmt.Sprintf("%s/files/%s/permissions", c.baseURL, fileID)
	return c.do(ctx, endpoint, body, nil)
}

func (c *DriveClient) do(ctx context.Context, endpoint string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUpstream, "build drive request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUpstream, "drive request failed: "+err.Error(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.New(apperrors.CodeUpstream,
			fmt.Sprintf("drive returned %d: %s", resp.StatusCode, string(detail)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.CodeUpstream, "decode drive response", err)
	}
	return nil
}
