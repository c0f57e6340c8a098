package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
)

// Attachment is a file forwarded with a notification email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Client talks to the external email-notification service. The collaborator's
// only contract is accepted-or-not; there is no delivery guarantee and no
// structured response beyond the HTTP status.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: trimmed, httpClient: httpClient}
}

func (c *Client) Send(ctx context.Context, to, subject, content string, attachment *Attachment) error {
	if c.baseURL == "" {
		return common.NewError(common.CodeDependency, "mailer base url not configured", nil)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fields := map[string]string{"to": to, "subject": subject, "content": content}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return common.NewError(common.CodeDependency, "encode email field", err)
		}
	}
	if attachment != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="attachment"; filename="%s"`, attachment.Filename))
		contentType := attachment.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return common.NewError(common.CodeDependency, "encode email attachment", err)
		}
		if _, err := part.Write(attachment.Data); err != nil {
			return common.NewError(common.CodeDependency, "encode email attachment", err)
		}
	}
	if err := writer.Close(); err != nil {
		return common.NewError(common.CodeDependency, "encode email body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send-email", &body)
	if err != nil {
		return common.NewError(common.CodeDependency, "create email request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.NewError(common.CodeDependency, "send email request", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return common.NewError(common.CodeDependency, fmt.Sprintf("mailer rejected request: status %d %s", resp.StatusCode, strings.TrimSpace(string(payload))), nil)
	}
	return nil
}
