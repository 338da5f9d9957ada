package telegram

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	pkghttp "TrendScan/pkg/http"
)

const DefaultAPIURL = "https://api.telegram.org"

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// APIError is a Telegram answer with ok=false.
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

// Notifier delivers report documents to one chat through the Bot API.
type Notifier struct {
	http    *pkghttp.Client
	baseURL string
	token   string
	chatID  string
}

func NewNotifier(apiURL, token, chatID string) *Notifier {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Notifier{
		http:    pkghttp.NewClient(pkghttp.WithTimeout(30*time.Second), pkghttp.WithUserAgent("trendscan")),
		baseURL: strings.TrimRight(apiURL, "/"),
		token:   token,
		chatID:  chatID,
	}
}

// SendDocument uploads content as a file named filename with caption.
func (n *Notifier) SendDocument(ctx context.Context, filename string, content []byte, caption string) error {
	body, contentType, err := documentForm(n.chatID, filename, content, caption)
	if err != nil {
		return err
	}

	var resp apiResponse
	err = n.http.Do(ctx, &pkghttp.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/bot%s/sendDocument", n.baseURL, n.token),
		Header: map[string]string{"Content-Type": contentType},
		Body:   body,
	}, &resp)
	if err != nil {
		return fmt.Errorf("telegram sendDocument: %w", err)
	}
	if !resp.OK {
		return &APIError{Method: "sendDocument", Code: resp.ErrorCode, Description: resp.Description}
	}
	return nil
}

func documentForm(chatID, filename string, content []byte, caption string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := w.WriteField("chat_id", chatID); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("caption", caption); err != nil {
		return nil, "", err
	}
	part, err := w.CreateFormFile("document", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
