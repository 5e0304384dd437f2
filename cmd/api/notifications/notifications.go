package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shelf-service/cmd/api/book"
)

const (
	topicBookCreated  = "_book_created"
	topicTitleShelved = "_title_shelved"
)

// Ntfy posts plain text messages to ntfy topics derived from baseURL.
type Ntfy struct {
	baseURL string
	client  *http.Client
}

func NewNtfy(notificationsBaseURL string, client *http.Client) *Ntfy {
	if client == nil {
		client = &http.Client{}
	}
	return &Ntfy{
		baseURL: strings.TrimRight(notificationsBaseURL, "/"),
		client:  client,
	}
}

func (ntf *Ntfy) BookCreated(ctx context.Context, title string, code string) error {
	return ntf.publish(ctx, topicBookCreated, fmt.Sprintf("New book created:\nTitle: %s\nCode: %s", title, code))
}

func (ntf *Ntfy) TitleShelved(ctx context.Context, libraryName string, title string) error {
	return ntf.publish(ctx, topicTitleShelved, fmt.Sprintf("Title shelved:\nLibrary: %s\nTitle: %s", libraryName, title))
}

func (ntf *Ntfy) publish(ctx context.Context, topic string, message string) error {
	topicURL := ntf.baseURL + topic
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, topicURL, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("error delivering message to topic (%s): %w", topicURL, err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := ntf.client.Do(req)
	if err != nil {
		return fmt.Errorf("error delivering message to topic (%s): %w", topicURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error delivering message to topic (%s): %w", topicURL, book.NewErrNotificationFailed(resp.StatusCode))
	}
	return nil
}
