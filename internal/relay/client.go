package relay

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// HTTPMessenger sends messages to a relay served by NewHandler.
type HTTPMessenger struct {
	client *resty.Client
	tabID  string
}

var _ Messenger = (*HTTPMessenger)(nil)

func NewHTTPMessenger(relayURL string) *HTTPMessenger {
	tabID := uuid.NewString()
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(relayURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader(TabIDHeader, tabID)
	return &HTTPMessenger{client: client, tabID: tabID}
}

// TabID identifies this messenger to the relay.
func (m *HTTPMessenger) TabID() string {
	return m.tabID
}

func (m *HTTPMessenger) Send(ctx context.Context, msg Message, reply func(Response)) {
	go func() {
		response, handled := m.send(ctx, msg)
		if handled {
			reply(response)
		}
	}()
}

func (m *HTTPMessenger) send(ctx context.Context, msg Message) (Response, bool) {
	var response Response
	res, err := m.client.R().
		SetContext(ctx).
		SetBody(msg).
		SetResult(&response).
		Post(MessagesPath)
	if err != nil {
		return Response{Success: false, Error: fmt.Sprintf("client.R.Post > %v", err)}, true
	}
	if res.StatusCode() == http.StatusBadRequest && msg.Action != ActionTranslate {
		return Response{}, false
	}
	if res.StatusCode() != http.StatusOK {
		return Response{Success: false, Error: fmt.Sprintf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))}, true
	}
	return response, true
}

// TabClient asks a relay which tab is active.
type TabClient struct {
	client *resty.Client
}

func NewTabClient(relayURL string) *TabClient {
	return &TabClient{
		client: resty.New().SetBaseURL(strings.TrimSuffix(relayURL, "/")),
	}
}

// ActiveTab returns nil without error when the relay knows no tab.
func (c *TabClient) ActiveTab(ctx context.Context) (*Tab, error) {
	var tab Tab
	res, err := c.client.R().
		SetContext(ctx).
		SetResult(&tab).
		Get(ActiveTabPath)
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return &tab, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
}
