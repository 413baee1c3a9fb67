package relay

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const TabIDHeader = "X-Tab-Id"

// Tab is a page that has talked to the relay.
type Tab struct {
	ID       string    `json:"id"`
	URL      string    `json:"url,omitempty"`
	LastSeen time.Time `json:"lastSeen"`
}

// TabRegistry remembers which tabs sent messages. The most recent one is active.
type TabRegistry struct {
	mu     sync.Mutex
	tabs   map[string]Tab
	active string
	now    func() time.Time
}

func NewTabRegistry() *TabRegistry {
	return &TabRegistry{
		tabs: make(map[string]Tab),
		now:  time.Now,
	}
}

// Touch records a message from the tab identified by r. Requests with neither
// a tab ID nor a referer are not recorded.
func (registry *TabRegistry) Touch(r *http.Request) {
	id := r.Header.Get(TabIDHeader)
	url := r.Referer()
	if id == "" {
		if url == "" {
			return
		}
		id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	tab := registry.tabs[id]
	tab.ID = id
	if url != "" {
		tab.URL = url
	}
	tab.LastSeen = registry.now()
	registry.tabs[id] = tab
	registry.active = id
}

// Active returns the most recently seen tab.
func (registry *TabRegistry) Active() (Tab, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	tab, ok := registry.tabs[registry.active]
	return tab, ok
}
