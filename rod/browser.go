package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of pages rendered before the browser
// is restarted.
const DefaultRecycleAfter = 75

// browser owns a headless Chrome process and restarts it after a fixed
// number of pages, since Chrome memory keeps growing across navigations.
type browser struct {
	mu           sync.Mutex
	b            *rod.Browser
	l            *launcher.Launcher
	pages        int
	recycleAfter int
}

func newBrowser(recycleAfter int) (*browser, error) {
	if recycleAfter <= 0 {
		recycleAfter = DefaultRecycleAfter
	}
	br := &browser{recycleAfter: recycleAfter}
	if err := br.launch(); err != nil {
		return nil, err
	}
	return br, nil
}

// acquire returns the browser for rendering one page, restarting it first
// when the page budget is spent. A failed restart keeps the old browser.
func (br *browser) acquire() (*rod.Browser, error) {
	br.mu.Lock()
	defer br.mu.Unlock()

	if br.b == nil {
		return nil, fmt.Errorf("browser closed")
	}
	if br.pages >= br.recycleAfter {
		old, oldL := br.b, br.l
		if err := br.launch(); err == nil {
			_ = old.Close()
			oldL.Kill()
		} else {
			br.b, br.l = old, oldL
		}
		br.pages = 0
	}
	br.pages++
	return br.b, nil
}

func (br *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	br.b, br.l = b, l
	return nil
}

func (br *browser) close() error {
	br.mu.Lock()
	defer br.mu.Unlock()

	var err error
	if br.b != nil {
		err = br.b.Close()
		br.b = nil
	}
	if br.l != nil {
		br.l.Kill()
		br.l = nil
	}
	return err
}

func (br *browser) pid() int {
	br.mu.Lock()
	defer br.mu.Unlock()
	if br.l == nil {
		return 0
	}
	return br.l.PID()
}
