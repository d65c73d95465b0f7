package rod

import (
	"sync"
	"sync/atomic"

	"github.com/fwojciec/clipprune"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRecycleAfter is the number of tabs a browser serves before it is
// replaced by a fresh process.
const DefaultRecycleAfter = 75

// Session owns one headless Chrome process and hands out tabs from it. Chrome
// never gives back the memory a long run accumulates, so the process is
// replaced once it has served its tab limit.
//
// Session is safe for concurrent use.
type Session struct {
	mu           sync.Mutex
	browser      *rod.Browser
	launcher     *launcher.Launcher
	tabs         atomic.Int64
	recycleAfter int64
	closed       atomic.Bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTabLimit sets how many tabs a browser serves before it is replaced.
// Zero or less never replaces it.
func WithTabLimit(n int) SessionOption {
	return func(s *Session) {
		s.recycleAfter = int64(n)
	}
}

// NewSession launches the browser. Close must be called when the Session is
// no longer needed.
func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{recycleAfter: DefaultRecycleAfter}
	for _, opt := range opts {
		opt(s)
	}
	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	s.browser, s.launcher = browser, l
	return s, nil
}

// OpenTab opens a blank tab, replacing the browser first when it has served
// its share of tabs. The caller closes the tab.
func (s *Session) OpenTab() (*rod.Page, error) {
	if s.closed.Load() {
		return nil, clipprune.Errorf(clipprune.EINVALID, "browser session is closed")
	}

	s.mu.Lock()
	if s.recycleAfter > 0 && s.tabs.Load() >= s.recycleAfter {
		s.recycle()
	}
	browser := s.browser
	s.mu.Unlock()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, clipprune.WrapError(clipprune.EFETCH, err, "open tab")
	}
	s.tabs.Add(1)
	return page, nil
}

// Tabs returns the number of tabs the current browser has served.
func (s *Session) Tabs() int64 {
	return s.tabs.Load()
}

// Close shuts the browser down. Close is safe to call multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := shutdown(s.browser, s.launcher)
	s.browser, s.launcher = nil, nil
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 once closed.
func (s *Session) LauncherPID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.launcher == nil {
		return 0
	}
	return s.launcher.PID()
}

// recycle swaps in a fresh browser. When the launch fails the old browser
// keeps serving. Must be called with mu held.
func (s *Session) recycle() {
	browser, l, err := launch()
	if err != nil {
		return
	}
	_ = shutdown(s.browser, s.launcher)
	s.browser, s.launcher = browser, l
	s.tabs.Store(0)
}

// launch starts headless Chrome with the flags that keep background tabs
// from being throttled while they load.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, clipprune.WrapError(clipprune.EINTERNAL, err, "launch browser")
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, clipprune.WrapError(clipprune.EINTERNAL, err, "connect to browser")
	}
	return browser, l, nil
}

func shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}
