package browser

import (
	"fmt"
	"time"

	"github.com/adyen/swaglabs/internal/config"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

const seleniumPollInterval = 100 * time.Millisecond

// SeleniumDriver opens one remote WebDriver session per scenario
type SeleniumDriver struct {
	endpoint string
	caps     selenium.Capabilities
	timeout  time.Duration
}

// NewSeleniumDriver prepares capabilities for a remote WebDriver endpoint
// such as a Selenium Grid hub. No browser is started until NewSession.
func NewSeleniumDriver(cfg *config.BrowserConfig) (*SeleniumDriver, error) {
	var caps selenium.Capabilities
	switch cfg.Browser {
	case config.BrowserChromium:
		caps = selenium.Capabilities{"browserName": "chrome"}
		var args []string
		if cfg.Headless {
			args = append(args, "--headless=new", "--no-sandbox")
		}
		caps.AddChrome(chrome.Capabilities{Args: args, W3C: true})
	case config.BrowserFirefox:
		caps = selenium.Capabilities{"browserName": "firefox"}
		var args []string
		if cfg.Headless {
			args = append(args, "-headless")
		}
		caps.AddFirefox(firefox.Capabilities{Args: args})
	default:
		return nil, fmt.Errorf("selenium driver does not support %q", cfg.Browser)
	}

	return &SeleniumDriver{
		endpoint: cfg.SeleniumURL,
		caps:     caps,
		timeout:  cfg.Timeout,
	}, nil
}

// NewSession starts a new WebDriver session on the remote endpoint
func (d *SeleniumDriver) NewSession() (Session, error) {
	wd, err := selenium.NewRemote(d.caps, d.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to start WebDriver session: %w", err)
	}

	// Waiting is done by Locator so Count stays non-blocking
	if err := wd.SetImplicitWaitTimeout(0); err != nil {
		wd.Quit()
		return nil, fmt.Errorf("failed to set implicit wait: %w", err)
	}
	if err := wd.SetPageLoadTimeout(d.timeout); err != nil {
		wd.Quit()
		return nil, fmt.Errorf("failed to set page load timeout: %w", err)
	}

	return &seleniumSession{wd: wd, timeout: d.timeout}, nil
}

// Close is a no-op; sessions own their remote browsers.
func (d *SeleniumDriver) Close() error {
	return nil
}

type seleniumSession struct {
	wd      selenium.WebDriver
	timeout time.Duration
}

func (s *seleniumSession) wait(what string, attempt func() (bool, error)) error {
	var attemptErr error
	err := s.wd.WaitWithTimeoutAndInterval(func(selenium.WebDriver) (bool, error) {
		done, err := attempt()
		if err != nil {
			attemptErr = err
			return false, err
		}
		return done, nil
	}, s.timeout, seleniumPollInterval)

	if attemptErr != nil {
		return attemptErr
	}
	if err != nil {
		return timeoutError(what)
	}
	return nil
}

func (s *seleniumSession) Navigate(url string) error {
	if err := s.wd.Get(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *seleniumSession) Title() (string, error) {
	return s.wd.Title()
}

func (s *seleniumSession) URL() string {
	url, err := s.wd.CurrentURL()
	if err != nil {
		return ""
	}
	return url
}

// Find queries the current document without waiting
func (s *seleniumSession) Find(selector string) ([]Element, error) {
	els, err := s.wd.FindElements(selenium.ByCSSSelector, selector)
	if err != nil {
		return nil, err
	}
	return wrapSeleniumElements(els), nil
}

func (s *seleniumSession) Locate(selector string) Locator {
	return NewLocator(s, selector, s.wait)
}

func (s *seleniumSession) Fill(selector, value string) error {
	return s.Locate(selector).Fill(value)
}

func (s *seleniumSession) Click(selector string) error {
	return s.Locate(selector).Click()
}

func (s *seleniumSession) ExpectTitle(want string) error {
	err := s.wait("title", func() (bool, error) {
		title, err := s.wd.Title()
		return err == nil && title == want, nil
	})
	if err != nil {
		title, _ := s.wd.Title()
		return expectationError("title", want, title)
	}
	return nil
}

func (s *seleniumSession) ExpectURL(want string) error {
	err := s.wait("url", func() (bool, error) {
		return s.URL() == want, nil
	})
	if err != nil {
		return expectationError("url", want, s.URL())
	}
	return nil
}

func (s *seleniumSession) Close() error {
	return s.wd.Quit()
}

type seleniumElement struct {
	el selenium.WebElement
}

func wrapSeleniumElements(els []selenium.WebElement) []Element {
	wrapped := make([]Element, len(els))
	for i, el := range els {
		wrapped[i] = &seleniumElement{el: el}
	}
	return wrapped
}

func (e *seleniumElement) Find(selector string) ([]Element, error) {
	els, err := e.el.FindElements(selenium.ByCSSSelector, selector)
	if err != nil {
		return nil, err
	}
	return wrapSeleniumElements(els), nil
}

func (e *seleniumElement) Text() (string, error) {
	return e.el.Text()
}

func (e *seleniumElement) Click() error {
	return e.el.Click()
}

func (e *seleniumElement) Fill(value string) error {
	if err := e.el.Clear(); err != nil {
		return err
	}
	return e.el.SendKeys(value)
}
