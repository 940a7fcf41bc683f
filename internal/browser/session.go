// Package browser drives a headless Chrome through the HermessApp login and birthday pages
// and hands back the rendered HTML.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

const (
	loginFormSelector = "form[action*='login']"
	emailSelector     = "input[name='email']"
	passwordSelector  = "input[name='password']"
	submitSelector    = "button[type='submit']"
)

// Config holds browser configuration.
type Config struct {
	Bin               string
	ControlURL        string
	Headless          bool
	ViewportWidth     int
	ViewportHeight    int
	UserAgent         string
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
}

// DefaultConfig returns the settings the bot has always run with.
func DefaultConfig() Config {
	return Config{
		Headless:          true,
		ViewportWidth:     1920,
		ViewportHeight:    1080,
		UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		NavigationTimeout: 10 * time.Second,
		SettleDelay:       3 * time.Second,
	}
}

// Target holds the credentials and pages for one run.
type Target struct {
	Email        string
	Password     string
	LoginURL     string
	BirthdaysURL string
}

// Page is a rendered page snapshot.
type Page struct {
	URL   string
	Title string
	HTML  string
}

// Session owns one Chrome instance and a single tab.
type Session struct {
	cfg      Config
	target   Target
	logger   *zap.Logger
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func NewSession(cfg Config, target Target, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{cfg: cfg, target: target, logger: logger}
}

// Open launches (or connects to) Chrome and opens a blank tab.
func (s *Session) Open(ctx context.Context) error {
	controlURL := s.cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().
			Headless(s.cfg.Headless).
			Set(flags.Flag("no-sandbox")).
			Set(flags.Flag("disable-dev-shm-usage")).
			Set(flags.Flag("disable-gpu")).
			Set(flags.Flag("window-size"), fmt.Sprintf("%d,%d", s.cfg.ViewportWidth, s.cfg.ViewportHeight))
		if s.cfg.UserAgent != "" {
			l = l.Set(flags.Flag("user-agent"), s.cfg.UserAgent)
		}
		if s.cfg.Bin != "" {
			l = l.Bin(s.cfg.Bin)
		}

		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("launch chrome: %w", err)
		}
		s.launcher = l
		controlURL = u
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}
	s.browser = b

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             s.cfg.ViewportWidth,
		Height:            s.cfg.ViewportHeight,
		DeviceScaleFactor: 1.0,
	}).Call(page); err != nil {
		s.logger.Warn("Failed to set viewport", zap.Error(err))
	}
	s.page = page

	s.logger.Debug("Browser ready", zap.Bool("headless", s.cfg.Headless))
	return nil
}

// Login submits the HermessApp login form.
func (s *Session) Login(ctx context.Context) error {
	if s.page == nil {
		return errors.New("browser session not open")
	}
	s.logger.Info("Logging in", zap.String("url", s.target.LoginURL))

	p := s.page.Context(ctx).Timeout(s.cfg.NavigationTimeout)
	if err := p.Navigate(s.target.LoginURL); err != nil {
		return fmt.Errorf("navigate to login page: %w", err)
	}
	if _, err := p.Element(loginFormSelector); err != nil {
		return fmt.Errorf("login form not found: %w", err)
	}

	if err := fill(p, emailSelector, s.target.Email); err != nil {
		return err
	}
	if err := fill(p, passwordSelector, s.target.Password); err != nil {
		return err
	}

	submit, err := p.Element(submitSelector)
	if err != nil {
		return fmt.Errorf("submit button not found: %w", err)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click submit: %w", err)
	}

	if err := s.settle(ctx); err != nil {
		return err
	}
	s.logger.Info("Logged in")
	return nil
}

// BirthdaysPage navigates to the birthday list and returns its rendered HTML.
func (s *Session) BirthdaysPage(ctx context.Context) (*Page, error) {
	if s.page == nil {
		return nil, errors.New("browser session not open")
	}
	s.logger.Info("Opening birthdays page", zap.String("url", s.target.BirthdaysURL))

	p := s.page.Context(ctx).Timeout(s.cfg.NavigationTimeout)
	if err := p.Navigate(s.target.BirthdaysURL); err != nil {
		return nil, fmt.Errorf("navigate to birthdays page: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		s.logger.Warn("Birthdays page load wait failed", zap.Error(err))
	}
	if err := s.settle(ctx); err != nil {
		return nil, err
	}

	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return nil, fmt.Errorf("read birthdays page HTML: %w", err)
	}

	out := &Page{URL: s.target.BirthdaysURL, HTML: html}
	if info, err := s.page.Info(); err == nil {
		out.Title = info.Title
		out.URL = info.URL
	}
	return out, nil
}

// Fetch opens the browser, logs in and returns the birthdays page.
func (s *Session) Fetch(ctx context.Context) (*Page, error) {
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	if err := s.Login(ctx); err != nil {
		return nil, err
	}
	return s.BirthdaysPage(ctx)
}

// Close shuts the tab, the browser and any launched process.
func (s *Session) Close() error {
	var err error
	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
		s.launcher = nil
	}
	s.logger.Info("Browser closed")
	return err
}

func (s *Session) settle(ctx context.Context) error {
	if s.cfg.SettleDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.cfg.SettleDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func fill(p *rod.Page, selector, value string) error {
	el, err := p.Element(selector)
	if err != nil {
		return fmt.Errorf("field %s not found: %w", selector, err)
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("clear field %s: %w", selector, err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("type into field %s: %w", selector, err)
	}
	return nil
}
