package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Goto navigates a page and waits for DOMContentLoaded.
func Goto(page playwright.Page, url string, timeout time.Duration) error {
	_, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// WaitVisible waits for the first match of selector to become visible and
// returns its locator. On failure the error carries the page URL and title
// for diagnosis.
func WaitVisible(page playwright.Page, selector string, timeout time.Duration) (playwright.Locator, error) {
	first := page.Locator(selector).First()
	err := first.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		title, _ := page.Title()
		return nil, fmt.Errorf("wait for %q (url=%s title=%q): %w", selector, page.URL(), title, err)
	}
	return first, nil
}

// Fill waits for selector and fills it.
func Fill(page playwright.Page, selector, value string, timeout time.Duration) error {
	locator, err := WaitVisible(page, selector, timeout)
	if err != nil {
		return err
	}
	if err := locator.Fill(value); err != nil {
		return fmt.Errorf("fill %q: %w", selector, err)
	}
	return nil
}

// Click waits for selector and clicks it.
func Click(page playwright.Page, selector string, timeout time.Duration) error {
	locator, err := WaitVisible(page, selector, timeout)
	if err != nil {
		return err
	}
	if err := locator.Click(); err != nil {
		return fmt.Errorf("click %q: %w", selector, err)
	}
	return nil
}

// Press waits for selector and sends a key press to it.
func Press(page playwright.Page, selector, key string, timeout time.Duration) error {
	locator, err := WaitVisible(page, selector, timeout)
	if err != nil {
		return err
	}
	if err := locator.Press(key); err != nil {
		return fmt.Errorf("press %s on %q: %w", key, selector, err)
	}
	return nil
}
