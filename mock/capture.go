package mock

import "context"

// Capturer scripted state capturer for tests
type Capturer struct {
	ScreenshotPNGFn     func(ctx context.Context) ([]byte, error)
	ScreenshotPNGCalled bool

	PageSourceFn     func(ctx context.Context) (string, string, error)
	PageSourceCalled bool
}

func (c *Capturer) ScreenshotPNG(ctx context.Context) ([]byte, error) {
	c.ScreenshotPNGCalled = true
	return c.ScreenshotPNGFn(ctx)
}

func (c *Capturer) PageSource(ctx context.Context) (string, string, error) {
	c.PageSourceCalled = true
	return c.PageSourceFn(ctx)
}

// MakeMockCapturer returns a capturer with canned data.
func MakeMockCapturer() *Capturer {
	c := &Capturer{}
	c.ScreenshotPNGFn = func(ctx context.Context) ([]byte, error) {
		return []byte("png-bytes"), nil
	}
	c.PageSourceFn = func(ctx context.Context) (string, string, error) {
		return "<html></html>", "html", nil
	}
	return c
}

// Sink scripted artifact sink for tests
type Sink struct {
	SaveScreenshotFn     func(png []byte, label string) (string, error)
	SaveScreenshotCalled bool

	SavePageSourceFn     func(source, ext, label string) (string, error)
	SavePageSourceCalled bool
}

func (s *Sink) SaveScreenshot(png []byte, label string) (string, error) {
	s.SaveScreenshotCalled = true
	return s.SaveScreenshotFn(png, label)
}

func (s *Sink) SavePageSource(source, ext, label string) (string, error) {
	s.SavePageSourceCalled = true
	return s.SavePageSourceFn(source, ext, label)
}

// MakeMockSink returns a sink that accepts everything.
func MakeMockSink() *Sink {
	s := &Sink{}
	s.SaveScreenshotFn = func(png []byte, label string) (string, error) {
		return "/tmp/" + label + ".png", nil
	}
	s.SavePageSourceFn = func(source, ext, label string) (string, error) {
		return "/tmp/" + label + "." + ext, nil
	}
	return s
}
