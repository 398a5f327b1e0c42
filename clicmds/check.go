package clicmds

import (
	"context"
	"io/ioutil"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/uiwait/artifact"
	"gitlab.com/uiwait/driver/web"
	"gitlab.com/uiwait/uiwait"
	"gitlab.com/uiwait/waiter"
)

// CheckConfig drives one check run. Loaded from a TOML file or assembled
// from flags; flags win over the file.
type CheckConfig struct {
	URL         string
	Selectors   []string
	By          string
	Timeout     string
	Interval    string
	ChromePath  string
	ChromeTmp   string
	ArtifactDir string
}

// CheckFlags for the check command
func CheckFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "page to check",
			Value: "http://localhost/",
		},
		&cli.StringSliceFlag{
			Name:  "selector",
			Usage: "locator value to assert present (repeatable)",
		},
		&cli.StringFlag{
			Name:  "by",
			Usage: "lookup strategy: id, name, css, xpath",
			Value: "css",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "hard deadline per assertion",
			Value: uiwait.DefaultTimeout,
		},
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "poll interval",
			Value: uiwait.DefaultInterval,
		},
		&cli.StringFlag{
			Name:  "chromepath",
			Usage: "path to a chromium binary, empty to autodetect",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "chrometmp",
			Usage: "profile temp directory",
			Value: "/tmp/uiwait/",
		},
		&cli.StringFlag{
			Name:  "artifacts",
			Usage: "directory for failure screenshots/page sources",
			Value: "uiwaittmp",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "TOML config to use instead of flags",
			Value: "",
		},
	}
}

// Check navigates a browser to a page and runs a blocking presence
// assertion for every selector. Exits non-zero when an assertion times
// out, so it slots into CI as a smoke check.
func Check(ctx *cli.Context) error {
	cfg, err := checkConfigFrom(ctx)
	if err != nil {
		return err
	}
	by, err := parseBy(cfg.By)
	if err != nil {
		return err
	}
	timeout, interval, err := parseDurations(cfg)
	if err != nil {
		return err
	}

	chromePath := cfg.ChromePath
	tmp := cfg.ChromeTmp
	if chromePath == "" {
		chromePath, tmp = web.FindChrome()
		if cfg.ChromeTmp != "" {
			tmp = cfg.ChromeTmp
		}
	}

	driver, err := web.Launch(chromePath, tmp, "9022")
	if err != nil {
		return err
	}
	defer driver.Close()

	bg := context.Background()
	if err := driver.Navigate(bg, cfg.URL); err != nil {
		return err
	}

	w := waiter.New(driver, uiwait.Config{Timeout: timeout, Interval: interval})
	w.SetDisplayed(web.Displayed)
	if store, serr := artifact.NewStore(cfg.ArtifactDir); serr != nil {
		log.Warn().Err(serr).Msg("artifact store unavailable, captures disabled")
	} else {
		w.SetCapture(driver, store)
	}

	failed := 0
	for _, sel := range cfg.Selectors {
		loc := uiwait.NewLocator(by, sel)
		start := time.Now()
		if _, aerr := w.AssertPresent(bg, loc); aerr != nil {
			if !uiwait.IsTimeout(aerr) {
				return aerr
			}
			log.Error().Str("locator", loc.String()).Dur("waited", time.Since(start)).Msg("assertion failed")
			failed++
			continue
		}
		log.Info().Str("locator", loc.String()).Dur("waited", time.Since(start)).Msg("present")
	}
	if failed > 0 {
		return errors.Errorf("%d of %d assertions failed", failed, len(cfg.Selectors))
	}
	return nil
}

func checkConfigFrom(ctx *cli.Context) (*CheckConfig, error) {
	cfg := &CheckConfig{
		URL:         ctx.String("url"),
		Selectors:   ctx.StringSlice("selector"),
		By:          ctx.String("by"),
		Timeout:     ctx.Duration("timeout").String(),
		Interval:    ctx.Duration("interval").String(),
		ChromePath:  ctx.String("chromepath"),
		ChromeTmp:   ctx.String("chrometmp"),
		ArtifactDir: ctx.String("artifacts"),
	}
	if ctx.String("config") == "" {
		return cfg, nil
	}
	data, err := ioutil.ReadFile(ctx.String("config"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	return LoadCheckConfig(data, cfg)
}

// LoadCheckConfig parses a TOML config, filling unset fields from base.
func LoadCheckConfig(data []byte, base *CheckConfig) (*CheckConfig, error) {
	cfg := &CheckConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if cfg.URL == "" {
		cfg.URL = base.URL
	}
	if len(cfg.Selectors) == 0 {
		cfg.Selectors = base.Selectors
	}
	if cfg.By == "" {
		cfg.By = base.By
	}
	if cfg.Timeout == "" {
		cfg.Timeout = base.Timeout
	}
	if cfg.Interval == "" {
		cfg.Interval = base.Interval
	}
	if cfg.ChromePath == "" {
		cfg.ChromePath = base.ChromePath
	}
	if cfg.ChromeTmp == "" {
		cfg.ChromeTmp = base.ChromeTmp
	}
	if cfg.ArtifactDir == "" {
		cfg.ArtifactDir = base.ArtifactDir
	}
	return cfg, nil
}

func parseBy(s string) (uiwait.By, error) {
	switch s {
	case "id":
		return uiwait.ByID, nil
	case "name":
		return uiwait.ByName, nil
	case "css", "":
		return uiwait.ByCSS, nil
	case "xpath":
		return uiwait.ByXPath, nil
	}
	return 0, errors.Errorf("unknown lookup strategy %q", s)
}

func parseDurations(cfg *CheckConfig) (timeout, interval time.Duration, err error) {
	timeout, err = time.ParseDuration(cfg.Timeout)
	if err != nil {
		return 0, 0, errors.Wrap(err, "bad timeout")
	}
	interval, err = time.ParseDuration(cfg.Interval)
	if err != nil {
		return 0, 0, errors.Wrap(err, "bad interval")
	}
	return timeout, interval, nil
}
