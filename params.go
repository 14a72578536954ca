package main

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/apicheck/reqres-contract-tests/framework"

	"github.com/alessio/shellescape"
	"gopkg.in/ini.v1"
)

const (
	defaultBaseURL      = "https://reqres.in/"
	defaultAPIKeyHeader = "x-api-key"
	defaultAPIKey       = "reqres-free-v1"
	defaultDelaySeconds = 3
	defaultConfigFile   = "reqres.cfg"
)

// commandParams is the configuration of one run. Each value comes from, in increasing order of
// precedence: the built-in default, the config file, the environment, and the command line.
type commandParams struct {
	baseURL      string
	apiKey       string
	apiKeyHeader string
	delaySeconds int
	configFile   string
	filters      framework.RegexFilters
	debug        bool
	debugAll     bool

	apiKeyFromFlag bool
	getenv         func(string) string
}

type flagValues struct {
	baseURL      string
	apiKey       string
	apiKeyHeader string
	delaySeconds int
	configFile   string
	debug        bool
	debugAll     bool
}

func (c *commandParams) Read(args []string) error {
	if c.getenv == nil {
		c.getenv = os.Getenv
	}
	c.baseURL = defaultBaseURL
	c.apiKey = defaultAPIKey
	c.apiKeyHeader = defaultAPIKeyHeader
	c.delaySeconds = defaultDelaySeconds
	c.debug = true

	var fv flagValues
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&fv.baseURL, "url", defaultBaseURL, "base URL of the API under test")
	fs.StringVar(&fv.apiKey, "api-key", defaultAPIKey, "API key to send with every request (empty to send none)")
	fs.StringVar(&fv.apiKeyHeader, "api-key-header", defaultAPIKeyHeader, "header that carries the API key")
	fs.IntVar(&fv.delaySeconds, "delay", defaultDelaySeconds, "seconds of delay to request in the delayed response test")
	fs.StringVar(&fv.configFile, "config", "", "INI file to read settings from (default "+defaultConfigFile+" if present)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&fv.debug, "debug", true, "show requests and responses for failed tests")
	fs.BoolVar(&fv.debugAll, "debug-all", false, "show requests and responses for all tests")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	given := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })

	c.configFile = c.getenv("REQRES_CONFIG")
	if given["config"] {
		c.configFile = fv.configFile
	}
	if c.configFile == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			c.configFile = defaultConfigFile
		}
	}
	if c.configFile != "" {
		if err := c.readConfigFile(c.configFile); err != nil {
			return err
		}
	}

	if err := c.readEnvironment(); err != nil {
		return err
	}

	if given["url"] {
		c.baseURL = fv.baseURL
	}
	if given["api-key"] {
		c.apiKey = fv.apiKey
		c.apiKeyFromFlag = true
	}
	if given["api-key-header"] {
		c.apiKeyHeader = fv.apiKeyHeader
	}
	if given["delay"] {
		c.delaySeconds = fv.delaySeconds
	}
	if given["debug"] {
		c.debug = fv.debug
	}
	if given["debug-all"] {
		c.debugAll = fv.debugAll
	}

	return c.validate()
}

func (c *commandParams) readConfigFile(path string) error {
	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	api := cfg.Section("api")
	c.baseURL = api.Key("base_url").MustString(c.baseURL)
	if api.HasKey("api_key") {
		c.apiKey = api.Key("api_key").String()
	}
	c.apiKeyHeader = api.Key("api_key_header").MustString(c.apiKeyHeader)
	if api.HasKey("delay_seconds") {
		n, err := api.Key("delay_seconds").Int()
		if err != nil {
			return fmt.Errorf("invalid delay_seconds in %s: %w", path, err)
		}
		c.delaySeconds = n
	}

	output := cfg.Section("output")
	c.debug = output.Key("debug").MustBool(c.debug)
	c.debugAll = output.Key("debug_all").MustBool(c.debugAll)
	return nil
}

func (c *commandParams) readEnvironment() error {
	if s := c.getenv("REQRES_BASE_URL"); s != "" {
		c.baseURL = s
	}
	if s := c.getenv("REQRES_API_KEY"); s != "" {
		c.apiKey = s
	}
	if s := c.getenv("REQRES_DELAY_SECONDS"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid REQRES_DELAY_SECONDS: %w", err)
		}
		c.delaySeconds = n
	}
	return nil
}

func (c *commandParams) validate() error {
	u, err := url.Parse(c.baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL must be an absolute http or https URL, got %q", c.baseURL)
	}
	if c.delaySeconds < 1 {
		return fmt.Errorf("delay must be at least 1 second, got %d", c.delaySeconds)
	}
	if c.apiKey != "" && c.apiKeyHeader == "" {
		return errors.New("API key header name cannot be empty when an API key is set")
	}
	return nil
}

// rerunCommand returns a command line that runs only the specified tests, with the same target
// and options as this run. An API key that came from the config file or environment is left out,
// since it will be picked up from there again.
func (c *commandParams) rerunCommand(program string, tests []framework.TestID) string {
	var b commandBuilder
	b.add(program)
	if c.configFile != "" {
		b.add("-config", c.configFile)
	}
	b.add("-url", c.baseURL)
	if c.apiKeyHeader != defaultAPIKeyHeader {
		b.add("-api-key-header", c.apiKeyHeader)
	}
	if c.apiKeyFromFlag {
		b.add("-api-key", c.apiKey)
	}
	if c.delaySeconds != defaultDelaySeconds {
		b.add("-delay", strconv.Itoa(c.delaySeconds))
	}
	for _, id := range tests {
		b.add("-run", id.Pattern())
	}
	if !c.debug {
		b.add("-debug=false")
	}
	if c.debugAll {
		b.add("-debug-all")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
