package main

import (
	"fmt"
	"log"
	"os"

	"github.com/apicheck/reqres-contract-tests/client"
	"github.com/apicheck/reqres-contract-tests/framework"
	"github.com/apicheck/reqres-contract-tests/reqrestests"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

const appName = "reqres-contract-tests"

var version = "dev"

func main() {
	var params commandParams
	if err := params.Read(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		os.Exit(1)
	}

	var loggers ldlog.Loggers
	loggers.SetBaseLogger(log.New(os.Stdout, "", log.LstdFlags))
	loggers.SetMinLevel(ldlog.Info)
	if params.debugAll {
		loggers.SetMinLevel(ldlog.Debug)
	}

	apiClient, err := client.NewClient(client.Config{
		BaseURL: params.baseURL,
		RequestHooks: []client.RequestHook{
			client.UserAgent(appName, version),
			client.APIKey(params.apiKeyHeader, params.apiKey),
			client.RequestID(),
		},
	})
	if err != nil {
		loggers.Errorf("Could not create API client: %s", err)
		os.Exit(1)
	}

	if params.configFile != "" {
		loggers.Infof("Read settings from %s", params.configFile)
	}
	loggers.Infof("Testing API at %s", apiClient.BaseURL())
	if params.apiKey == "" {
		loggers.Warn("No API key is configured; the API may reject requests")
	} else {
		loggers.Debugf("Sending API key in %s header", params.apiKeyHeader)
	}
	loggers.Debugf("Delayed response test will request %d seconds", params.delaySeconds)

	fmt.Println()
	framework.PrintFilterDescription(params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := reqrestests.RunTestSuite(
		apiClient,
		reqrestests.Options{DelaySeconds: params.delaySeconds},
		params.filters.AsFilter,
		testLogger,
	)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed tests again:")
		fmt.Printf("  %s\n", params.rerunCommand(os.Args[0], results.FailedIDs()))
		os.Exit(1)
	}
}
