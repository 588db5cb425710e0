// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/config"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/lambda"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

// newMonitor builds the handler from the environment.
func newMonitor() (*lambda.Monitor, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	return lambda.NewMonitor(cfg, logger.NewJSONLogger(os.Stdout, "lambda-monitor", false)), nil
}

func main() {
	m, err := newMonitor()
	if err != nil {
		logger.NewJSONLogger(os.Stderr, "lambda-monitor", false).Printf("Startup failed: %v", err)
		os.Exit(1)
	}
	awslambda.Start(m.Handle)
}
