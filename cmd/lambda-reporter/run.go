// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/lambda"
	"github.com/H0llyW00dzZ/tls-cert-expiry-monitor/src/logger"
)

func main() {
	r := &lambda.Reporter{Logger: logger.NewJSONLogger(os.Stdout, "lambda-reporter", false)}
	awslambda.Start(r.Handle)
}
