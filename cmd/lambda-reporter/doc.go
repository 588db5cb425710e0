// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// lambda-reporter is the AWS Lambda function that aggregates the statuses
// produced by lambda-monitor into a single report.
//
// # Event
//
// Either the lambda-monitor result or a bare JSON array of statuses.
//
// # Result
//
//	{"report": {"Valid": null}}
//	{"report": {"Invalid": "Found 1 issues.\nDomain example.com (network error: ...)"}}
package main
