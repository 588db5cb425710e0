// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package lambda implements the AWS Lambda handlers of the monitor.
//
// The monitor handler reads a domain list from S3, checks every domain and
// returns the per-domain statuses together with the invocation's request ID.
// The reporter handler takes such a response and reduces it to a report.
// The two are meant to be chained, for example by a Step Functions state
// machine or an EventBridge pipe, with the reporter's output routed to
// alerting.
package lambda
