// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// lambda-monitor is the AWS Lambda function that checks the domains listed
// at an S3 location and returns their statuses.
//
// # Event
//
//	{"s3_config_location": "s3://bucket/domains.txt"}
//
// An empty location falls back to CERT_MONITOR_DOMAINS_LOCATION or the
// configuration file named by CERT_MONITOR_CONFIG_FILE.
//
// # Result
//
//	{"req_id": "...", "statuses": [{"domain": "...", "valid": true, "error": ""}]}
//
// The result is meant to be passed to lambda-reporter, for example by a Step
// Functions state machine.
package main
