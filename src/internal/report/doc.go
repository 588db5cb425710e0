// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package report reduces a batch of domain statuses to a single pass or
// fail [Report].
//
// A Report is either valid, carrying nothing, or invalid, carrying a
// human-readable message listing every failing domain in input order. On the
// wire it keeps the externally tagged shape {"Valid":null} or
// {"Invalid":"..."} so existing consumers of the reporter keep working.
//
// Status batches received from outside the process are checked against an
// embedded JSON schema before they are decoded.
package report
