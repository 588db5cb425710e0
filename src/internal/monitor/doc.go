// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package monitor checks domains end to end: it fetches each domain's
// certificate chain, validates it under a shared policy and turns every
// outcome, including failures, into a [Status] record.
//
// Batches run concurrently with a bounded number of workers and results are
// returned in input order. A failing domain never affects its siblings.
package monitor
