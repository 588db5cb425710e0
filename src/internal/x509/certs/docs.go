// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs decodes and encodes [X.509] certificates.
// Single certificates received from a TLS peer are decoded strictly from DER,
// while local bundles may be [PEM], concatenated DER, or [PKCS7]. The chain
// validator and the offline chain command both decode through this package.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
