// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package templates

import (
	"embed"
	"io/fs"
)

//go:embed *.md
var embeddedFS embed.FS

// Names of the embedded files.
const (
	Instructions     = "instructions.md"
	CertificateRules = "certificate-rules.md"
)

// EmbedFS abstracts [embed.FS] for read-only template access.
type EmbedFS interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(name string) ([]byte, error)

	// ReadDir reads the named directory and returns a list of directory entries.
	ReadDir(name string) ([]fs.DirEntry, error)
}

type embedFS struct{ fs embed.FS }

func (e *embedFS) ReadFile(name string) ([]byte, error)       { return e.fs.ReadFile(name) }
func (e *embedFS) ReadDir(name string) ([]fs.DirEntry, error) { return e.fs.ReadDir(name) }

// MagicEmbed is the embedded filesystem holding the server instructions
// template and the certificate rules documentation.
//
//	templateBytes, err := templates.MagicEmbed.ReadFile(templates.Instructions)
//	if err != nil {
//		return "", fmt.Errorf("failed to load instructions template: %w", err)
//	}
var MagicEmbed EmbedFS = &embedFS{fs: embeddedFS}
