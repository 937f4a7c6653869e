// Package sniffer detects the real content type of mirrored asset bytes;
// the generation service's CDN is not trusted to label them.
package sniffer

import (
	"bytes"
	"net/http"
	"strings"
)

const FallbackMIME = "application/octet-stream"

// DetectMIME sniffs the leading bytes of a downloaded asset. Unknown
// payloads fall back to an opaque type rather than an error; the mirror
// stores them either way.
func DetectMIME(head []byte) string {
	switch {
	case isJPEG(head):
		return "image/jpeg"
	case isPNG(head):
		return "image/png"
	case isGIF(head):
		return "image/gif"
	case isWEBP(head):
		return "image/webp"
	default:
		return FallbackMIME
	}
}

func isJPEG(head []byte) bool {
	return len(head) > 3 &&
		head[0] == 0xff &&
		head[1] == 0xd8 &&
		head[2] == 0xff
}

func isPNG(head []byte) bool {
	pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return len(head) >= len(pngMagic) && bytes.Equal(head[:len(pngMagic)], pngMagic)
}

func isGIF(head []byte) bool {
	return len(head) >= 6 && (bytes.Equal(head[:6], []byte("GIF87a")) || bytes.Equal(head[:6], []byte("GIF89a")))
}

func isWEBP(head []byte) bool {
	return len(head) >= 12 &&
		bytes.Equal(head[:4], []byte("RIFF")) &&
		bytes.Equal(head[8:12], []byte("WEBP"))
}

// MimeTypeFromHTTP strips parameters off a Content-Type header.
func MimeTypeFromHTTP(header http.Header) string {
	contentType := header.Get("Content-Type")
	if contentType == "" {
		return ""
	}
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		return strings.TrimSpace(contentType[:idx])
	}
	return strings.TrimSpace(contentType)
}
