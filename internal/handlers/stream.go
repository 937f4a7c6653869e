package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// relayEventStream pipes an established upstream event stream to the
// caller byte for byte. No parsing, no buffering past the copy chunk, no
// heartbeat, no reconnect: if upstream stalls or drops, so does the
// client-facing stream.
func relayEventStream(c *gin.Context, resp *http.Response, disableProxyBuffering bool) {
	defer resp.Body.Close()

	header := c.Writer.Header()
	for key, values := range resp.Header {
		if skipRelayHeader(key) {
			continue
		}
		for _, value := range values {
			header.Add(key, value)
		}
	}
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	if disableProxyBuffering {
		header.Set("X-Accel-Buffering", "no")
	}

	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := c.Writer.Write(buf[:n]); werr != nil {
				return
			}
			c.Writer.Flush()
		}
		if err != nil {
			return
		}
	}
}

// Hop-by-hop and framing headers must not be copied through; the relay
// writes its own framing.
func skipRelayHeader(key string) bool {
	switch strings.ToLower(key) {
	case "content-length", "transfer-encoding", "connection", "keep-alive", "content-type", "cache-control":
		return true
	}
	return false
}

// readErrorText drains whatever error text an unestablished stream carried.
func readErrorText(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return ""
	}
	return string(data)
}
