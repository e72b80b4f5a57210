package jd

import (
	"compress/gzip"
	"compress/zlib"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strings"

	perr "reviewharvest/internal/platform/errors"

	"github.com/andybalholm/brotli"
	"golang.org/x/text/encoding/htmlindex"
)

// readBody undoes Content-Encoding; setting Accept-Encoding by hand disables the transport's own gzip
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "", "identity":
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeDecode, "jd gzip body")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	case "deflate":
		zr, err := zlib.NewReader(resp.Body)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeDecode, "jd deflate body")
		}
		defer func() { _ = zr.Close() }()
		r = zr
	case "br":
		r = brotli.NewReader(resp.Body)
	default:
		return nil, perr.Decodef("jd unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}

	b, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "jd read body")
	}
	if len(b) > maxBodyBytes {
		return nil, perr.Decodef("jd body exceeds %d bytes", maxBodyBytes)
	}
	return b, nil
}

var metaCharsetRE = regexp.MustCompile(`(?i)<meta[^>]+charset=["']?([a-z0-9_\-]+)`)

// charsetOf finds the declared charset from the header, then from a meta tag in the head of the body
func charsetOf(body []byte, contentType string) string {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if cs := params["charset"]; cs != "" {
			return cs
		}
	}
	head := body
	if len(head) > 2048 {
		head = head[:2048]
	}
	if m := metaCharsetRE.FindSubmatch(head); m != nil {
		return string(m[1])
	}
	return ""
}

// toUTF8 transcodes GBK and friends; unknown or utf-8 labels pass through
func toUTF8(body []byte, contentType string) ([]byte, error) {
	label := charsetOf(body, contentType)
	if label == "" {
		return body, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return body, nil
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return body, nil
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDecode, "jd %s body", label)
	}
	return out, nil
}
