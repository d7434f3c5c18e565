package middleware

import (
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// CompressConfig picks the encoder levels. Zstd wins when the client accepts
// both.
type CompressConfig struct {
	GzipLevel int
	ZstdLevel zstd.EncoderLevel
}

var DefaultCompressConfig = CompressConfig{
	GzipLevel: gzip.DefaultCompression,
	ZstdLevel: zstd.SpeedFastest,
}

// Compression is NewCompression(DefaultCompressConfig).
var Compression = NewCompression(DefaultCompressConfig)

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade") ||
		r.Header.Get("Upgrade") != ""
}

// 1xx, 204 and 304 carry no body, so no encoder footer either.
func isNoBodyStatus(code int) bool {
	return (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified
}

type encoderPools struct {
	cfg  CompressConfig
	gzip sync.Pool
	zstd sync.Pool
}

func (p *encoderPools) getZstd(w io.Writer) (*zstd.Encoder, error) {
	if v := p.zstd.Get(); v != nil {
		zw := v.(*zstd.Encoder)
		zw.Reset(w)
		return zw, nil
	}
	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(p.cfg.ZstdLevel),
		zstd.WithEncoderConcurrency(1),
	)
}

func (p *encoderPools) putZstd(zw *zstd.Encoder) {
	_ = zw.Close()
	p.zstd.Put(zw)
}

func (p *encoderPools) getGzip(w io.Writer) (*gzip.Writer, error) {
	if v := p.gzip.Get(); v != nil {
		gw := v.(*gzip.Writer)
		gw.Reset(w)
		return gw, nil
	}
	return gzip.NewWriterLevel(w, p.cfg.GzipLevel)
}

func (p *encoderPools) putGzip(gw *gzip.Writer) {
	_ = gw.Close()
	p.gzip.Put(gw)
}

type compressResponseWriter struct {
	http.ResponseWriter
	w        io.Writer // *gzip.Writer or *zstd.Encoder
	disabled bool      // set once a bodiless status is written
}

func (cw *compressResponseWriter) Write(b []byte) (int, error) {
	if cw.disabled {
		return cw.ResponseWriter.Write(b)
	}
	// the compressed length is unknown until Close
	cw.Header().Del("Content-Length")
	if cw.Header().Get("Content-Type") == "" {
		cw.Header().Set("Content-Type", http.DetectContentType(b))
	}
	return cw.w.Write(b)
}

func (cw *compressResponseWriter) WriteHeader(code int) {
	cw.Header().Del("Content-Length")
	if isNoBodyStatus(code) {
		cw.disabled = true
		cw.Header().Del("Content-Encoding")
		cw.Header().Del("Vary")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressResponseWriter) Flush() {
	if !cw.disabled {
		if f, ok := cw.w.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not support Hijacker")
	}
	return hj.Hijack()
}

// NewCompression returns a middleware that zstd- or gzip-encodes responses
// according to Accept-Encoding. HEAD, websocket upgrades and responses that
// are already encoded pass through untouched.
func NewCompression(cfg CompressConfig) func(http.Handler) http.Handler {
	pools := &encoderPools{cfg: cfg}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || isWebSocketUpgrade(r) || w.Header().Get("Content-Encoding") != "" {
				next.ServeHTTP(w, r)
				return
			}

			accept := r.Header.Get("Accept-Encoding")
			switch {
			case strings.Contains(accept, "zstd"):
				zw, err := pools.getZstd(w)
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}
				w.Header().Set("Content-Encoding", "zstd")
				w.Header().Add("Vary", "Accept-Encoding")
				cw := &compressResponseWriter{ResponseWriter: w, w: zw}
				defer func() {
					// a bodiless response must not receive the frame footer
					if cw.disabled {
						zw.Reset(io.Discard)
					}
					pools.putZstd(zw)
				}()
				next.ServeHTTP(cw, r)

			case strings.Contains(accept, "gzip"):
				gw, err := pools.getGzip(w)
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}
				w.Header().Set("Content-Encoding", "gzip")
				w.Header().Add("Vary", "Accept-Encoding")
				cw := &compressResponseWriter{ResponseWriter: w, w: gw}
				defer func() {
					if cw.disabled {
						gw.Reset(io.Discard)
					}
					pools.putGzip(gw)
				}()
				next.ServeHTTP(cw, r)

			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
