package compression

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

type gzipResponseWriter struct {
	w  http.ResponseWriter
	zw *gzip.Writer
}

func NewCompressWriter(w http.ResponseWriter) *gzipResponseWriter {
	return &gzipResponseWriter{
		w:  w,
		zw: gzip.NewWriter(w),
	}
}

func (c *gzipResponseWriter) Header() http.Header {
	return c.w.Header()
}

func (c *gzipResponseWriter) Write(p []byte) (int, error) {
	return c.zw.Write(p)
}

func (c *gzipResponseWriter) WriteHeader(statusCode int) {
	c.w.Header().Set("Content-Encoding", "gzip")
	c.w.WriteHeader(statusCode)
}

func (c *gzipResponseWriter) Close() error {
	return c.zw.Close()
}

type gzipReadCloser struct {
	r  io.ReadCloser
	zr *gzip.Reader
}

func NewCompressReader(r io.ReadCloser) (*gzipReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return &gzipReadCloser{
		r:  r,
		zr: zr,
	}, nil
}

func (c *gzipReadCloser) Read(p []byte) (n int, err error) {
	return c.zr.Read(p)
}

func (c *gzipReadCloser) Close() error {
	if err := c.r.Close(); err != nil {
		return err
	}
	return c.zr.Close()
}

// GzipCompressDecompress compresses responses for clients that accept gzip
// and transparently decompresses gzipped request bodies. Not suitable for
// streaming responses.
func GzipCompressDecompress(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ow := w

		if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			cw := NewCompressWriter(w)
			ow = cw
			defer cw.Close()
		}

		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			cr, err := NewCompressReader(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			r.Body = cr
			defer cr.Close()
		}

		h.ServeHTTP(ow, r)
	}
}
