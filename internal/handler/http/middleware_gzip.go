// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Writers and readers are pooled; a vault export can be large and the TUI
// client polls the entry list, so allocation per request adds up.
var (
	gzipWriterPool = sync.Pool{
		New: func() any { return gzip.NewWriter(nil) },
	}
	gzipReaderPool = sync.Pool{
		New: func() any { return new(gzip.Reader) },
	}
)

// withGZip decompresses gzip request bodies and compresses responses for
// clients that send Accept-Encoding: gzip. Clients that do neither pass
// through untouched.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.Header.Get("Content-Encoding"), "gzip") && req.Body != nil {
			if !inflateRequestBody(w, req) {
				return
			}
		}

		if !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, req)
			return
		}

		zw := gzipWriterPool.Get().(*gzip.Writer)
		zw.Reset(w)

		next.ServeHTTP(&compressedResponseWriter{ResponseWriter: w, zw: zw}, req)

		zw.Close()
		gzipWriterPool.Put(zw)
	})
}

// inflateRequestBody swaps the request body for its decompressed form.
// Reports false after writing a 400 response when the body is not valid
// gzip data.
func inflateRequestBody(w http.ResponseWriter, req *http.Request) bool {
	zr := gzipReaderPool.Get().(*gzip.Reader)
	if err := zr.Reset(req.Body); err != nil {
		gzipReaderPool.Put(zr)
		http.Error(w, "Invalid gzip data", http.StatusBadRequest)
		return false
	}

	req.Body = &pooledBodyReader{Reader: zr, release: func() {
		zr.Close()
		gzipReaderPool.Put(zr)
	}}
	req.Header.Del("Content-Encoding")

	return true
}

// pooledBodyReader returns its gzip reader to the pool when the handler
// closes the body.
type pooledBodyReader struct {
	io.Reader
	release func()
}

func (r *pooledBodyReader) Close() error {
	if r.release != nil {
		r.release()
		r.release = nil
	}
	return nil
}

type compressedResponseWriter struct {
	http.ResponseWriter
	zw *gzip.Writer
}

func (w *compressedResponseWriter) WriteHeader(statusCode int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *compressedResponseWriter) Write(data []byte) (int, error) {
	return w.zw.Write(data)
}
