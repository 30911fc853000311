package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Writer and reader pools amortize gzip state allocation across requests.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGZip transparently decompresses gzip request bodies and compresses
// responses for clients that send Accept-Encoding: gzip.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		clientAcceptsGzip := strings.Contains(req.Header.Get("Accept-Encoding"), "gzip")
		bodyIsGzip := strings.Contains(req.Header.Get("Content-Encoding"), "gzip")

		if bodyIsGzip && req.Body != nil {
			reader := gzipReaderPool.Get().(*gzip.Reader)
			if err := reader.Reset(req.Body); err != nil {
				gzipReaderPool.Put(reader)
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}

			req.Body = &wrappedReadCloser{
				Reader: reader,
				OnClose: func() {
					reader.Close()
					gzipReaderPool.Put(reader)
				},
			}
			// Downstream handlers see a plain body.
			req.Header.Del("Content-Encoding")
		}

		if !clientAcceptsGzip {
			next.ServeHTTP(w, req)
			return
		}

		writer := gzipWriterPool.Get().(*gzip.Writer)
		writer.Reset(w)

		next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, gzipWriter: writer}, req)

		writer.Close()
		gzipWriterPool.Put(writer)
	})
}

// wrappedReadCloser lets the pooled gzip reader be returned to its pool
// when the request body is closed.
type wrappedReadCloser struct {
	io.Reader
	OnClose func()
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil {
		w.OnClose()
	}
	return nil
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzipWriter.Write(data)
}

func (w *gzipResponseWriter) Close() error {
	return w.gzipWriter.Close()
}
