package http

import (
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

const spaIndex = "index.html"

// spaHandler serves files from a static directory and falls back to index.html
// for any other GET or HEAD, so client-side routes resolve.
type spaHandler struct {
	fsys fs.FS
}

func newSPAHandler(dir string) http.Handler {
	if dir == "" {
		dir = "public"
	}
	return &spaHandler{fsys: os.DirFS(dir)}
}

func (h *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name != "" && name != spaIndex {
		if info, err := fs.Stat(h.fsys, name); err == nil && !info.IsDir() {
			http.ServeFileFS(w, r, h.fsys, name)
			return
		}
	}
	h.serveIndex(w, r)
}

func (h *spaHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	f, err := h.fsys.Open(spaIndex)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.NotFound(w, r)
		return
	}
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, spaIndex, info.ModTime(), rs)
}
