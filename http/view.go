package http

import (
	"bytes"
	"net/http"

	"github.com/fwojciec/menuboard"
)

type pageView struct {
	Mode     menuboard.Mode
	Warnings []string
	Notice   string

	Brands     []brandView
	BrandName  string
	Categories []string
	Category   string
	Items      []itemView
	Detail     *menuboard.MenuRecord

	Transcript  []menuboard.Message
	Suggestions []string
}

type brandView struct {
	Slug   string
	Name   string
	Active bool
}

type itemView struct {
	Index    int
	Name     string
	ImageURL string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, release := s.sessions.Acquire(w, r)
	view := s.view(sess)
	release()

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, view); err != nil {
		s.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// view builds the page for sess, consuming its notice.
func (s *Server) view(sess *menuboard.Session) *pageView {
	v := &pageView{
		Mode:     sess.Mode,
		Warnings: s.Warnings,
		Notice:   sess.TakeNotice(),
	}

	if sess.Mode == menuboard.ModeChat {
		v.Transcript = sess.Transcript
		if sess.SuggestionsVisible() {
			v.Suggestions = s.Questions
		}
		return v
	}

	for _, b := range s.Catalog.Brands() {
		v.Brands = append(v.Brands, brandView{Slug: b.Slug(), Name: b.DisplayName(), Active: b == sess.Brand})
	}
	v.BrandName = sess.Brand.DisplayName()
	v.Categories = s.Catalog.Categories(sess.Brand)
	v.Category = sess.Category

	if rec, ok := sess.SelectedRecord(s.Catalog); ok {
		v.Detail = rec
		return v
	}
	for i, rec := range sess.Listing(s.Catalog) {
		v.Items = append(v.Items, itemView{Index: i, Name: rec.Name, ImageURL: rec.ImageURL})
	}
	return v
}

// Error writes err as a plain-text response with a status matching its
// application error code. Internal errors are logged and not exposed.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := menuboard.ErrorCode(err), menuboard.ErrorMessage(err)
	if code == menuboard.EINTERNAL {
		s.Logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
		message = "internal error"
	}
	http.Error(w, message, ErrorStatusCode(code))
}

var codes = map[string]int{
	menuboard.ECONFLICT:    http.StatusConflict,
	menuboard.EINVALID:     http.StatusBadRequest,
	menuboard.ENOTFOUND:    http.StatusNotFound,
	menuboard.EUNAVAILABLE: http.StatusServiceUnavailable,
	menuboard.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}
