// Package http serves the kiosk UI: a menu browser and a chat assistant.
package http

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/menuboard"
	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Server defaults.
const (
	DefaultAskTimeout      = 60 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Notice shown when a question could not be answered.
const (
	NoticeAskFailed   = "답변을 가져오지 못했습니다. 잠시 후 다시 시도해 주세요."
	NoticeNoAnswer    = "관련된 메뉴 정보를 찾지 못했습니다."
	NoticeUnavailable = "챗봇을 사용할 수 없습니다."
)

// Server is the kiosk HTTP server.
type Server struct {
	ln       net.Listener
	server   *http.Server
	router   *mux.Router
	sessions *SessionStore

	// Addr is the address to listen on, e.g. ":8501".
	Addr string

	Catalog *menuboard.Catalog
	Asker   menuboard.Asker // optional; chat is disabled without it

	// Questions are suggested before the first chat turn.
	Questions []string

	// Warnings are shown on every page, e.g. menus that failed to load.
	Warnings []string

	Logger     *slog.Logger
	AskTimeout time.Duration
}

// NewServer returns a new Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		router:     mux.NewRouter(),
		Catalog:    menuboard.NewCatalog(),
		Logger:     slog.New(slog.DiscardHandler),
		AskTimeout: DefaultAskTimeout,
	}
	s.sessions = NewSessionStore(s.newSession)
	s.server = &http.Server{Handler: s.router}

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/mode", s.handleMode).Methods(http.MethodPost)

	menu := s.router.PathPrefix("/menu").Subrouter()
	menu.HandleFunc("/brand", s.handleBrand).Methods(http.MethodPost)
	menu.HandleFunc("/category", s.handleCategory).Methods(http.MethodPost)
	menu.HandleFunc("/item/{index:[0-9]+}", s.handleItem).Methods(http.MethodPost)
	menu.HandleFunc("/back", s.handleBack).Methods(http.MethodPost)

	s.router.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	chat := s.router.PathPrefix("/chat").Subrouter()
	chat.HandleFunc("/suggest", s.handleSuggest).Methods(http.MethodPost)
	chat.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)

	return s
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("server stopped", "err", err)
		}
	}()
	s.Logger.Info("serving", "url", s.URL())
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	addr, ok := s.ln.Addr().(*net.TCPAddr)
	if !ok {
		return ""
	}
	host := "localhost"
	if addr.IP != nil && !addr.IP.IsUnspecified() {
		host = addr.IP.String()
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(addr.Port))
}

// ServeHTTP serves requests through the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) newSession(id string) *menuboard.Session {
	var brand menuboard.Brand
	if brands := s.Catalog.Brands(); len(brands) > 0 {
		brand = brands[0]
	}
	return menuboard.NewSession(id, brand)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// update runs fn on the caller's session and redirects back to the page.
// An error from fn is reported as a bad request.
func (s *Server) update(w http.ResponseWriter, r *http.Request, fn func(*menuboard.Session) error) {
	sess, release := s.sessions.Acquire(w, r)
	err := fn(sess)
	release()
	if err != nil {
		s.Error(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(sess *menuboard.Session) error {
		return sess.SetMode(menuboard.Mode(r.PostFormValue("mode")))
	})
}

func (s *Server) handleBrand(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(sess *menuboard.Session) error {
		b, err := menuboard.ParseBrand(r.PostFormValue("brand"))
		if err != nil {
			return err
		}
		sess.SelectBrand(b)
		return nil
	})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(sess *menuboard.Session) error {
		sess.SelectCategory(r.PostFormValue("category"))
		return nil
	})
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(sess *menuboard.Session) error {
		index, err := strconv.Atoi(mux.Vars(r)["index"])
		if err != nil {
			return menuboard.Errorf(menuboard.EINVALID, "invalid menu item index")
		}
		return sess.SelectItem(s.Catalog, index)
	})
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(sess *menuboard.Session) error {
		sess.Back()
		return nil
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	question := r.PostFormValue("question")
	s.update(w, r, func(sess *menuboard.Session) error {
		s.ask(r.Context(), sess, question)
		return nil
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	question := r.PostFormValue("question")
	s.update(w, r, func(sess *menuboard.Session) error {
		sess.Suggest(question)
		s.ask(r.Context(), sess, "")
		return nil
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(sess *menuboard.Session) error {
		sess.Reset()
		return nil
	})
}

// ask asks question in sess, turning failures into a notice on the next
// page. Empty questions are ignored.
func (s *Server) ask(ctx context.Context, sess *menuboard.Session, question string) {
	sess.Mode = menuboard.ModeChat
	if s.Asker == nil {
		sess.Notice = NoticeUnavailable
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.AskTimeout)
	defer cancel()

	_, err := sess.Ask(ctx, s.Asker, question)
	switch menuboard.ErrorCode(err) {
	case "":
	case menuboard.EINVALID:
	case menuboard.ENOTFOUND:
		sess.Notice = NoticeNoAnswer
	default:
		s.Logger.Error("ask failed", "session", sess.ID, "err", err)
		sess.Notice = NoticeAskFailed
	}
}
