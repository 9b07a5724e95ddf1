package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/Dan9191/simulador-financeiro/internal/form"
	"github.com/Dan9191/simulador-financeiro/internal/middleware"
	"github.com/Dan9191/simulador-financeiro/internal/models"
	"github.com/Dan9191/simulador-financeiro/internal/view"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	sessionCookie = "simulador_session"

	// AlertMessage is the only transport failure text users see
	AlertMessage = "Ocorreu um erro ao simular. Por favor, tente novamente."
)

// Simulator is the remote calculation consumed on submit
type Simulator interface {
	Simulate(ctx context.Context, req models.SimulationRequest) (models.SimulationResult, error)
}

// Snapshot is the externally visible state of one form
type Snapshot struct {
	Values  models.RawInput         `json:"values"`
	Display models.RawInput         `json:"display"`
	Errors  models.ValidationErrors `json:"errors"`
	Valid   bool                    `json:"valid"`
	Loading bool                    `json:"loading"`
	Rows    []view.Row              `json:"rows,omitempty"`
	Alert   string                  `json:"alert,omitempty"`
}

// Server hosts the simulation form
type Server struct {
	store  *Store
	client Simulator
	log    *logrus.Logger
	tmpl   *template.Template
	now    func() time.Time
}

// NewServer creates the form host
func NewServer(store *Store, client Simulator, log *logrus.Logger) *Server {
	return &Server{
		store:  store,
		client: client,
		log:    log,
		tmpl:   template.Must(template.New("page").Parse(pageTemplate)),
		now:    time.Now,
	}
}

// Router wires the form routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(s.log))
	r.HandleFunc("/", s.Index).Methods(http.MethodGet)
	r.HandleFunc("/form/field", s.FieldChange).Methods(http.MethodPost)
	r.HandleFunc("/form/submit", s.Submit).Methods(http.MethodPost)
	r.HandleFunc("/form/reset", s.Reset).Methods(http.MethodPost)
	r.HandleFunc("/form/print", s.Print).Methods(http.MethodGet)
	return r
}

// session returns the caller's session, creating one when the cookie is unknown
func (s *Server) session(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess := s.store.Get(c.Value); sess != nil {
			return sess
		}
	}
	sess := s.store.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// snapshot must be called with sess.mu held
func snapshot(f *form.State) Snapshot {
	snap := Snapshot{
		Values: f.Values(),
		Display: models.RawInput{
			PropertyValue:      f.Display(models.FieldPropertyValue),
			DownPaymentPercent: f.Display(models.FieldDownPaymentPercent),
			ContractYears:      f.Display(models.FieldContractYears),
		},
		Errors:  f.Errors(),
		Valid:   f.IsValid(),
		Loading: f.Loading(),
	}
	if result, ok := f.Result(); ok {
		snap.Rows = view.Rows(result)
	}
	if f.LastError() != nil {
		snap.Alert = AlertMessage
	}
	return snap
}

func (s *Server) state(sess *Session) Snapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshot(sess.form)
}

// Index renders the form, or the result panel once a simulation succeeded
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, s.state(sess)); err != nil {
		s.log.Errorf("Failed to render page: %v", err)
	}
}

type fieldChange struct {
	Field models.Field `json:"field"`
	Value string       `json:"value"`
}

// FieldChange applies one keystroke-level change and returns the new state
func (s *Server) FieldChange(w http.ResponseWriter, r *http.Request) {
	var change fieldChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)

	sess.mu.Lock()
	err := sess.form.OnFieldChange(change.Field, change.Value)
	snap := snapshot(sess.form)
	sess.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Submit sends the form to the simulation service. Plain form posts may
// carry the field values, which go through the same change path first.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err == nil {
			sess.mu.Lock()
			for _, f := range []models.Field{models.FieldPropertyValue, models.FieldDownPaymentPercent, models.FieldContractYears} {
				if vals, ok := r.PostForm[string(f)]; ok && len(vals) > 0 {
					if err := sess.form.OnFieldChange(f, vals[0]); err != nil {
						s.log.Warnf("Ignoring posted field %s for session %s: %v", f, sess.ID, err)
					}
				}
			}
			sess.mu.Unlock()
		}
	}

	err := s.submit(context.WithoutCancel(r.Context()), sess)
	status := http.StatusOK
	switch {
	case errors.Is(err, form.ErrSubmissionInFlight):
		status = http.StatusConflict
	case errors.Is(err, form.ErrInvalidForm):
		status = http.StatusUnprocessableEntity
	}
	s.respond(w, r, status, sess)
}

// submit runs one submission: the session lock is held while entering and
// leaving the loading state, never across the network call.
func (s *Server) submit(ctx context.Context, sess *Session) error {
	sess.mu.Lock()
	ticket, err := sess.form.BeginSubmit()
	sess.mu.Unlock()
	if err != nil {
		return err
	}

	result, err := s.client.Simulate(ctx, ticket.Request)

	sess.mu.Lock()
	applied := sess.form.Resolve(ticket, result, err)
	sess.mu.Unlock()

	if !applied {
		s.log.Infof("Discarding simulation response for session %s: form was reset", sess.ID)
		return nil
	}
	if err != nil {
		s.log.Warnf("Simulation error for session %s: %v", sess.ID, err)
	}
	return err
}

// Reset starts a new simulation
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.mu.Lock()
	sess.form.Reset()
	sess.mu.Unlock()
	s.respond(w, r, http.StatusOK, sess)
}

// Print returns the held result as a PDF
func (s *Server) Print(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.mu.Lock()
	result, ok := sess.form.Result()
	sess.mu.Unlock()
	if !ok {
		http.Error(w, "no simulation result", http.StatusNotFound)
		return
	}

	data, err := view.RenderPDF(result, s.now())
	if err != nil {
		s.log.Errorf("Failed to render PDF: %v", err)
		http.Error(w, "failed to render PDF", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="simulacao.pdf"`)
	w.Write(data)
}

// respond answers JSON callers with the snapshot and browsers with a redirect
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, sess *Session) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, status, s.state(sess))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
