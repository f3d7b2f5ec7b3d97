package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/fauxlizer/internal/core"
	"github.com/JonMunkholm/fauxlizer/internal/logging"
	"github.com/JonMunkholm/fauxlizer/internal/web/templates"
	"github.com/google/uuid"
)

// ValidationResponse is the body of a successful POST /api/validate. Data
// file failures are still 200: the summary carries the return code.
type ValidationResponse struct {
	ValidationID string       `json:"validation_id"`
	Filename     string       `json:"filename,omitempty"`
	Summary      core.Summary `json:"summary"`

	// Row is present when a line number was requested and the file passed.
	// JSON rows embed as an object, CSV rows as a string.
	Row any `json:"row,omitempty"`

	// Notice replaces Row when the line number does not name a row.
	Notice string `json:"notice,omitempty"`

	outcome core.Outcome
	format  core.Format
}

// validationForm is the parsed multipart request.
type validationForm struct {
	format  core.Format
	index   int
	wantRow bool
}

// handleIndex renders the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Page("Validate a data file", templates.UploadForm()).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render index", "error", err)
	}
}

// handleValidatePage validates a form upload and renders the result page.
func (s *Server) handleValidatePage(w http.ResponseWriter, r *http.Request) {
	resp, status, err := s.validateUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, status)
		return
	}

	view, err := resultView(resp)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Page("Validation result", templates.Result(view)).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render result", "error", err)
	}
}

// handleValidateAPI validates a multipart upload and responds with JSON.
func (s *Server) handleValidateAPI(w http.ResponseWriter, r *http.Request) {
	resp, status, err := s.validateUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, status)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleHealth reports liveness and validation slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"validations": s.limiter.Status(),
	})
}

// handleDownloadTemplate serves a header-only data file.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="template.faux"`)
	_, _ = w.Write([]byte(core.TemplateCSV()))
}

// validateUpload runs one validation for a multipart request. The returned
// status applies only when err is non-nil.
func (s *Server) validateUpload(w http.ResponseWriter, r *http.Request) (*ValidationResponse, int, error) {
	maxSize := s.cfg.Validation.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	// maxMemory equals the body cap, so uploads are never spooled to disk.
	if err := r.ParseMultipartForm(maxSize); err != nil {
		if isTooLarge(err) {
			return nil, http.StatusRequestEntityTooLarge, core.NewUserError(fmt.Errorf("file too large: %w", err))
		}
		return nil, http.StatusBadRequest, core.NewUserError(fmt.Errorf("invalid upload form: %w", err))
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, http.StatusBadRequest, core.NewUserError(errors.New("no file provided"))
	}
	defer file.Close()

	form, err := parseForm(r)
	if err != nil {
		return nil, http.StatusBadRequest, core.NewUserError(err)
	}

	if err := s.limiter.Acquire(r.Context()); err != nil {
		return nil, http.StatusServiceUnavailable, core.NewUserError(err)
	}
	defer s.limiter.Release()

	id := uuid.NewString()
	logger := logging.WithFields(r.Context(), "validation_id", id, "filename", header.Filename)

	outcome, err := core.ValidateReader(file)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("validate upload: %w", err)
	}

	resp := &ValidationResponse{
		ValidationID: id,
		Filename:     header.Filename,
		Summary:      core.GenerateSummary(outcome),
		outcome:      outcome,
		format:       form.format,
	}

	if form.wantRow && outcome.OK() {
		row, err := core.FetchRow(outcome.Rows(), form.index, form.format)
		switch {
		case errors.Is(err, core.ErrRowOutOfRange):
			resp.Notice = core.LineNumberNotice
		case err != nil:
			return nil, http.StatusInternalServerError, err
		case form.format == core.FormatJSON:
			resp.Row = json.RawMessage(row.(string))
		default:
			resp.Row = row
		}
	}

	logger.Info("validation finished",
		"return_code", outcome.Code,
		"line", outcome.Line,
		"size", header.Size,
	)
	return resp, http.StatusOK, nil
}

func parseForm(r *http.Request) (validationForm, error) {
	form := validationForm{format: core.ParseFormat(r.FormValue("format"))}

	raw := strings.TrimSpace(r.FormValue("linenum"))
	if raw == "" {
		return form, nil
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return form, fmt.Errorf("invalid line number %q", raw)
	}
	form.index = index
	form.wantRow = true
	return form, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

// resultView flattens a response for the result page.
func resultView(resp *ValidationResponse) (templates.ResultView, error) {
	summaryJSON, err := resp.Summary.JSON()
	if err != nil {
		return templates.ResultView{}, err
	}

	msg := core.MapReturnCode(resp.outcome.Code)
	view := templates.ResultView{
		ValidationID: resp.ValidationID,
		Filename:     resp.Filename,
		ReturnCode:   string(resp.outcome.Code),
		OK:           resp.outcome.OK(),
		Message:      msg.Message,
		Action:       msg.Action,
		Code:         msg.Code,
		Rows:         resp.Summary.Extras.Rows,
		SummaryJSON:  summaryJSON,
		RowFormat:    string(resp.format),
		Notice:       resp.Notice,
	}
	if lo, hi, ok := resp.Summary.FauxnessRange(); ok {
		view.FauxnessLow = core.Float(lo).String()
		view.FauxnessHigh = core.Float(hi).String()
	}

	switch row := resp.Row.(type) {
	case nil:
	case json.RawMessage:
		view.Row = string(row)
	case string:
		view.Row = row
	case fmt.Stringer:
		view.Row = row.String()
	}
	return view, nil
}
