package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"statbook/domain/core"
	"statbook/domain/stats"
	"statbook/internal/errors"
	"statbook/internal/frequency"
	"statbook/internal/notebook"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"tests": stats.TestNames})
}

func (s *Server) handleFrequency(w http.ResponseWriter, r *http.Request) {
	var req FrequencyRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	ds, err := req.Dataset()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var table *frequency.Table
	if req.LabelColumn != "" {
		table, err = frequency.BuildWithLabels(ds, req.LabelColumn, req.Column)
	} else {
		table, err = frequency.Build(ds, req.Column, req.Counts)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	report := table.Markdown()
	if wantsHTML(r) {
		writeHTML(w, report)
		return
	}
	writeJSON(w, http.StatusOK, FrequencyResponse{
		ID:     core.NewReportID(),
		Column: table.Column,
		Rows:   table.Rows,
		Report: report,
	})
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	test, err := stats.ParseTestName(chi.URLParam(r, "test"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req TestRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if len(req.Order) == 0 && pairedByPosition(test) {
		s.writeError(w, r, errors.InvalidInput("order is required for "+string(test)+": it fixes which column is the first sample"))
		return
	}

	opts, lang, err := s.options(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ds, err := req.Dataset()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	nb := notebook.New(&buf, notebook.Config{Language: lang, Alpha: s.alpha, Logger: s.logger})
	results, err := nb.Run(test, ds, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if wantsHTML(r) {
		writeHTML(w, reportMarkdown(buf.String()))
		return
	}
	writeJSON(w, http.StatusOK, TestResponse{
		ID:      core.NewReportID(),
		Test:    string(test),
		Results: toResultJSON(results),
		Report:  buf.String(),
	})
}

// pairedByPosition reports whether the test reads its two samples as first and
// second. JSON objects carry no column order, so these tests need an explicit one.
func pairedByPosition(test stats.TestName) bool {
	switch test {
	case stats.TestTTestInd, stats.TestTTestRel, stats.TestWilcoxon, stats.TestMannWhitneyU:
		return true
	}
	return false
}

// options translates request fields into notebook options
func (s *Server) options(req TestRequest) ([]notebook.Option, language.Tag, error) {
	var opts []notebook.Option
	if req.Alpha != 0 {
		if req.Alpha <= 0 || req.Alpha >= 1 {
			return nil, s.language, errors.InvalidInput("alpha must be between 0 and 1")
		}
		opts = append(opts, notebook.WithAlpha(req.Alpha))
	}
	if req.Alternative != "" {
		alt, err := stats.ParseAlternative(req.Alternative)
		if err != nil {
			return nil, s.language, err
		}
		opts = append(opts, notebook.WithAlternative(alt))
	}
	if req.Center != "" {
		center, err := stats.ParseCenter(req.Center)
		if err != nil {
			return nil, s.language, err
		}
		opts = append(opts, notebook.WithCenter(center))
	}
	if req.EqualVar != nil {
		opts = append(opts, notebook.WithEqualVariances(*req.EqualVar))
	}

	lang := s.language
	if req.Lang != "" {
		tag, err := language.Parse(req.Lang)
		if err != nil {
			return nil, s.language, core.NewOptionError("lang", req.Lang)
		}
		lang = tag
	}
	return opts, lang, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := r.Body
	if s.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.InvalidInput("invalid JSON body: " + err.Error())
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("[%s] %s %s: %v", RequestID(r.Context()), r.Method, r.URL.Path, err)
	} else {
		s.logger.Debug("[%s] %s %s: %v", RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
