package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/storyswift/pkg/buildinfo"
	"github.com/matzehuels/storyswift/pkg/cache"
	"github.com/matzehuels/storyswift/pkg/errors"
	"github.com/matzehuels/storyswift/pkg/pipeline"
	"github.com/matzehuels/storyswift/pkg/render/nodelink"
)

// ClientHeader names the API client. Cached results are scoped per
// client when it is set.
const ClientHeader = "X-Storyswift-Client"

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type convertResponse struct {
	*pipeline.Result
	CacheHit bool `json:"cache_hit"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.options(w, r)
	if !ok {
		return
	}
	result, err := s.runnerFor(r).Convert(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{Result: result, CacheHit: result.CacheInfo.ResultHit})
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.options(w, r)
	if !ok {
		return
	}
	report, err := s.runnerFor(r).Inspect(r.Context(), opts, boolParam(r, "xml"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "dot" && format != "svg" {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "unsupported graph format %q (must be one of: json, dot, svg)", format))
		return
	}

	opts, ok := s.options(w, r)
	if !ok {
		return
	}
	g, err := s.runnerFor(r).Graph(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if format == "json" {
		writeJSON(w, http.StatusOK, g)
		return
	}

	dot := nodelink.FlowDOT(g, nodelink.Options{Detailed: boolParam(r, "detailed")})
	if format == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		_, _ = io.WriteString(w, dot)
		return
	}
	svg, err := nodelink.RenderSVG(r.Context(), dot)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render graph"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) runnerFor(r *http.Request) *pipeline.Runner {
	client := strings.TrimSpace(r.Header.Get(ClientHeader))
	if client == "" {
		return s.runner
	}
	return &pipeline.Runner{
		Cache:  s.runner.Cache,
		Keyer:  cache.NewScopedKeyer(s.runner.Keyer, "client:"+client+":"),
		Logger: s.runner.Logger,
	}
}

// options reads the descriptor body and applies query overrides to the
// server defaults. It writes the error response itself on failure.
func (s *Server) options(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	opts := s.opts.Defaults
	opts.SegueKinds = slices.Clone(opts.SegueKinds)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Code:    string(errors.ErrCodeInvalidInput),
				Message: "descriptor exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
			})
			return opts, false
		}
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return opts, false
	}
	if len(data) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "empty request body: send the storyboard or xib XML"))
		return opts, false
	}
	opts.Data = data
	opts.Path = ""

	q := r.URL.Query()
	if v := q.Get("mode"); v != "" {
		opts.Mode = v
	}
	if v := q.Get("placeholder"); v != "" {
		opts.PlaceholderLabel = v
	}
	if v := q.Get("segue_kinds"); v != "" {
		opts.SegueKinds = nil
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				opts.SegueKinds = append(opts.SegueKinds, k)
			}
		}
	}
	if q.Has("child_content") {
		opts.ChildContent = boolParam(r, "child_content")
	}
	opts.Refresh = boolParam(r, "refresh")
	return opts, true
}

func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(errors.GetCode(err))
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Code: string(code), Message: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMode, errors.ErrCodeInvalidName, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeParse, errors.ErrCodeNothingToDo, errors.ErrCodeGraphIncomplete:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
