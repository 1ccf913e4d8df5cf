package api

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/musicbox/pkg/buildinfo"
	"github.com/matzehuels/musicbox/pkg/errors"
	mbio "github.com/matzehuels/musicbox/pkg/io"
	"github.com/matzehuels/musicbox/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Resolved(),
	})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pipeline.DefaultOptions())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	midi, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	l, hit, err := s.runner.GenerateLayoutWithCacheInfo(r.Context(), midi, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := mbio.WriteLayout(&buf, l); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Page-Count", strconv.Itoa(len(l.Pages)))
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.Write(buf.Bytes())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	opts, err := optionsFromQuery(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	page, err := pageParam(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	midi, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), midi, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pages := res.Artifacts[format]
	if page > len(pages) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidConfig,
			"page %d out of range (layout has %d)", page, len(pages)))
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Page-Count", strconv.Itoa(res.Stats.Pages))
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit))
	w.Write(pages[page-1])
}

// readBody reads the uploaded MIDI file.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body must contain a MIDI file")
	}
	return data, nil
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func pageParam(q url.Values) (int, error) {
	v := q.Get("page")
	if v == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "page must be a positive integer, got %q", v)
	}
	return n, nil
}

// optionsFromQuery applies query parameters on top of the default options.
// Unknown parameters are rejected.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	floats := map[string]*float64{
		"tape_height":      &opts.TapeHeight,
		"interior_top":     &opts.InteriorTop,
		"interior_bottom":  &opts.InteriorBottom,
		"interior_left":    &opts.InteriorLeft,
		"interior_right":   &opts.InteriorRight,
		"gap":              &opts.Gap,
		"hole_diameter":    &opts.HoleDiameter,
		"page_width":       &opts.PageWidth,
		"page_height":      &opts.PageHeight,
		"margin_top":       &opts.MarginTop,
		"margin_bottom":    &opts.MarginBottom,
		"margin_left":      &opts.MarginLeft,
		"margin_right":     &opts.MarginRight,
		"cut_stroke_width": &opts.CutStrokeWidth,
		"stretch":          &opts.Stretch,
		"lead_in_width":    &opts.LeadInWidth,
		"lead_in_height":   &opts.LeadInHeight,
		"join_width":       &opts.JoinWidth,
		"scale":            &opts.Scale,
	}
	ints := map[string]*int{
		"track":       &opts.Track,
		"num_zigzags": &opts.NumZigZags,
	}
	strs := map[string]*string{
		"join_style":    &opts.JoinStyle,
		"title":         &opts.Title,
		"cut_color":     &opts.CutColor,
		"engrave_color": &opts.EngraveColor,
	}

	for key, vals := range q {
		v := vals[len(vals)-1]
		switch {
		case key == "page":
		case key == "notes":
			pitches, err := parseInts(v)
			if err != nil {
				return opts, err
			}
			opts.Notes = pitches
		case floats[key] != nil:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, badParam(key, v)
			}
			*floats[key] = f
		case ints[key] != nil:
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, badParam(key, v)
			}
			*ints[key] = n
		case strs[key] != nil:
			*strs[key] = v
		default:
			return opts, errors.New(errors.ErrCodeInvalidConfig, "unknown parameter %q", key)
		}
	}
	return opts, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, badParam("notes", s)
		}
		out = append(out, n)
	}
	return out, nil
}

func badParam(key, value string) error {
	return errors.New(errors.ErrCodeInvalidConfig, "invalid value %q for %s", value, key)
}

