package main

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mitchellh/mapstructure"
	"github.com/sw385/Semester-Schedule/internal/csvio"
	"github.com/sw385/Semester-Schedule/internal/exporter"
	"github.com/sw385/Semester-Schedule/internal/logger"
	"github.com/sw385/Semester-Schedule/internal/scheduler"
	"github.com/sw385/Semester-Schedule/pkg/model"
)

// jobRequest holds the optional form fields of a new search. Unset fields keep
// the server defaults.
type jobRequest struct {
	MinCredits        *float64 `mapstructure:"min_credits"`
	MaxCredits        *float64 `mapstructure:"max_credits"`
	Count             *int     `mapstructure:"count"`
	Strategy          *string  `mapstructure:"strategy"`
	NoMornings        *bool    `mapstructure:"no_mornings"`
	NoNights          *bool    `mapstructure:"no_nights"`
	SkipMalformedRows *bool    `mapstructure:"skip_malformed_rows"`
	Delimiter         *string  `mapstructure:"delimiter"`
}

func (r jobRequest) apply(cfg *scheduler.Configuration) {
	if r.MinCredits != nil {
		cfg.MinCredits = *r.MinCredits
	}
	if r.MaxCredits != nil {
		cfg.MaxCredits = *r.MaxCredits
	}
	if r.Count != nil {
		cfg.SelectionCount = *r.Count
	}
	if r.Strategy != nil {
		cfg.Strategy = scheduler.Strategy(*r.Strategy)
	}
	if r.NoMornings != nil {
		cfg.NoMornings = *r.NoMornings
	}
	if r.NoNights != nil {
		cfg.NoNights = *r.NoNights
	}
	if r.SkipMalformedRows != nil {
		cfg.SkipMalformedRows = *r.SkipMalformedRows
	}
	if r.Delimiter != nil {
		cfg.Delimiter = *r.Delimiter
	}
}

func decodeForm(values map[string][]string) (jobRequest, error) {
	flat := make(map[string]any, len(values))
	for key, v := range values {
		if len(v) > 0 {
			flat[key] = v[0]
		}
	}
	var req jobRequest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &req,
	})
	if err != nil {
		return req, err
	}
	return req, decoder.Decode(flat)
}

type sectionView struct {
	CourseCode   string  `json:"courseCode"`
	CourseName   string  `json:"courseName"`
	Section      string  `json:"section"`
	DaysAndTimes string  `json:"daysAndTimes"`
	Credits      float64 `json:"credits"`
}

type selectionView struct {
	Label         string        `json:"label"`
	Rank          int           `json:"rank"`
	Credits       float64       `json:"credits"`
	Compactness   float64       `json:"compactness"`
	TotalMinutes  float64       `json:"totalMinutes"`
	ClassMinutes  float64       `json:"classMinutes"`
	TravelMinutes float64       `json:"travelMinutes"`
	EarlyMornings int           `json:"earlyMornings"`
	LateNights    int           `json:"lateNights"`
	Weight        float64       `json:"weight"`
	Sections      []sectionView `json:"sections"`
}

type jobView struct {
	ID          string           `json:"id"`
	Status      jobStatus        `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	Report      string           `json:"report"`
	Error       string           `json:"error,omitempty"`
	Strategy    string           `json:"strategy,omitempty"`
	Stats       *scheduler.Stats `json:"stats,omitempty"`
	Preferred   []selectionView  `json:"preferred,omitempty"`
	Undesirable []selectionView  `json:"undesirable,omitempty"`
}

func newSelectionView(s scheduler.Selection) selectionView {
	m := s.Schedule.Metrics()
	view := selectionView{
		Label:         s.Label,
		Rank:          s.Index,
		Credits:       s.Schedule.Credits,
		Compactness:   s.Schedule.CompactnessRatio(),
		TotalMinutes:  m.TotalTime,
		ClassMinutes:  m.ClassTime,
		TravelMinutes: m.TravelTime,
		EarlyMornings: m.EarlyMornings,
		LateNights:    m.LateNights,
		Weight:        m.Weight,
	}
	for _, p := range s.Schedule.Patterns {
		view.Sections = append(view.Sections, sectionView{
			CourseCode:   p.CourseCode,
			CourseName:   p.CourseName,
			Section:      p.Section,
			DaysAndTimes: p.RawTime,
			Credits:      p.Credits,
		})
	}
	return view
}

func newJobView(j job, detailed bool) jobView {
	view := jobView{
		ID:        j.ID,
		Status:    j.Status,
		CreatedAt: j.CreatedAt,
		Report:    j.report(),
		Error:     j.Error,
	}
	if !detailed {
		return view
	}
	view.Strategy = string(j.Config.Strategy)
	if j.Result != nil {
		view.Stats = &j.Result.Stats
		for _, s := range j.Result.Preferred {
			view.Preferred = append(view.Preferred, newSelectionView(s))
		}
		for _, s := range j.Result.Undesirable {
			view.Undesirable = append(view.Undesirable, newSelectionView(s))
		}
	}
	return view
}

type server struct {
	store    *jobStore
	defaults func() *scheduler.Configuration
}

func (s *server) handlePostSchedule(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	files := form.File["catalog"]
	if len(files) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing catalog file"})
		return
	}

	req, err := decodeForm(form.Value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg := s.defaults()
	req.apply(cfg)
	if err := cfg.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upload, err := files[0].Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer upload.Close()

	rows, err := csvio.ReadRows(files[0].Filename, upload, cfg.DelimiterRune())
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	courses, err := csvio.BuildCatalog(rows, cfg.SkipMalformedRows)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, catalogError(err))
		return
	}

	j := s.store.add(cfg)
	go s.store.run(j.ID, courses, cfg)

	ctx.JSON(http.StatusAccepted, gin.H{
		"id": j.ID,
	})
}

func catalogError(err error) gin.H {
	body := gin.H{"error": err.Error()}
	var formatErr *model.FormatError
	var groupingErr *model.InputGroupingError
	switch {
	case errors.As(err, &formatErr):
		body["row"] = formatErr.Row
		body["kind"] = "format"
	case errors.As(err, &groupingErr):
		body["row"] = groupingErr.Row
		body["kind"] = "grouping"
	}
	return body
}

func (s *server) handleGetSchedules(ctx *gin.Context) {
	views := []jobView{}
	for _, j := range s.store.list() {
		views = append(views, newJobView(j, false))
	}
	ctx.JSON(http.StatusOK, gin.H{
		"schedules": views,
	})
}

func (s *server) handleGetScheduleWithId(ctx *gin.Context) {
	j, ok := s.store.get(ctx.Param("id"))
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.JSON(http.StatusOK, newJobView(j, true))
}

func (s *server) handleExportSchedule(ctx *gin.Context) {
	j, ok := s.store.get(ctx.Param("id"))
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}
	if j.Status != statusDone {
		ctx.JSON(http.StatusConflict, gin.H{"error": "schedule search has not finished", "status": j.Status})
		return
	}
	selection, ok := j.selection(ctx.Param("label"))
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}

	switch format := ctx.DefaultQuery("format", "csv"); format {
	case "csv":
		body, err := csvio.ExportScheduleString(selection.Schedule)
		if err != nil {
			logger.Error().Err(err).Str("job", j.ID).Msg("CSV export failed")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
	case "ics":
		var buf bytes.Buffer
		if err := exporter.GenerateICS(selection.Schedule, &buf, j.Config.TermStart, j.Config.TermWeeks); err != nil {
			logger.Error().Err(err).Str("job", j.ID).Msg("ICS export failed")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown format " + format})
	}
}
