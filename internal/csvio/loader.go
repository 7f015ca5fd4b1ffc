package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocarina/gocsv"
	"github.com/mitchellh/mapstructure"
	"github.com/sw385/Semester-Schedule/internal/logger"
	"github.com/sw385/Semester-Schedule/internal/scheduler"
	"github.com/sw385/Semester-Schedule/pkg/model"
	"gopkg.in/yaml.v3"
)

// LoadCatalog reads the configured catalog file and builds the course tree.
// Files with an unknown extension are read as delimited text.
func LoadCatalog(cfg *scheduler.Configuration) ([]*model.Course, error) {
	file, err := os.Open(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s, please make sure the file exists: %w", cfg.CatalogFile, err)
	}
	defer file.Close()

	rows, err := ReadRows(cfg.CatalogFile, file, cfg.DelimiterRune())
	if err != nil {
		return nil, fmt.Errorf("failed to parse data from %s: %w", cfg.CatalogFile, err)
	}

	logger.Debug().Str("file", cfg.CatalogFile).Int("rows", len(rows)).Msg("Catalog rows loaded")
	return BuildCatalog(rows, cfg.SkipMalformedRows)
}

// ReadRows picks the row reader by the extension of name.
func ReadRows(name string, in io.Reader, delim rune) ([]*model.CatalogRow, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return LoadRowMaps(in)
	case ".html", ".htm":
		return LoadHTMLRows(in)
	default:
		return LoadRows(in, delim)
	}
}

// LoadRows reads delimited catalog text. The first line holds the column
// labels, quotes around fields are optional.
func LoadRows(in io.Reader, delim rune) ([]*model.CatalogRow, error) {
	r := csv.NewReader(in)
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	rows := []*model.CatalogRow{}
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		return nil, err
	}
	for i, row := range rows {
		row.Normalize()
		// header is line 1
		row.Line = i + 2
	}
	return rows, nil
}

// LoadRowMaps reads a YAML or JSON list of rows keyed by the catalog labels.
func LoadRowMaps(in io.Reader) ([]*model.CatalogRow, error) {
	var raw []map[string]any
	if err := yaml.NewDecoder(in).Decode(&raw); err != nil && err != io.EOF {
		return nil, err
	}
	return decodeRowMaps(raw)
}

// LoadHTMLRows reads the first table of an HTML page. Column labels come from
// the th cells, or from the first row when the table has none.
func LoadHTMLRows(in io.Reader) ([]*model.CatalogRow, error) {
	doc, err := goquery.NewDocumentFromReader(in)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, &model.FormatError{Reason: "no table found in document"}
	}

	var labels []string
	var raw []map[string]any
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if labels == nil {
			if th := tr.Find("th"); th.Length() > 0 || i == 0 {
				cells := th
				if cells.Length() == 0 {
					cells = tr.Find("td")
				}
				labels = cells.Map(func(_ int, cell *goquery.Selection) string {
					return strings.TrimSpace(cell.Text())
				})
				return
			}
		}
		row := map[string]any{}
		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			if j < len(labels) {
				row[labels[j]] = strings.TrimSpace(td.Text())
			}
		})
		if len(row) > 0 {
			raw = append(raw, row)
		}
	})

	return decodeRowMaps(raw)
}

func decodeRowMaps(raw []map[string]any) ([]*model.CatalogRow, error) {
	rows := make([]*model.CatalogRow, 0, len(raw))
	for i, m := range raw {
		row := &model.CatalogRow{}
		var md mapstructure.Metadata
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Metadata:         &md,
			Result:           row,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(m); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if len(md.Unused) > 0 {
			logger.Debug().Int("row", i+1).Strs("keys", md.Unused).Msg("Ignoring unknown catalog keys")
		}
		row.Normalize()
		row.Line = i + 1
		rows = append(rows, row)
	}
	return rows, nil
}
